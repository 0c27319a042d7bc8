package tasks

import (
	"strings"
	"unicode"
)

// DefaultParallelMarker tags a task as safe to run alongside its phase siblings.
const DefaultParallelMarker = "[P]"

// LineKind classifies a single line of a task list.
type LineKind int

const (
	KindOther LineKind = iota
	KindTask
	KindPhase
)

func (k LineKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindPhase:
		return "phase"
	default:
		return "other"
	}
}

// Line is one classified line with its extracted fields.
type Line struct {
	Number int // 1-based
	Kind   LineKind
	Raw    string

	// Task fields (KindTask only).
	TaskID     string
	Done       bool
	Parallel   bool
	HasDepends bool
	Depends    []string
	Title      string
	Tokens     []string // backtick spans, unfiltered

	// Phase fields (KindPhase only).
	Phase string
}

// ClassifyLine classifies raw and extracts the fields for its kind.
// marker is the parallel marker; an empty marker uses DefaultParallelMarker.
func ClassifyLine(raw string, number int, marker string) Line {
	if marker == "" {
		marker = DefaultParallelMarker
	}
	line := Line{Number: number, Kind: KindOther, Raw: raw}

	if phase, ok := parsePhaseHeading(raw); ok {
		line.Kind = KindPhase
		line.Phase = phase
		return line
	}

	id, done, rest, ok := parseTaskDecl(raw)
	if !ok {
		return line
	}
	line.Kind = KindTask
	line.TaskID = id
	line.Done = done
	line.Depends, line.HasDepends = parseDepends(raw)
	line.Tokens = BacktickTokens(raw)

	afterSpace := trimLeftSpace(rest)
	if len(afterSpace) < len(rest) && strings.HasPrefix(afterSpace, marker) {
		line.Parallel = true
		afterSpace = afterSpace[len(marker):]
	}
	line.Title = strings.TrimSpace(afterSpace)
	return line
}

// parsePhaseHeading matches "## Phase <digits>" at the start of s.
func parsePhaseHeading(s string) (string, bool) {
	const prefix = "## Phase "
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	digits := leadingDigits(s[len(prefix):])
	if digits == "" {
		return "", false
	}
	return digits, true
}

// parseTaskDecl matches the task line prefix and returns the task id, the
// checkbox state, and the text after the id.
func parseTaskDecl(s string) (id string, done bool, rest string, ok bool) {
	s = trimLeftSpace(s)
	if !strings.HasPrefix(s, "-") {
		return "", false, "", false
	}
	s = trimLeftSpace(s[1:])

	if len(s) < 3 || s[0] != '[' || s[2] != ']' {
		return "", false, "", false
	}
	switch s[1] {
	case ' ':
	case 'x', 'X':
		done = true
	default:
		return "", false, "", false
	}
	s = s[3:]

	after := trimLeftSpace(s)
	if len(after) == len(s) {
		// at least one whitespace is required before the id
		return "", false, "", false
	}

	id, ok = taskIDPrefix(after)
	if !ok {
		return "", false, "", false
	}
	return id, done, after[len(id):], true
}

// taskIDPrefix returns the "T"+digits id at the start of s.
func taskIDPrefix(s string) (string, bool) {
	if !strings.HasPrefix(s, "T") {
		return "", false
	}
	digits := leadingDigits(s[1:])
	if digits == "" {
		return "", false
	}
	return s[:1+len(digits)], true
}

// parseDepends finds the first "depends:" followed by a bracketed list and
// returns every task id inside the brackets.
func parseDepends(s string) ([]string, bool) {
	const keyword = "depends:"
	for offset := 0; ; {
		idx := strings.Index(s[offset:], keyword)
		if idx < 0 {
			return nil, false
		}
		after := trimLeftSpace(s[offset+idx+len(keyword):])
		if strings.HasPrefix(after, "[") {
			if end := strings.IndexByte(after, ']'); end >= 0 {
				return FindTaskIDs(after[1:end]), true
			}
		}
		offset += idx + len(keyword)
	}
}

// FindTaskIDs returns every "T"+digits run in s, in order of appearance.
func FindTaskIDs(s string) []string {
	var ids []string
	for i := 0; i < len(s); i++ {
		if s[i] != 'T' {
			continue
		}
		digits := leadingDigits(s[i+1:])
		if digits == "" {
			continue
		}
		ids = append(ids, s[i:i+1+len(digits)])
		i += len(digits)
	}
	return ids
}

// BacktickTokens returns the non-empty backtick-delimited spans of s, scanned
// left to right without overlap. An empty pair (``) is not a span; its second
// backtick may open the next one.
func BacktickTokens(s string) []string {
	var tokens []string
	i := 0
	for {
		open := strings.IndexByte(s[i:], '`')
		if open < 0 {
			return tokens
		}
		open += i
		closeRel := strings.IndexByte(s[open+1:], '`')
		if closeRel < 0 {
			return tokens
		}
		if closeRel == 0 {
			i = open + 1
			continue
		}
		closeIdx := open + 1 + closeRel
		tokens = append(tokens, s[open+1:closeIdx])
		i = closeIdx + 1
	}
}

// IsPathLike reports whether a token looks like a file path: it contains a
// path separator or a period.
func IsPathLike(token string) bool {
	return strings.ContainsAny(token, "/.")
}

func leadingDigits(s string) string {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return s[:n]
}

func trimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, isSpace)
}

// isSpace matches the whitespace class used by markdown editors, including
// the byte order mark some tools leave at the start of a file. NEL (U+0085)
// is not whitespace in that class.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
