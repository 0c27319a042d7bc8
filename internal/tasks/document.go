package tasks

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnreadable is returned by ReadFile when the task list cannot be read.
var ErrUnreadable = errors.New("file not found")

// Document is a classified task list.
type Document struct {
	Path           string
	ParallelMarker string
	Lines          []Line
}

// Options controls parsing.
type Options struct {
	// ParallelMarker overrides DefaultParallelMarker.
	ParallelMarker string
}

// Parse classifies every line of content.
func Parse(content string, opts Options) *Document {
	marker := opts.ParallelMarker
	if marker == "" {
		marker = DefaultParallelMarker
	}

	raw := SplitLines(content)
	doc := &Document{
		ParallelMarker: marker,
		Lines:          make([]Line, 0, len(raw)),
	}
	for i, r := range raw {
		doc.Lines = append(doc.Lines, ClassifyLine(r, i+1, marker))
	}
	return doc
}

// ReadFile reads and parses the task list at path. Read failures wrap
// ErrUnreadable.
func ReadFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	doc := Parse(string(data), opts)
	doc.Path = path
	return doc, nil
}

// SplitLines splits on "\n" and drops one trailing "\r" from each line.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// TaskLines returns the task declarations in document order.
func (d *Document) TaskLines() []Line {
	var out []Line
	for _, l := range d.Lines {
		if l.Kind == KindTask {
			out = append(out, l)
		}
	}
	return out
}

// Verdict is the outcome of a validator: whether the document passed and the
// lines to print on stdout.
type Verdict struct {
	Valid bool
	Lines []string
}

// ExitCode returns the process exit status for the verdict.
func (v Verdict) ExitCode() int {
	if v.Valid {
		return 0
	}
	return 1
}

// WriteTo writes each line followed by a newline.
func (v Verdict) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range v.Lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
