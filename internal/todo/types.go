package todo

import (
	"fmt"

	"github.com/jhlee0409/selfish-pipeline/internal/tasks"
)

// SchemaVersion is the only document version this package writes.
const SchemaVersion = 1

// Status represents a task status.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// Task is one declared task of the markdown list.
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Status    Status   `json:"status" yaml:"status"`
	Phase     string   `json:"phase,omitempty" yaml:"phase,omitempty"`
	Parallel  bool     `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Files     []string `json:"files,omitempty" yaml:"files,omitempty"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Line      int      `json:"line" yaml:"line"`
}

// File is the exported task document.
type File struct {
	SchemaVersion int      `json:"schema_version" yaml:"schema_version"`
	SourceFiles   []string `json:"source_files" yaml:"source_files"`
	Tasks         []Task   `json:"tasks" yaml:"tasks"`
}

// FromDocument builds the task document for doc. Tasks declared more than
// once are exported once, at their first declaration, with dependencies and
// files merged from every declaration.
func FromDocument(doc *tasks.Document) *File {
	f := &File{
		SchemaVersion: SchemaVersion,
		SourceFiles:   []string{},
		Tasks:         []Task{},
	}
	if doc.Path != "" {
		f.SourceFiles = append(f.SourceFiles, doc.Path)
	}

	index := make(map[string]int)
	var phase string
	for _, line := range doc.Lines {
		switch line.Kind {
		case tasks.KindPhase:
			phase = line.Phase
			continue
		case tasks.KindTask:
		default:
			continue
		}

		i, seen := index[line.TaskID]
		if !seen {
			i = len(f.Tasks)
			index[line.TaskID] = i
			status := StatusTodo
			if line.Done {
				status = StatusDone
			}
			f.Tasks = append(f.Tasks, Task{
				ID:       line.TaskID,
				Title:    line.Title,
				Status:   status,
				Phase:    phase,
				Parallel: line.Parallel,
				Line:     line.Number,
			})
		}

		t := &f.Tasks[i]
		t.DependsOn = appendUnique(t.DependsOn, line.Depends...)
		for _, tok := range line.Tokens {
			if tasks.IsPathLike(tok) {
				t.Files = appendUnique(t.Files, tok)
			}
		}
	}
	return f
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, existing := range dst {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
