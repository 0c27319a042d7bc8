package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycleFound reports a dependency cycle.
var ErrCycleFound = errors.New("cycle detected")

// GraphError wraps a graph validation failure.
type GraphError struct {
	Kind  error
	Cycle []string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Cycle) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), strings.Join(e.Cycle, " -> "))
}

func (e *GraphError) Unwrap() error { return e.Kind }

func cycleError(path []string) error {
	return &GraphError{Kind: ErrCycleFound, Cycle: path}
}
