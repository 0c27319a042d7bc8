package dag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jhlee0409/selfish-pipeline/internal/logging"
	"github.com/jhlee0409/selfish-pipeline/internal/tasks"
)

// Validate checks doc for circular dependencies and returns the verdict
// printed by "selfish dag-validate".
func Validate(doc *tasks.Document, logger *log.Logger) tasks.Verdict {
	logger = logging.OrDiscard(logger)
	g := Build(doc, logger)

	if len(g.tasks) == 0 {
		return tasks.Verdict{
			Valid: true,
			Lines: []string{"Valid: no tasks found, nothing to validate"},
		}
	}

	if err := g.Check(); err != nil {
		var ge *GraphError
		if !errors.As(err, &ge) {
			return tasks.Verdict{Valid: false, Lines: []string{err.Error()}}
		}
		logger.Debug("cycle found", "length", len(ge.Cycle)-1)
		return tasks.Verdict{
			Valid: false,
			Lines: []string{"CYCLE: " + strings.Join(ge.Cycle, " → ")},
		}
	}

	return tasks.Verdict{
		Valid: true,
		Lines: []string{fmt.Sprintf("Valid: %d tasks, no circular dependencies", len(g.tasks))},
	}
}
