package parallel

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jhlee0409/selfish-pipeline/internal/logging"
	"github.com/jhlee0409/selfish-pipeline/internal/tasks"
)

// Conflict is a path claimed by two parallel tasks of the same phase.
type Conflict struct {
	Phase string
	Path  string
	Owner string // first claimant
	Task  string // later claimant
}

func (c Conflict) String() string {
	return fmt.Sprintf("CONFLICT: Phase %s — %s and %s both target %s", c.Phase, c.Owner, c.Task, c.Path)
}

// Result summarizes one pass over a document.
type Result struct {
	Tasks     int      // parallel tasks inside a phase
	Phases    []string // distinct phases with at least one parallel task, in order
	Conflicts []Conflict
}

// phaseClaims maps a path to the task that claimed it first in the current phase.
type phaseClaims map[string]string

// Detect scans doc once and collects every conflict.
func Detect(doc *tasks.Document, logger *log.Logger) Result {
	logger = logging.OrDiscard(logger)

	var res Result
	var phase string
	var active bool
	var claims phaseClaims
	phasesSeen := make(map[string]bool)

	for _, line := range doc.Lines {
		switch line.Kind {
		case tasks.KindPhase:
			phase = line.Phase
			active = true
			claims = make(phaseClaims)
			logger.Debug("phase started", "phase", phase, "line", line.Number)
			continue
		case tasks.KindTask:
		default:
			continue
		}
		if !active || !line.Parallel {
			continue
		}

		res.Tasks++
		if !phasesSeen[phase] {
			phasesSeen[phase] = true
			res.Phases = append(res.Phases, phase)
		}

		for _, token := range line.Tokens {
			if !tasks.IsPathLike(token) {
				continue
			}
			owner, claimed := claims[token]
			switch {
			case !claimed:
				claims[token] = line.TaskID
			case owner != line.TaskID:
				c := Conflict{Phase: phase, Path: token, Owner: owner, Task: line.TaskID}
				logger.Debug("path conflict", "phase", phase, "path", token, "owner", owner, "task", line.TaskID)
				res.Conflicts = append(res.Conflicts, c)
			}
		}
	}
	return res
}

// Validate checks doc for overlapping file claims and returns the verdict
// printed by "selfish parallel-validate".
func Validate(doc *tasks.Document, logger *log.Logger) tasks.Verdict {
	res := Detect(doc, logger)
	marker := doc.ParallelMarker
	if marker == "" {
		marker = tasks.DefaultParallelMarker
	}

	if res.Tasks == 0 {
		return tasks.Verdict{
			Valid: true,
			Lines: []string{fmt.Sprintf("Valid: no %s tasks found, nothing to validate", marker)},
		}
	}

	if len(res.Conflicts) > 0 {
		lines := make([]string, 0, len(res.Conflicts))
		for _, c := range res.Conflicts {
			lines = append(lines, c.String())
		}
		return tasks.Verdict{Valid: false, Lines: lines}
	}

	return tasks.Verdict{
		Valid: true,
		Lines: []string{fmt.Sprintf("Valid: %d %s tasks across %d phases, no file overlaps", res.Tasks, marker, len(res.Phases))},
	}
}
