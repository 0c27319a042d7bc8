package dag

import (
	"github.com/charmbracelet/log"

	"github.com/jhlee0409/selfish-pipeline/internal/logging"
	"github.com/jhlee0409/selfish-pipeline/internal/tasks"
)

type edge struct {
	from, to string
}

// Graph is a dependency graph with deterministic iteration order.
type Graph struct {
	nodes    []string // first appearance order, declared and inferred
	declared map[string]bool
	known    map[string]bool
	tasks    []string // declared only, declaration order
	out      map[string][]string
	edges    map[edge]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		declared: make(map[string]bool),
		known:    make(map[string]bool),
		out:      make(map[string][]string),
		edges:    make(map[edge]struct{}),
	}
}

func (g *Graph) addNode(id string) {
	if g.known[id] {
		return
	}
	g.known[id] = true
	g.nodes = append(g.nodes, id)
}

// AddTask declares a task. Declaring the same id again has no effect.
func (g *Graph) AddTask(id string) {
	g.addNode(id)
	if g.declared[id] {
		return
	}
	g.declared[id] = true
	g.tasks = append(g.tasks, id)
}

// AddDependency records that dependent cannot start before dependency
// finishes. It reports false when the edge already existed.
func (g *Graph) AddDependency(dependency, dependent string) bool {
	g.addNode(dependency)
	g.addNode(dependent)
	e := edge{from: dependency, to: dependent}
	if _, ok := g.edges[e]; ok {
		return false
	}
	g.edges[e] = struct{}{}
	g.out[dependency] = append(g.out[dependency], dependent)
	return true
}

// Tasks returns the declared task ids in declaration order.
func (g *Graph) Tasks() []string {
	return append([]string(nil), g.tasks...)
}

// Nodes returns every node, declared or inferred, in first-appearance order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Declared reports whether id was declared as a task.
func (g *Graph) Declared(id string) bool {
	return g.declared[id]
}

// Dependents returns the ids that depend on id, in insertion order.
func (g *Graph) Dependents(id string) []string {
	return append([]string(nil), g.out[id]...)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Build extracts the dependency graph from doc.
func Build(doc *tasks.Document, logger *log.Logger) *Graph {
	logger = logging.OrDiscard(logger)
	g := NewGraph()

	for _, line := range doc.Lines {
		if line.Kind != tasks.KindTask {
			continue
		}
		g.AddTask(line.TaskID)
		for _, dep := range line.Depends {
			if !g.AddDependency(dep, line.TaskID) {
				logger.Debug("duplicate dependency ignored", "task", line.TaskID, "depends", dep, "line", line.Number)
			}
		}
	}

	for _, id := range g.nodes {
		if !g.declared[id] {
			logger.Debug("dependency on undeclared task", "task", id, "dependents", g.out[id])
		}
	}
	logger.Debug("dependency graph built", "tasks", len(g.tasks), "nodes", len(g.nodes), "edges", len(g.edges))
	return g
}
