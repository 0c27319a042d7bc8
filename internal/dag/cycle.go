package dag

const (
	white = iota
	gray
	black
)

// FindCycle returns the first cycle reached by a depth-first search over the
// declared tasks, as a closed path such as [T1 T2 T3 T1]. It returns nil when
// the graph is acyclic.
//
// Roots are visited in declaration order and neighbours in insertion order,
// so the same document always yields the same path.
func (g *Graph) FindCycle() []string {
	color := make(map[string]int, len(g.tasks))
	parent := make(map[string]string, len(g.tasks))
	for _, id := range g.tasks {
		color[id] = white
	}

	var cycle []string
	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range g.out[node] {
			c, ok := color[next]
			if !ok {
				continue
			}
			switch c {
			case gray:
				cycle = closeCycle(next, node, parent)
				return true
			case white:
				parent[next] = node
				if visit(next) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for _, id := range g.tasks {
		if color[id] != white {
			continue
		}
		if visit(id) {
			return cycle
		}
	}
	return nil
}

// closeCycle walks parent pointers from node back to repeat and returns the
// path repeat -> ... -> node -> repeat.
func closeCycle(repeat, node string, parent map[string]string) []string {
	walk := []string{repeat, node}
	cur := node
	for cur != repeat {
		p, ok := parent[cur]
		if !ok {
			break
		}
		cur = p
		walk = append(walk, cur)
	}

	path := make([]string, len(walk))
	for i := range walk {
		path[i] = walk[len(walk)-1-i]
	}
	return path
}

// Check returns a *GraphError wrapping ErrCycleFound when the graph has a cycle.
func (g *Graph) Check() error {
	if cycle := g.FindCycle(); cycle != nil {
		return cycleError(cycle)
	}
	return nil
}
