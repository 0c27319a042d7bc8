// Package dag builds the task dependency graph of a markdown task list and
// checks that it is acyclic.
//
// Edges point from a dependency to its dependent: "T003 depends: [T001]"
// yields T001 -> T003. Ids that appear only inside a depends list are kept as
// inferred nodes; they can never close a cycle because nothing points at them.
//
// Cycle detection is a white/gray/black depth-first search rooted at each
// declared task in document order. The first back edge found is reported as
// a closed path (first and last element equal); no attempt is made to list
// every cycle.
package dag
