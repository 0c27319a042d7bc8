// Package parallel checks that tasks marked parallel-safe within one phase do
// not claim the same file.
//
// A phase starts at each "## Phase N" heading and ends at the next one. Only
// task lines carrying the parallel marker inside a phase take part. Each
// backtick span on such a line that looks like a path (contains "/" or ".")
// is a claim. The first task to claim a path owns it for the rest of the
// phase; every later claim by a different task produces one conflict naming
// the owner.
package parallel
