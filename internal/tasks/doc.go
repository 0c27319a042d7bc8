// Package tasks reads markdown task lists.
//
// A task list is freeform markdown in which a few line shapes carry meaning:
//
//	## Phase 1: Setup
//	- [ ] T001 Create project skeleton
//	- [x] T002 [P] Add config loader in `internal/config/load.go`
//	- [ ] T003 Wire CLI depends: [T001, T002]
//
// Each line is classified once (task declaration, phase heading, or other)
// and its fields are extracted by hand-written scanners. Lines that match no
// shape are kept as KindOther and otherwise ignored; the grammar is
// deliberately permissive.
//
// # Grammar
//
//   - task line: optional whitespace, "-", optional whitespace, "[" then one
//     of ' ', 'x', 'X' then "]", at least one whitespace, then "T" followed by
//     digits. Anything may follow the digits.
//   - parallel marker: after the task id, at least one whitespace and then the
//     marker (default "[P]").
//   - dependencies: the first "depends:" on a task line that is followed by
//     optional whitespace and a bracketed list. Every "T"+digits run inside
//     the brackets is a dependency.
//   - phase heading: a line starting with "## Phase " and a number.
//   - path tokens: non-empty backtick-delimited spans.
package tasks
