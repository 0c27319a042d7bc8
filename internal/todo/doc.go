// Package todo converts a markdown task list into a structured task document.
//
// The document mirrors what the validators see:
//
//	{
//	  "schema_version": 1,
//	  "source_files": ["tasks.md"],
//	  "tasks": [
//	    {
//	      "id": "T002",
//	      "title": "Add config loader in `internal/config/load.go`",
//	      "status": "done",
//	      "phase": "1",
//	      "parallel": true,
//	      "files": ["internal/config/load.go"],
//	      "depends_on": ["T001"],
//	      "line": 4
//	    }
//	  ]
//	}
//
// # Validation
//
// JSON output is checked against the embedded JSON Schema (tasks.schema.json,
// draft 2020-12) before it is written. YAML output carries the same fields.
//
// # Status Values
//
//   - "todo": the checkbox is empty
//   - "done": the checkbox is checked (x or X)
package todo
