package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/jhlee0409/selfish-pipeline/internal/todo"
)

// exportCommand writes the task list as a JSON or YAML task document.
func (a *app) exportCommand(args []string) error {
	fs := flag.NewFlagSet("selfish export", flag.ContinueOnError)
	fs.SetOutput(a.io.err)
	formatStr := fs.String("format", a.cfg.ExportFormat, "Output format (json|yaml)")
	outPath := fs.String("out", "", "Write to file instead of stdout")
	fs.Usage = func() {
		fmt.Fprintln(a.io.err, "Usage: selfish export [-format json|yaml] [-out path] <tasks_file_path>")
		fs.PrintDefaults()
	}
	if done, err := parseSubcommand(fs, args); done {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitSilently(1)
	}

	format, err := todo.ParseFormat(*formatStr)
	if err != nil {
		return err
	}

	doc, err := a.readTasks(fs.Arg(0))
	if err != nil {
		return err
	}
	file := todo.FromDocument(doc)

	// Encode fully before touching the output file.
	var buf bytes.Buffer
	if err := file.Encode(&buf, format); err != nil {
		return err
	}

	if *outPath == "" {
		_, err := a.io.out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *outPath, err)
	}
	a.logger.Info("exported task document", "path", *outPath, "format", format, "tasks", len(file.Tasks))
	return nil
}
