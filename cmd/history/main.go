// Command history lists recent training runs recorded by train -history.
//
// Usage:
//
//	history [-limit n] <sqlite_file>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/YuminosukeSato/linreg/history"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: history [flags] <sqlite_file>")
		fs.PrintDefaults()
	}
	limit := fs.Int("limit", history.DefaultLimit, "number of runs to show")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if _, err := os.Stat(fs.Arg(0)); err != nil {
		fmt.Fprintf(stdout, "History file '%s' not found.\n", fs.Arg(0))
		return 1
	}

	store, err := history.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stdout, "An error occurred: %v\n", err)
		return 1
	}
	defer store.Close()

	runs, err := store.List(ctx, *limit)
	if err != nil {
		fmt.Fprintf(stdout, "An error occurred: %v\n", err)
		return 1
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tRUN\tSAMPLES\tITERATIONS\tTHETA0\tTHETA1\tPRECISION")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\t%g\t%.2f%%\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.Samples, r.Iterations,
			r.Theta0, r.Theta1, r.Precision*100)
	}
	if err := w.Flush(); err != nil {
		return 1
	}
	return 0
}
