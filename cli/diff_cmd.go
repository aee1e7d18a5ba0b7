package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/electa-hq/electa/core/diff"
)

// runDiff compares two findings JSON reports and reports divergence.
// Exit codes: 0 = identical, 1 = differences found, 2 = error.
func runDiff(args []string) int {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	var jsonFlag bool
	fs.BoolVar(&jsonFlag, "json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: electa diff [flags] <old.json> <new.json>")
		return 2
	}

	before, err := diff.LoadReport(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	after, err := diff.LoadReport(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	result := diff.Compare(before, after)

	if jsonFlag {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		fmt.Println(string(data))
	} else {
		printDiffResult(result)
	}

	if result.HasDifferences() {
		return 1
	}
	return 0
}

func printDiffResult(result *diff.Result) {
	for _, id := range result.Added {
		fmt.Printf("+ %s\n", id)
	}
	for _, id := range result.Removed {
		fmt.Printf("- %s\n", id)
	}
	for _, c := range result.Changed {
		fmt.Printf("~ %s: %q -> %q\n", c.ID, c.Before, c.After)
	}

	if !result.HasDifferences() {
		fmt.Printf("no differences (%d unchanged)\n", result.Unchanged)
		return
	}
	fmt.Printf("\n%d added, %d removed, %d changed, %d unchanged\n",
		len(result.Added), len(result.Removed), len(result.Changed), result.Unchanged)
}
