// Package main is the entry point for the electa CLI.
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code.
// 0 = success, 1 = validation failure, 2 = error.
func run(args []string) int {
	fs := flag.NewFlagSet("electa", flag.ContinueOnError)

	var versionFlag bool
	fs.BoolVar(&versionFlag, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: electa <command> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  scan <path>     Resolve choice rules against a directory\n")
		fmt.Fprintf(os.Stderr, "  watch <path>    Re-scan on file changes\n")
		fmt.Fprintf(os.Stderr, "  rules <subcmd>  Validate or list rule files\n")
		fmt.Fprintf(os.Stderr, "  diff <a> <b>    Compare two findings reports\n")
		fmt.Fprintf(os.Stderr, "  serve           Start MCP server on stdio\n")
		fmt.Fprintf(os.Stderr, "  completion      Generate shell completions\n")
		fmt.Fprintf(os.Stderr, "  version         Print version and exit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if versionFlag {
		printVersion()
		return 0
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return 2
	}

	switch command := remaining[0]; command {
	case "scan":
		return runScanCmd(remaining[1:])
	case "watch":
		return runWatch(remaining[1:])
	case "rules":
		return runRules(remaining[1:])
	case "diff":
		return runDiff(remaining[1:])
	case "serve":
		return runServe(remaining[1:])
	case "completion":
		return runCompletion(remaining[1:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fmt.Fprintln(os.Stderr, "Usage: electa <command> [flags]")
		return 2
	}
}

func printVersion() {
	fmt.Printf("electa %s (commit: %s, built: %s)\n", version, commit, date)
}
