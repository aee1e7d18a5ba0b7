package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/electa-hq/electa/cli/tui"
	"github.com/electa-hq/electa/core"
	"github.com/electa-hq/electa/core/progress"
	"github.com/electa-hq/electa/core/report"
	"github.com/electa-hq/electa/core/report/sarif"
	"github.com/electa-hq/electa/core/rules"
)

func runScanCmd(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	var (
		rulesFlag    string
		formatFlag   string
		outputDir    string
		extFlag      string
		altPath      string
		excludeFlag  string
		workers      int
		progressFlag bool
		interactive  bool
		logLevel     string
		quiet        bool
	)
	fs.StringVar(&rulesFlag, "rules", "", "rules file or directory (default: scan.rules from .electa.yaml)")
	fs.StringVar(&formatFlag, "format", "table", "output formats: table,json,sarif,all (comma-separated)")
	fs.StringVar(&outputDir, "output", ".", "output directory for report files")
	fs.StringVar(&extFlag, "ext", "", "comma-separated extension allow-list (e.g. .java,.gradle)")
	fs.StringVar(&altPath, "alt-path", "", "file scanned by rules whose type is not \"code\"")
	fs.StringVar(&excludeFlag, "exclude", "", "comma-separated doublestar globs to skip")
	fs.IntVar(&workers, "workers", 0, "worker pool size (0 = host default)")
	fs.BoolVar(&progressFlag, "progress", false, "show per-rule progress on stderr")
	fs.BoolVar(&interactive, "interactive", false, "inspect findings in a terminal UI")
	fs.StringVar(&logLevel, "log-level", "warn", "log level: trace,debug,info,warn,error,off")
	fs.BoolVar(&quiet, "quiet", false, "suppress all output except errors and reports")
	fs.BoolVar(&quiet, "q", false, "suppress all output except errors and reports (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := "."
	if fs.NArg() > 0 {
		target = fs.Arg(0)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "electa",
		Level:  hclog.LevelFromString(logLevel),
		Output: os.Stderr,
	})

	opts := core.ScanOptions{
		RulesPath:       rulesFlag,
		Extensions:      splitList(extFlag),
		AlternativePath: altPath,
		Exclude:         splitList(excludeFlag),
		Workers:         workers,
		Logger:          logger,
	}

	var reporter *progress.Reporter
	if progressFlag && !quiet {
		opts.OnStart = func(ruleCount, fileCount int) {
			reporter = progress.NewReporter(os.Stderr, "Resolving", ruleCount)
		}
		opts.OnRuleDone = func(rules.Rule) {
			reporter.Step()
		}
	}

	result, err := core.RunScan(target, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return 2
	}
	if reporter != nil {
		reporter.Finish()
	}

	if interactive {
		p := tea.NewProgram(tui.New(result.Findings, result.Rules), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: interactive mode failed: %v\n", err)
			return 2
		}
		return 0
	}

	return writeReports(result, parseFormats(formatFlag), outputDir, quiet)
}

// writeReports renders the scan result in each requested format. Table output
// goes to stdout; json and sarif are written into outputDir.
func writeReports(result *core.ScanResult, formats []string, outputDir string, quiet bool) int {
	needsDir := false
	for _, f := range formats {
		if f == "json" || f == "sarif" {
			needsDir = true
		}
	}
	if needsDir {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: creating output directory: %v\n", err)
			return 2
		}
	}

	for _, format := range formats {
		switch format {
		case "table":
			popts := report.PrintOptions{}
			if !quiet {
				popts.Duration = result.Duration
				popts.FilesScanned = result.FilesScanned
			}
			report.PrintTable(os.Stdout, result.Findings, popts)

		case "json":
			path := filepath.Join(outputDir, "findings.json")
			r := report.NewJSONReporter(version)
			if err := r.WriteToFile(result.Findings, path); err != nil {
				fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", path, err)
				return 2
			}
			if !quiet {
				fmt.Printf("[report] wrote %s\n", path)
			}

		case "sarif":
			path := filepath.Join(outputDir, "results.sarif")
			r := sarif.NewReporter(version, result.Rules)
			if err := r.WriteToFile(result.Findings, path); err != nil {
				fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", path, err)
				return 2
			}
			if !quiet {
				fmt.Printf("[report] wrote %s\n", path)
			}

		default:
			fmt.Fprintf(os.Stderr, "error: unknown format %q\n", format)
			return 2
		}
	}
	return 0
}

// parseFormats splits the comma-separated format flag into individual format
// strings. "all" expands to every supported format.
func parseFormats(flag string) []string {
	if flag == "all" {
		return []string{"table", "json", "sarif"}
	}
	formats := splitList(flag)
	if len(formats) == 0 {
		return []string{"table"}
	}
	return formats
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
