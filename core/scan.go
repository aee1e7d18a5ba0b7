// Package core provides the shared choice-resolution pipeline for electa.
package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/electa-hq/electa/core/discovery"
	"github.com/electa-hq/electa/core/findings"
	"github.com/electa-hq/electa/core/resolve"
	"github.com/electa-hq/electa/core/rules"
)

// ScanOptions holds optional parameters for RunScan. The zero value applies
// project config and host defaults. CLI flags take precedence over
// .electa.yaml values.
type ScanOptions struct {
	// RulesPath is a YAML rules file or directory. When empty, the
	// project config's scan.rules setting applies.
	RulesPath string
	// Extensions overrides the extension allow-list.
	Extensions []string
	// AlternativePath overrides the non-"code" rule scan location.
	AlternativePath string
	// Exclude adds discovery exclude globs on top of the project config.
	Exclude []string
	// Workers bounds the worker pool. Zero means the host default.
	Workers int
	// Matcher overrides the pattern matcher. Nil means literal matching.
	Matcher rules.Matcher
	// OnStart, when set, is called once before resolution begins with the
	// loaded rule count and discovered file count.
	OnStart func(ruleCount, fileCount int)
	// OnRuleDone, when set, is called after each rule finishes scanning.
	// It runs on worker goroutines and must be safe for concurrent use.
	OnRuleDone func(rules.Rule)
	// Logger receives pipeline debug output. Nil disables logging.
	Logger hclog.Logger
}

// ScanResult holds the complete output of one scan invocation.
type ScanResult struct {
	Findings     findings.Map
	Rules        *rules.RuleSet
	FilesScanned int
	Duration     time.Duration
}

// RunScan executes the full pipeline against the given target directory:
// project config, rule loading and validation, file discovery, parallel
// per-rule resolution, and finding aggregation.
func RunScan(target string, opts ScanOptions) (*ScanResult, error) {
	return RunScanContext(context.Background(), target, opts)
}

// RunScanContext is RunScan with caller-controlled cancellation.
func RunScanContext(ctx context.Context, target string, opts ScanOptions) (*ScanResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cfg, err := LoadScanConfig(target)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rulesPath := opts.RulesPath
	if rulesPath == "" && cfg.Scan.Rules != "" {
		// Paths from the config file resolve against the target; explicit
		// option paths resolve against the working directory.
		rulesPath = cfg.Scan.Rules
		if !filepath.IsAbs(rulesPath) {
			rulesPath = filepath.Join(target, rulesPath)
		}
	}
	if rulesPath == "" {
		return nil, fmt.Errorf("no rules configured: pass a rules path or set scan.rules in %s", ConfigFileName)
	}

	ruleSet, err := rules.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("rules loaded", "path", rulesPath, "count", ruleSet.Len())

	walker := discovery.NewWalker(target)
	walker.ExcludeGlobs = append(walker.ExcludeGlobs, cfg.Scan.Exclude...)
	walker.ExcludeGlobs = append(walker.ExcludeGlobs, opts.Exclude...)
	paths, err := walker.Walk()
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	logger.Debug("files discovered", "count", len(paths))

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = cfg.Scan.Extensions
	}
	altPath := opts.AlternativePath
	if altPath == "" {
		altPath = cfg.Scan.AlternativePath
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.Scan.Workers
	}

	if opts.OnStart != nil {
		opts.OnStart(ruleSet.Len(), len(paths))
	}

	started := time.Now()
	fm, err := ResolveFiles(ctx, ruleSet.Rules(), paths, ResolveOptions{
		Extensions:      exts,
		AlternativePath: altPath,
		Workers:         workers,
		Matcher:         opts.Matcher,
		OnRuleDone:      opts.OnRuleDone,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		Findings:     fm,
		Rules:        ruleSet,
		FilesScanned: len(paths),
		Duration:     time.Since(started),
	}, nil
}

// ResolveOptions configures ResolveFiles.
type ResolveOptions struct {
	Extensions      []string
	AlternativePath string
	Workers         int
	Matcher         rules.Matcher
	OnRuleDone      func(rules.Rule)
	Logger          hclog.Logger
}

// ResolveFiles is the in-process library boundary of the resolution core:
// given validated-or-not rules and an already-expanded file population, it
// validates the rules, scans them in parallel, and reduces the raw matches
// into the finding map. An empty rule set or file population yields an empty
// map.
func ResolveFiles(ctx context.Context, ruleList []rules.Rule, paths []string, opts ResolveOptions) (findings.Map, error) {
	if err := rules.Validate(ruleList); err != nil {
		return nil, err
	}
	if len(ruleList) == 0 || len(paths) == 0 {
		return findings.Map{}, nil
	}

	tasks := resolve.BuildTasks(ruleList, paths, opts.AlternativePath)
	sched := resolve.Scheduler{
		Workers:    opts.Workers,
		Matcher:    opts.Matcher,
		Extensions: opts.Extensions,
		Logger:     opts.Logger,
		OnTaskDone: opts.OnRuleDone,
	}
	results, err := sched.Run(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return findings.Aggregate(ruleList, results), nil
}
