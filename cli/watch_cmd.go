package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/electa-hq/electa/core"
	"github.com/electa-hq/electa/core/report"
)

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var (
		rulesFlag string
		debounce  time.Duration
	)
	fs.StringVar(&rulesFlag, "rules", "", "rules file or directory (default: scan.rules from .electa.yaml)")
	fs.DurationVar(&debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := "."
	if fs.NArg() > 0 {
		target = fs.Arg(0)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating watcher: %v\n", err)
		return 2
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, target); err != nil {
		fmt.Fprintf(os.Stderr, "error: watching directories: %v\n", err)
		return 2
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("watch: scanning %s (debounce: %s)\n", target, debounce)
	printScanResults(target, rulesFlag)

	// Debounced event loop.
	var mu sync.Mutex
	var timer *time.Timer

	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			fmt.Print("\033[2J\033[H") // clear terminal
			fmt.Printf("watch: re-scanning %s\n", target)
			printScanResults(target, rulesFlag)
		})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				// Watch new directories as they appear.
				if event.Has(fsnotify.Create) {
					info, err := os.Stat(event.Name)
					if err == nil && info.IsDir() {
						_ = addDirsRecursive(watcher, event.Name)
					}
				}
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			fmt.Println("\nwatch: stopped")
			return 0
		}
	}
}

func printScanResults(target, rulesPath string) {
	result, err := core.RunScan(target, core.ScanOptions{RulesPath: rulesPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return
	}
	report.PrintTable(os.Stdout, result.Findings, report.PrintOptions{
		Duration:     result.Duration,
		FilesScanned: result.FilesScanned,
	})
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base == ".git" || base == "node_modules" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
