package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/electa-hq/electa/server"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var allowedPaths string
	fs.StringVar(&allowedPaths, "allowed-paths", "", "comma-separated list of allowed workspace paths")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	srv := server.New(version, splitList(allowedPaths))
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "error: MCP server failed: %v\n", err)
		return 2
	}
	return 0
}
