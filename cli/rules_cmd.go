package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/electa-hq/electa/core/rules"
)

func runRules(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: electa rules <validate|list> <path>")
		return 2
	}

	switch sub := args[0]; sub {
	case "validate":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: electa rules validate <path>")
			return 2
		}
		return runRulesValidate(args[1])
	case "list":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: electa rules list <path>")
			return 2
		}
		return runRulesList(args[1])
	default:
		fmt.Fprintf(os.Stderr, "unknown rules subcommand: %s\n", sub)
		return 2
	}
}

func runRulesValidate(path string) int {
	rs, err := rules.LoadRules(path)
	if err != nil {
		if isValidationError(err) {
			fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	fmt.Printf("ok: %d rule(s)\n", rs.Len())
	return 0
}

func runRulesList(path string) int {
	rs, err := rules.LoadRules(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	for _, r := range rs.Rules() {
		fmt.Printf("%s  [%s/%s]  %d choice(s)  %s\n",
			r.ID, r.Type, r.ChoiceType, len(r.Choice), r.Message)
	}
	return 0
}

// isValidationError distinguishes malformed rule content from I/O problems.
func isValidationError(err error) bool {
	return errors.Is(err, rules.ErrRuleFormat) ||
		errors.Is(err, rules.ErrIDKeyMissing) ||
		errors.Is(err, rules.ErrTypeKeyMissing) ||
		errors.Is(err, rules.ErrPatternKeyMissing)
}
