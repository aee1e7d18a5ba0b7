package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/electa-hq/electa/core/rules"
	"github.com/electa-hq/electa/core/textnorm"
)

// MaxFileSize is the per-file size cap in bytes. Larger files are silently
// skipped, never reported as errors.
const MaxFileSize = 5 * 1000 * 1000

// Task pairs one rule with the candidate files it scans. Tasks are built
// once before scheduling and consumed exactly once by a worker.
type Task struct {
	Rule  rules.Rule
	Paths []string
}

// BuildTasks creates one task per rule. Rules whose type is not "code" scan
// only the alternative path when one is configured; every other rule scans
// the caller-supplied file population.
func BuildTasks(ruleList []rules.Rule, paths []string, alternativePath string) []Task {
	tasks := make([]Task, 0, len(ruleList))
	for _, r := range ruleList {
		scanPaths := paths
		if r.Type != "code" && alternativePath != "" {
			scanPaths = []string{alternativePath}
		}
		tasks = append(tasks, Task{Rule: r, Paths: scanPaths})
	}
	return tasks
}

// run scans the task's files in order, applying the extension allow-list and
// size cap, normalizing text, and collecting matches. A snapshot record is
// appended after each file that produced a match. Any error is wrapped in a
// ProcessingError naming the rule.
func (t Task) run(exts []string, matcher rules.Matcher) ([]Record, error) {
	state := newMatchState()
	var records []Record

	for _, p := range t.Paths {
		ext := strings.ToLower(filepath.Ext(p))
		if len(exts) > 0 && !extAllowed(exts, ext) {
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, &ProcessingError{RuleID: t.Rule.ID, Err: err}
		}
		if info.Size() > MaxFileSize {
			continue
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &ProcessingError{RuleID: t.Rule.ID, Err: err}
		}

		text := textnorm.Normalize(data, ext)
		m := matcher.Match(text, t.Rule)
		if m.Empty() {
			continue
		}
		state.add(m)
		records = append(records, state.snapshot(t.Rule))
	}
	return records, nil
}

// extAllowed reports whether ext is in the lowercase allow-list.
func extAllowed(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
