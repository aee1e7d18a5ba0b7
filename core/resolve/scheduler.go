package resolve

import (
	"context"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/electa-hq/electa/core/rules"
)

// DefaultBatchSize is the number of tasks handed to a worker per dispatch
// round.
const DefaultBatchSize = 10

// windowsMaxWorkers caps the pool on Windows, which limits the number of
// handles a process can wait on simultaneously.
const windowsMaxWorkers = 61

// DefaultWorkers returns the worker count for the current host: the
// available hardware parallelism, capped on Windows.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if runtime.GOOS == "windows" && n > windowsMaxWorkers {
		n = windowsMaxWorkers
	}
	return n
}

// Scheduler fans tasks out across a bounded worker pool. Each worker owns
// its tasks' match state outright; the only synchronization is the final
// join. The zero value is usable and applies all defaults.
type Scheduler struct {
	// Workers bounds the pool. Zero means DefaultWorkers().
	Workers int
	// BatchSize is the number of tasks per dispatch round. Zero means
	// DefaultBatchSize.
	BatchSize int
	// Matcher applies rules to normalized text. Nil means the built-in
	// literal matcher.
	Matcher rules.Matcher
	// Extensions is the allow-list of file extensions, matched
	// case-insensitively. Empty means no filtering.
	Extensions []string
	// Logger receives per-task debug output. Nil means no logging.
	Logger hclog.Logger
	// OnTaskDone, when set, is called after each task completes. It is
	// invoked from worker goroutines and must be safe for concurrent use.
	OnTaskDone func(rules.Rule)
}

// Run executes all tasks and returns their record lists indexed by task
// position. The first task error cancels the remaining work and is returned;
// no partial results are exposed on failure.
func (s *Scheduler) Run(ctx context.Context, tasks []Task) ([][]Record, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	matcher := s.Matcher
	if matcher == nil {
		matcher = rules.LiteralMatcher{}
	}
	logger := s.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	exts := make([]string, 0, len(s.Extensions))
	for _, e := range s.Extensions {
		exts = append(exts, strings.ToLower(e))
	}

	results := make([][]Record, len(tasks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// Tasks are dispatched in fixed-size batches so a worker amortizes
	// scheduling overhead across several small rules. Batches write to
	// disjoint regions of results, so no locking is needed.
	for start := 0; start < len(tasks); start += batchSize {
		end := min(start+batchSize, len(tasks))
		start := start

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				recs, err := tasks[i].run(exts, matcher)
				if err != nil {
					return err
				}
				logger.Debug("rule scanned",
					"rule", tasks[i].Rule.ID,
					"files", len(tasks[i].Paths),
					"records", len(recs))
				results[i] = recs
				if s.OnTaskDone != nil {
					s.OnTaskDone(tasks[i].Rule)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
