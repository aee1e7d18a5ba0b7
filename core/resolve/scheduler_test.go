package resolve

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/electa-hq/electa/core/rules"
)

func TestScheduler_Run_CollectsByTaskIndex(t *testing.T) {
	dir := t.TempDir()
	p23 := writeFile(t, dir, "a.java", "sdk 23")
	p21 := writeFile(t, dir, "b.java", "sdk 21")

	r1 := orRule()
	r2 := orRule()
	r2.ID = "sdk2"

	tasks := []Task{
		{Rule: r1, Paths: []string{p23}},
		{Rule: r2, Paths: []string{p21}},
	}

	var s Scheduler
	results, err := s.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 result lists, got %d", len(results))
	}
	if _, ok := results[0][0].Indices[0]; !ok {
		t.Fatalf("task 0 result misplaced: %v", results[0])
	}
	if _, ok := results[1][0].Indices[1]; !ok {
		t.Fatalf("task 1 result misplaced: %v", results[1])
	}
}

func TestScheduler_Run_ManyTasksSmallBatches(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.java", "sdk 23")

	// More tasks than one batch so several dispatch rounds happen.
	var tasks []Task
	for i := 0; i < 25; i++ {
		r := orRule()
		tasks = append(tasks, Task{Rule: r, Paths: []string{p}})
	}

	s := Scheduler{Workers: 4, BatchSize: 3}
	results, err := s.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, recs := range results {
		if len(recs) != 1 {
			t.Fatalf("task %d: expected one record, got %d", i, len(recs))
		}
	}
}

// The first task failure aborts the whole run: all-or-nothing, matching the
// reference behavior. Per-rule failure isolation would be a reasonable
// improvement but is deliberately not implemented.
func TestScheduler_Run_FirstErrorAborts(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.java", "sdk 23")

	bad := orRule()
	bad.ID = "broken"

	tasks := []Task{
		{Rule: orRule(), Paths: []string{good}},
		{Rule: bad, Paths: []string{"/does/not/exist.java"}},
	}

	var s Scheduler
	results, err := s.Run(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected the run to fail")
	}
	if results != nil {
		t.Fatal("no partial results on failure")
	}

	var perr *ProcessingError
	if !errors.As(err, &perr) || perr.RuleID != "broken" {
		t.Fatalf("expected ProcessingError for rule broken, got %v", err)
	}
}

func TestScheduler_Run_OnTaskDone(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.java", "nothing matches here")

	var mu sync.Mutex
	var done []string

	s := Scheduler{
		OnTaskDone: func(r rules.Rule) {
			mu.Lock()
			done = append(done, r.ID)
			mu.Unlock()
		},
	}

	tasks := BuildTasks([]rules.Rule{orRule(), allRule()}, []string{p}, "")
	if _, err := s.Run(context.Background(), tasks); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(done) != 2 {
		t.Fatalf("expected 2 completion callbacks, got %d", len(done))
	}
}

func TestScheduler_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	p := writeFile(t, dir, "a.java", "sdk 23")

	s := Scheduler{Workers: 1, BatchSize: 1}
	_, err := s.Run(ctx, BuildTasks([]rules.Rule{orRule()}, []string{p}, ""))
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Fatal("worker count must be positive")
	}
}
