// Package progress renders scan progress on a terminal. Reporting is purely
// cosmetic: it never affects scan results and disables itself when the
// output is not a TTY.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// redrawsPerSecond bounds how often Step repaints the progress line so that
// fast scans do not flood the terminal.
const redrawsPerSecond = 10

// Reporter tracks completed units of work and repaints a single progress
// line. It is safe for concurrent use by worker goroutines.
type Reporter struct {
	w     io.Writer
	label string
	total int

	mu      sync.Mutex
	done    int
	tty     bool
	limiter *rate.Limiter
}

// NewReporter creates a reporter writing to w. When w is a terminal the
// reporter repaints in place; otherwise Step is silent and only Finish
// prints a summary line.
func NewReporter(w io.Writer, label string, total int) *Reporter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &Reporter{
		w:       w,
		label:   label,
		total:   total,
		tty:     tty,
		limiter: rate.NewLimiter(rate.Limit(redrawsPerSecond), 1),
	}
}

// Step records one completed unit and repaints the line, throttled.
func (r *Reporter) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	if !r.tty || !r.limiter.Allow() {
		return
	}
	fmt.Fprintf(r.w, "\r%s [%d/%d]", r.label, r.done, r.total)
}

// Done returns the number of completed units.
func (r *Reporter) Done() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Finish prints the final count and terminates the progress line.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tty {
		fmt.Fprintf(r.w, "\r%s [%d/%d]\n", r.label, r.done, r.total)
		return
	}
	fmt.Fprintf(r.w, "%s: %d/%d\n", r.label, r.done, r.total)
}
