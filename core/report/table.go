package report

import (
	"fmt"
	"io"
	"time"

	"github.com/electa-hq/electa/core/findings"
)

// PrintOptions controls the plain-text rendering of a finding map.
type PrintOptions struct {
	// ShowDescription adds each rule's message under its resolved choice.
	ShowDescription bool
	// Duration and FilesScanned, when set, print a summary footer.
	Duration     time.Duration
	FilesScanned int
}

// PrintTable renders the finding map as aligned plain text, one rule per
// line, sorted by rule ID.
func PrintTable(w io.Writer, fm findings.Map, opts PrintOptions) {
	ids := fm.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No choices resolved.")
	} else {
		maxID := 0
		for _, id := range ids {
			if len(id) > maxID {
				maxID = len(id)
			}
		}
		for _, id := range ids {
			f := fm[id]
			fmt.Fprintf(w, "%-*s  %s\n", maxID, id, f.Choice)
			if opts.ShowDescription && f.Description != "" {
				fmt.Fprintf(w, "%-*s  %s\n", maxID, "", f.Description)
			}
		}
	}

	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Rules resolved: %d\n", len(ids))
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		}
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
	}
}
