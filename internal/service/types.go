package service

import (
	"sort"

	"github.com/SkyEye-FAST/mc-lang/internal/summary"
)

// LocaleFailure records one locale that could not be processed during a
// run. The rest of the run carries on without it.
type LocaleFailure struct {
	Locale string
	Err    error
}

// Result is the outcome of a single update run.
type Result struct {
	// Version is the resolved upstream version id.
	Version string
	// Unchanged is true when the stored marker already matched Version
	// and nothing was fetched or written.
	Unchanged bool
	// Counts holds key statistics for every successfully processed
	// locale.
	Counts map[string]summary.Counts
	// Failures lists the locales that were skipped, with their errors.
	Failures []LocaleFailure
}

// Clean reports whether the run finished without any locale failure.
// Only clean runs advance the version marker.
func (r *Result) Clean() bool {
	return len(r.Failures) == 0
}

// FailedLocales returns the failed locale codes, sorted.
func (r *Result) FailedLocales() []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.Locale)
	}
	sort.Strings(out)
	return out
}
