// Package summary aggregates per-locale statistics of an update run
// into the summary report artifact.
package summary

import (
	"encoding/json"
	"fmt"

	"github.com/SkyEye-FAST/mc-lang/internal/lang"
)

// Counts holds the raw per-locale key counts collected while
// processing.
type Counts struct {
	TotalKeys int
	ValidKeys int
}

// LocaleStats is the per-locale record of the summary report. The
// completeness ratio is relative to the base locale's valid key count
// and is null when the base locale is unavailable.
type LocaleStats struct {
	TotalKeys         int      `json:"total_keys"`
	ValidKeys         int      `json:"valid_keys"`
	CompletenessRatio *float64 `json:"completeness_ratio"`
}

// Report maps locale codes to their statistics. It is regenerated in
// full on every run.
type Report map[string]LocaleStats

// Build computes the report from collected counts. Locales that failed
// during the run are simply absent from counts and from the report.
func Build(counts map[string]Counts, baseLocale string) Report {
	report := make(Report, len(counts))

	baseValid := 0
	if base, ok := counts[baseLocale]; ok {
		baseValid = base.ValidKeys
	}

	for locale, c := range counts {
		stats := LocaleStats{
			TotalKeys: c.TotalKeys,
			ValidKeys: c.ValidKeys,
		}
		if baseValid > 0 {
			ratio := float64(c.ValidKeys) / float64(baseValid)
			if locale == baseLocale {
				ratio = 1.0
			}
			stats.CompletenessRatio = &ratio
		}
		report[locale] = stats
	}

	return report
}

// Encode renders the report as indented JSON. Map keys are sorted by
// the encoder, so identical inputs produce identical bytes.
func (r Report) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary report: %w", err)
	}
	return append(data, '\n'), nil
}

// sampleSize bounds how many display strings feed language detection.
const sampleSize = 200

func sampleText(m *lang.Mapping) string {
	var text string
	for i, e := range m.Entries() {
		if i >= sampleSize {
			break
		}
		text += e.Value + "\n"
	}
	return text
}
