// Package budget implements the keyword heuristic that buckets event text
// into free and paid options. It is deliberately crude: case-insensitive
// substring containment on whole lines, free indicators checked before paid
// ones, lines matching neither ignored.
package budget

import "strings"

// freeKeywords mark a line as a free option. Checked first, so a line
// mentioning both "free entry" and a price still lands in the free bucket.
var freeKeywords = []string{
	"free", "no entry fee", "$0", "free entry", "no charge", "complimentary", "free admission",
}

// paidKeywords mark a line as a paid option when no free keyword matched.
var paidKeywords = []string{
	"$", "aud", "dollar", "price", "ticket", "cost", "fee",
}

// Disclaimer is appended to every report.
const Disclaimer = "Always verify prices on official event pages as pricing may have changed."

// sampleCap limits how many lines per bucket are quoted back verbatim.
const sampleCap = 5

// Report is the outcome of one budget analysis. Counts cover every matched
// line; samples hold at most the first five of each bucket.
type Report struct {
	MaxBudget   string   `json:"max_budget_aud"`
	FreeCount   int      `json:"free_count"`
	PaidCount   int      `json:"paid_count"`
	FreeSamples []string `json:"free_samples"`
	PaidSamples []string `json:"paid_samples"`
	Disclaimer  string   `json:"disclaimer"`
}

// Analyze classifies each line of text independently. Matching is
// case-insensitive; quoted sample lines keep their original casing, trimmed
// of surrounding whitespace. Deterministic for identical input.
func Analyze(text, maxBudget string) Report {
	r := Report{
		MaxBudget:   maxBudget,
		FreeSamples: []string{},
		PaidSamples: []string{},
		Disclaimer:  Disclaimer,
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, freeKeywords):
			r.FreeCount++
			if len(r.FreeSamples) < sampleCap {
				r.FreeSamples = append(r.FreeSamples, strings.TrimSpace(line))
			}
		case containsAny(lower, paidKeywords):
			r.PaidCount++
			if len(r.PaidSamples) < sampleCap {
				r.PaidSamples = append(r.PaidSamples, strings.TrimSpace(line))
			}
		}
	}

	return r
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
