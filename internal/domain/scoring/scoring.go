// Package scoring computes appraisal API points for each form section.
//
// Every calculator is a pure function of its input: no I/O, no shared state,
// safe for concurrent use. Totals are capped after summation, never per entry.
package scoring

import "sort"

// Outcome is the score of a single entry. An entry is either Scored with a
// value or Undetermined with a reason; callers branch on Value before use.
type Outcome struct {
	value      float64
	reason     string
	determined bool
}

// Scored returns a determined outcome.
func Scored(v float64) Outcome {
	return Outcome{value: v, determined: true}
}

// Undetermined returns an outcome whose data does not select any scoring rule.
func Undetermined(reason string) Outcome {
	return Outcome{reason: reason}
}

// Value reports the score and whether it was determined.
func (o Outcome) Value() (float64, bool) {
	return o.value, o.determined
}

// Reason explains an undetermined outcome. Empty for scored outcomes.
func (o Outcome) Reason() string {
	return o.reason
}

// Points is the contribution of the outcome to a section total.
// Undetermined outcomes contribute nothing.
func (o Outcome) Points() float64 {
	if !o.determined {
		return 0
	}
	return o.value
}

func (o Outcome) add(v float64) Outcome {
	if !o.determined {
		return o
	}
	return Scored(o.value + v)
}

// Cap bounds an accumulated score by ceiling.
func Cap(raw, ceiling float64) float64 {
	return min(raw, ceiling)
}

// Result is the score of a whole section.
type Result struct {
	Score float64
	// Entries holds one outcome per submitted entry, in submission order.
	Entries []Outcome
	// Parts holds sub-totals keyed by sub-section, for sections scored that way.
	Parts map[string]float64
}

// Undetermined returns the indexes of entries that could not be scored.
func (r Result) Undetermined() []int {
	var idx []int
	for i, e := range r.Entries {
		if _, ok := e.Value(); !ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// sumEntries totals a list of outcomes.
func sumEntries(entries []Outcome) float64 {
	var total float64
	for _, e := range entries {
		total += e.Points()
	}
	return total
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
