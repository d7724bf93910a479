package analysis

import (
	"errors"
	"strings"
)

// Merge combines per-chunk results into one document-level result using
// conservative rules: majority vote for categorical fields, union+dedupe for
// lists, and sentinel-preferring merges for scalar fields where a conflict is
// surfaced instead of resolved. A single-element input merges to itself.
//
// The categorical tie-break (earliest chunk wins) makes ties order-sensitive
// on purpose: the opening chunk usually carries the prepared remarks and the
// most context.
func Merge(results []Result) (Result, error) {
	if len(results) == 0 {
		return Result{}, errors.New("merge: no results")
	}
	if len(results) == 1 {
		return results[0], nil
	}

	merged := Result{
		ManagementTone:  majority(pick(results, func(r Result) string { return r.ManagementTone })),
		ConfidenceLevel: majority(pick(results, func(r Result) string { return r.ConfidenceLevel })),
		ForwardGuidance: ForwardGuidance{
			Revenue: mergeScalar(pick(results, func(r Result) string { return r.ForwardGuidance.Revenue })),
			Margin:  mergeScalar(pick(results, func(r Result) string { return r.ForwardGuidance.Margin })),
			Capex:   mergeScalar(pick(results, func(r Result) string { return r.ForwardGuidance.Capex })),
		},
		CapacityUtilizationTrends: mergeScalar(pick(results, func(r Result) string { return r.CapacityUtilizationTrends })),
	}
	merged.KeyPositives = mergeLists(results, func(r Result) []string { return r.KeyPositives })
	merged.KeyConcerns = mergeLists(results, func(r Result) []string { return r.KeyConcerns })
	merged.GrowthInitiatives = mergeLists(results, func(r Result) []string { return r.GrowthInitiatives })
	return merged, nil
}

func pick(results []Result, field func(Result) string) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, field(r))
	}
	return out
}

// majority returns the most frequent value; on a tie the value that first
// appears earliest in input order wins.
func majority(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// mergeLists unions list items across chunks, de-duplicating by
// case-insensitive match while keeping first-seen casing and order, then
// truncates to MaxListItems.
func mergeLists(results []Result, field func(Result) []string) []string {
	seen := make(map[string]bool)
	merged := []string{}
	for _, r := range results {
		for _, item := range field(r) {
			item = strings.TrimSpace(item)
			if item == "" || item == NotMentioned {
				continue
			}
			key := strings.ToLower(item)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, item)
		}
	}
	if len(merged) > MaxListItems {
		merged = merged[:MaxListItems]
	}
	return merged
}

// mergeScalar prefers the sentinel over guessing: a single distinct reported
// value is used as-is, while multiple distinct values become a flagged
// conflict listing every value rather than an arbitrary winner.
func mergeScalar(values []string) string {
	distinct := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || v == NotMentioned {
			continue
		}
		dup := false
		for _, d := range distinct {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			distinct = append(distinct, v)
		}
	}
	switch len(distinct) {
	case 0:
		return NotMentioned
	case 1:
		return distinct[0]
	default:
		return ConflictPrefix + strings.Join(distinct, " | ")
	}
}
