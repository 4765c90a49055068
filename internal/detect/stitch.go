package detect

import (
	"sort"

	"github.com/clinstack/coref/internal/model"
)

// stitchNames merges adjacent split proper-name fragments into one mention.
// The scan is forward-only and non-backtracking: for each name mention it
// greedily absorbs every following not-yet-consumed name in the same
// sentence whose begin equals the current end, and stops at the first
// fragment that breaks contiguity. Mentions run in extraction order, so
// fragments of one name are adjacent.
func stitchNames(mentions []*model.Mention) []*model.Mention {
	consumed := make(map[int]bool)
	out := make([]*model.Mention, 0, len(mentions))

	for i, m := range mentions {
		if consumed[m.ID] {
			continue
		}
		if m.Type == model.MentionName {
			for j := i + 1; j < len(mentions); j++ {
				next := mentions[j]
				if consumed[next.ID] {
					continue
				}
				if next.Type != model.MentionName ||
					next.SentenceIndex != m.SentenceIndex ||
					next.Begin != m.End {
					break
				}
				m.End = next.End
				m.Tokens = append(m.Tokens, next.Tokens...)
				consumed[next.ID] = true
			}
		}
		out = append(out, m)
	}
	return out
}

// dedupe keeps the first mention encountered in extraction order for every
// (sentence, begin, end) span and discards the rest. Overlapping rules can
// independently derive the same span; exactly one occurrence survives.
func dedupe(mentions []*model.Mention) []*model.Mention {
	type span struct{ sentence, begin, end int }
	seen := make(map[span]bool)
	out := make([]*model.Mention, 0, len(mentions))

	for _, m := range mentions {
		key := span{m.SentenceIndex, m.Begin, m.End}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// canonicalOrder sorts mention ids by (sentence, begin, end), with the
// extraction-time id as tiebreak so the order is deterministic. Every sieve
// traverses mentions in this order.
func canonicalOrder(mentions []*model.Mention) []int {
	sorted := make([]*model.Mention, len(mentions))
	copy(sorted, mentions)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SentenceIndex != b.SentenceIndex {
			return a.SentenceIndex < b.SentenceIndex
		}
		if a.Begin != b.Begin {
			return a.Begin < b.Begin
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})

	order := make([]int, len(sorted))
	for i, m := range sorted {
		order[i] = m.ID
	}
	return order
}
