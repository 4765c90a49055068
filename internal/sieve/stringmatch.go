package sieve

import (
	"strings"

	"github.com/clinstack/coref/internal/cluster"
	"github.com/clinstack/coref/internal/model"
)

// StringMatch links every pair of mentions whose rendered token strings are
// equal after case folding. Pronouns are excluded; "he" matching "he" across
// a document says nothing about identity.
type StringMatch struct{}

// Name implements Sieve.
func (StringMatch) Name() string { return "string-match" }

// Apply implements Sieve.
func (StringMatch) Apply(order []int, mentions map[int]*model.Mention, store *cluster.Store) (int, error) {
	merges := 0
	for i := 0; i < len(order); i++ {
		a := mentions[order[i]]
		if a.Type == model.MentionPronoun {
			continue
		}
		key := normalize(a.Tokens)
		if key == "" {
			continue
		}
		for j := i + 1; j < len(order); j++ {
			b := mentions[order[j]]
			if b.Type == model.MentionPronoun {
				continue
			}
			if normalize(b.Tokens) != key {
				continue
			}
			merged, err := store.Merge(a.ID, b.ID)
			if err != nil {
				return merges, err
			}
			if merged {
				merges++
			}
		}
	}
	return merges, nil
}

// normalize renders the comparison string for a token sequence.
func normalize(tokens []string) string {
	return strings.ToLower(strings.Join(tokens, " "))
}
