package sieve

import (
	"fmt"
	"strings"

	"github.com/clinstack/coref/internal/cluster"
	"github.com/clinstack/coref/internal/model"
)

// HeadMatch links mentions sharing a head token, with agreement checks that
// relax as the level drops. Each level is a distinct pipeline stage; stages
// must run from strictest (3) to most relaxed (0), since an early relaxed
// merge cannot be undone.
//
// Checks per level, cumulative from the bottom:
//
//	0: heads equal (case-folded)
//	1: + never link a proper name to a non-name
//	2: + word inclusion: every non-head token of the later mention
//	     occurs in the earlier one
//	3: + same mention type
type HeadMatch struct {
	level int
}

// NewHeadMatch creates a head-match stage for one strictness level (0-3).
func NewHeadMatch(level int) (*HeadMatch, error) {
	if level < 0 || level > 3 {
		return nil, fmt.Errorf("head-match level %d out of range 0-3", level)
	}
	return &HeadMatch{level: level}, nil
}

// Name implements Sieve.
func (s *HeadMatch) Name() string { return fmt.Sprintf("head-match:%d", s.level) }

// Apply implements Sieve.
func (s *HeadMatch) Apply(order []int, mentions map[int]*model.Mention, store *cluster.Store) (int, error) {
	merges := 0
	for i := 0; i < len(order); i++ {
		a := mentions[order[i]]
		if a.Type == model.MentionPronoun {
			continue
		}
		for j := i + 1; j < len(order); j++ {
			b := mentions[order[j]]
			if b.Type == model.MentionPronoun {
				continue
			}
			if !s.compatible(a, b) {
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

func (s *HeadMatch) compatible(a, b *model.Mention) bool {
	ha := strings.ToLower(a.Head())
	if ha == "" || ha != strings.ToLower(b.Head()) {
		return false
	}
	if s.level >= 1 {
		if (a.Type == model.MentionName) != (b.Type == model.MentionName) {
			return false
		}
	}
	if s.level >= 2 && !wordInclusion(a, b) {
		return false
	}
	if s.level >= 3 && a.Type != b.Type {
		return false
	}
	return true
}

// wordInclusion reports whether every non-head token of the later mention
// occurs among the earlier mention's tokens, case-folded.
func wordInclusion(earlier, later *model.Mention) bool {
	vocab := make(map[string]bool, len(earlier.Tokens))
	for _, tok := range earlier.Tokens {
		vocab[strings.ToLower(tok)] = true
	}
	for _, tok := range later.Tokens[:len(later.Tokens)-1] {
		if !vocab[strings.ToLower(tok)] {
			return false
		}
	}
	return true
}
