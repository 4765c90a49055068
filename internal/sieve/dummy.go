package sieve

import (
	"github.com/clinstack/coref/internal/cluster"
	"github.com/clinstack/coref/internal/model"
)

// Dummy links every second mention in canonical order to its immediate
// predecessor. It carries no linguistic meaning and exists only to exercise
// the merge mechanism; it is never part of the default pipeline.
type Dummy struct{}

// Name implements Sieve.
func (Dummy) Name() string { return "dummy" }

// Apply implements Sieve.
func (Dummy) Apply(order []int, _ map[int]*model.Mention, store *cluster.Store) (int, error) {
	merges := 0
	for i := 1; i < len(order); i += 2 {
		merged, err := store.Merge(order[i-1], order[i])
		if err != nil {
			return merges, err
		}
		if merged {
			merges++
		}
	}
	return merges, nil
}
