// Package sieve implements the heuristic matching passes that propose
// cluster merges. Sieves run strictly in their configured order; each sees
// the cumulative clustering left by its predecessors.
package sieve

import (
	"fmt"

	"github.com/clinstack/coref/internal/cluster"
	"github.com/clinstack/coref/internal/model"
)

// Sieve is one matching pass over the whole document. Apply traverses
// mentions in canonical order, proposes merges against the store, and
// returns the number of merges performed.
type Sieve interface {
	Name() string
	Apply(order []int, mentions map[int]*model.Mention, store *cluster.Store) (int, error)
}

// New builds a single sieve from its spec.
func New(spec model.SieveSpec) (Sieve, error) {
	switch spec.Name {
	case "string-match":
		return StringMatch{}, nil
	case "head-match":
		return NewHeadMatch(spec.Level)
	case "dummy":
		return Dummy{}, nil
	default:
		return nil, fmt.Errorf("unknown sieve %q", spec.Name)
	}
}

// Build resolves a configured sequence into sieves, failing on the first
// unknown name before any document is touched.
func Build(specs []model.SieveSpec) ([]Sieve, error) {
	sieves := make([]Sieve, 0, len(specs))
	for _, spec := range specs {
		s, err := New(spec)
		if err != nil {
			return nil, err
		}
		sieves = append(sieves, s)
	}
	return sieves, nil
}
