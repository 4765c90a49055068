// Package cluster owns the partition of mentions into entity clusters. The
// store is the single mutation point for entity membership: sieves propose
// merges, the store applies them.
package cluster

import (
	"errors"
	"fmt"

	"github.com/clinstack/coref/internal/model"
)

// ErrNotInitialized is returned when the store is used before Init.
var ErrNotInitialized = errors.New("cluster store not initialized")

// Store maps mention ids to clusters directly, so lookup and merge never
// scan the cluster list. Merges are monotonic: once two mentions share a
// cluster they can never be separated.
type Store struct {
	mentions    map[int]*model.Mention
	clusters    map[int]*model.Cluster
	initialized bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		mentions: make(map[int]*model.Mention),
		clusters: make(map[int]*model.Cluster),
	}
}

// Init creates one singleton cluster per mention, reusing the mention id as
// the cluster id for traceability. It must run exactly once, after
// extraction and before any sieve.
func (s *Store) Init(order []int, mentions map[int]*model.Mention) error {
	if s.initialized {
		return errors.New("cluster store already initialized")
	}
	for _, id := range order {
		m, ok := mentions[id]
		if !ok {
			return fmt.Errorf("mention %d in order but not in table", id)
		}
		m.ClusterID = id
		s.mentions[id] = m
		s.clusters[id] = &model.Cluster{ID: id, Members: []int{id}}
	}
	s.initialized = true
	return nil
}

// Merge absorbs the cluster containing b into the cluster containing a and
// retargets every moved mention's ClusterID. A merge of two mentions that
// already share a cluster is a silent no-op; later sieves may independently
// propose the same link. Merge reports whether a merge happened.
func (s *Store) Merge(a, b int) (bool, error) {
	if !s.initialized {
		return false, ErrNotInitialized
	}
	ma, ok := s.mentions[a]
	if !ok {
		return false, fmt.Errorf("unknown mention %d", a)
	}
	mb, ok := s.mentions[b]
	if !ok {
		return false, fmt.Errorf("unknown mention %d", b)
	}
	if ma.ClusterID == mb.ClusterID {
		return false, nil
	}

	// Resolve both clusters before touching either, so no intermediate
	// state with a mention in two clusters is ever observable.
	survivor := s.clusters[ma.ClusterID]
	casualty := s.clusters[mb.ClusterID]

	for _, id := range casualty.Members {
		s.mentions[id].ClusterID = survivor.ID
	}
	survivor.Members = append(survivor.Members, casualty.Members...)
	delete(s.clusters, casualty.ID)
	return true, nil
}

// ClusterOf returns the cluster id of a mention.
func (s *Store) ClusterOf(mentionID int) (int, bool) {
	m, ok := s.mentions[mentionID]
	if !ok {
		return 0, false
	}
	return m.ClusterID, true
}

// Members returns the member mention ids of a cluster.
func (s *Store) Members(clusterID int) ([]int, bool) {
	c, ok := s.clusters[clusterID]
	if !ok {
		return nil, false
	}
	return c.Members, true
}

// ClusterIDs returns the ids of all live clusters.
func (s *Store) ClusterIDs() []int {
	ids := make([]int, 0, len(s.clusters))
	for id := range s.clusters {
		ids = append(ids, id)
	}
	return ids
}

// NumClusters returns the number of live clusters.
func (s *Store) NumClusters() int {
	return len(s.clusters)
}
