package model

// Cluster is a set of mentions judged coreferent. Clusters partition the
// full mention id set: every mention belongs to exactly one cluster and
// every cluster is non-empty.
type Cluster struct {
	ID      int
	Members []int // mention ids, unique
}

// Contains reports whether the cluster holds the given mention id.
func (c *Cluster) Contains(mentionID int) bool {
	for _, id := range c.Members {
		if id == mentionID {
			return true
		}
	}
	return false
}
