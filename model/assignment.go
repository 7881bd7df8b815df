package model

// Assignment maps observation index to cluster id. Cluster ids begin at 1,
// not 0; a length-K slice of per-cluster quantities (weights, counts) is
// indexed by id-1.
type Assignment []int

// Validate checks that every label lies in [1, k].
func (a Assignment) Validate(k int) error {
	for _, id := range a {
		if id < 1 || id > k {
			return &ErrInvalidClusterID{ID: id, K: k}
		}
	}
	return nil
}

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// Counts returns the per-cluster member counts, indexed by cluster id - 1.
func (a Assignment) Counts(k int) []int {
	counts := make([]int, k)
	for _, id := range a {
		counts[id-1]++
	}
	return counts
}

// Members returns the observation indices currently assigned to cluster id,
// in ascending order.
func (a Assignment) Members(id int) []int {
	var idx []int
	for i, label := range a {
		if label == id {
			idx = append(idx, i)
		}
	}
	return idx
}
