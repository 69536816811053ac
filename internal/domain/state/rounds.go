package state

// RoundOver reports whether a statistics-refresh round has ended: true iff
// any cell's visit count has at least doubled since the checkpoint, i.e.
// current[i]-prior[i] >= max(prior[i], 1). The floor of 1 makes the very
// first visit to a cell end the round. Stateless; both slices are snapshots
// of the same per-(arm,state) counters and must have equal length.
//
// Shorter of the two slices bounds the comparison, so a caller growing its
// counter arrays between checkpoints only compares cells present in both.
func RoundOver(prior, current []int) bool {
	n := len(prior)
	if len(current) < n {
		n = len(current)
	}
	for i := 0; i < n; i++ {
		floor := prior[i]
		if floor < 1 {
			floor = 1
		}
		if current[i]-prior[i] >= floor {
			return true
		}
	}
	return false
}
