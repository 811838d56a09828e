package vote

import (
	"slices"

	"github.com/bmordue/voting-rings/roster"
)

// Tally maps a target to the number of votes it received in one
// voting sub-phase.
type Tally map[roster.ID]int

func (t Tally) Add(target roster.ID) {
	t[target]++
}

// Total is the number of votes cast, abstentions excluded.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// MostVoted returns every target tied for the highest count in
// ascending ID order. An empty tally has no most voted targets.
func (t Tally) MostVoted() []roster.ID {
	best := 0
	var ids []roster.ID
	for id, n := range t {
		switch {
		case n > best:
			best = n
			ids = append(ids[:0], id)
		case n == best:
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for id, n := range t {
		out[id] = n
	}
	return out
}
