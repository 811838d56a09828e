package vote

import (
	"math/rand/v2"

	"github.com/bmordue/voting-rings/roster"
)

// Random votes uniformly for any other active actor.
type Random struct {
	rnd *rand.Rand
}

func NewRandom(rnd *rand.Rand) *Random {
	return &Random{rnd: rnd}
}

func (s *Random) Choose(voter roster.Actor, r *roster.Roster) (roster.ID, bool) {
	return pick(s.rnd, others(voter, r.Active()))
}

// RandomAmong picks uniformly from exactly the given ids. It is used
// for tie-break re-votes, where a voter may pick itself.
func RandomAmong(rnd *rand.Rand, ids []roster.ID) (roster.ID, bool) {
	if len(ids) == 0 {
		return roster.NoActor, false
	}
	return ids[rnd.IntN(len(ids))], true
}

// TraitorStrategy votes uniformly for an active loyalist.
type TraitorStrategy struct {
	rnd *rand.Rand
}

func NewTraitorStrategy(rnd *rand.Rand) *TraitorStrategy {
	return &TraitorStrategy{rnd: rnd}
}

func (s *TraitorStrategy) Choose(_ roster.Actor, r *roster.Roster) (roster.ID, bool) {
	return pick(s.rnd, r.ActiveLoyalists())
}

// RandomVictim removes a uniformly random active loyalist.
type RandomVictim struct {
	rnd *rand.Rand
}

func NewRandomVictim(rnd *rand.Rand) *RandomVictim {
	return &RandomVictim{rnd: rnd}
}

func (s *RandomVictim) Victim(r *roster.Roster) (roster.ID, bool) {
	return pick(s.rnd, r.ActiveLoyalists())
}

func pick(rnd *rand.Rand, candidates []roster.Actor) (roster.ID, bool) {
	if len(candidates) == 0 {
		return roster.NoActor, false
	}
	return candidates[rnd.IntN(len(candidates))].ID, true
}

func others(voter roster.Actor, actors []roster.Actor) []roster.Actor {
	out := actors[:0]
	for _, a := range actors {
		if a.ID != voter.ID {
			out = append(out, a)
		}
	}
	return out
}
