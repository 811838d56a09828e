package vote

import (
	"math/rand/v2"

	"github.com/bmordue/voting-rings/roster"
)

// Fixation makes each loyalist stick to one suspect for as long as
// that suspect is still in play. When the suspect is gone a new one
// is drawn at random from the other active actors.
type Fixation struct {
	rnd      *rand.Rand
	suspects map[roster.ID]roster.ID
}

func NewFixation(rnd *rand.Rand) *Fixation {
	return &Fixation{
		rnd:      rnd,
		suspects: map[roster.ID]roster.ID{},
	}
}

func (s *Fixation) Choose(voter roster.Actor, r *roster.Roster) (roster.ID, bool) {
	if suspect, ok := s.suspects[voter.ID]; ok && suspect != voter.ID && r.IsActive(suspect) {
		return suspect, true
	}

	suspect, ok := pick(s.rnd, others(voter, r.Active()))
	if !ok {
		delete(s.suspects, voter.ID)
		return roster.NoActor, false
	}
	s.suspects[voter.ID] = suspect
	return suspect, true
}

// Suspect returns the remembered suspect of a loyalist, if any.
func (s *Fixation) Suspect(id roster.ID) (roster.ID, bool) {
	suspect, ok := s.suspects[id]
	return suspect, ok
}
