package vote

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/bmordue/voting-rings/assert"
	"github.com/bmordue/voting-rings/roster"
)

var ErrUnknownKind = errors.New("unknown voting strategy")

// Strategy picks the target an actor votes for. The boolean is false
// when the actor abstains because it has no valid target.
// Implementations must not mutate the roster.
type Strategy interface {
	Choose(voter roster.Actor, r *roster.Roster) (roster.ID, bool)
}

// VictimSelector picks the loyalist removed in phase two.
type VictimSelector interface {
	Victim(r *roster.Roster) (roster.ID, bool)
}

type Kind string

const (
	KindRandom    Kind = "random"
	KindFixation  Kind = "fixation"
	KindInfluence Kind = "influence"
)

var kinds = []Kind{KindRandom, KindFixation, KindInfluence}

func Kinds() []Kind {
	return kinds
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Plan is the set of resolvers one game uses. It holds per-game
// state (suspects, influence scores) and must not be shared between
// games.
type Plan struct {
	Kind     Kind
	Loyalist Strategy
	Traitor  Strategy
	Victim   VictimSelector
}

func (p Plan) For(f roster.Faction) Strategy {
	if f == roster.Traitor {
		return p.Traitor
	}
	return p.Loyalist
}

// NewPlan builds the resolvers for kind. population is the total
// number of actors and sizes the influence matrix.
func NewPlan(kind Kind, rnd *rand.Rand, population int) (Plan, error) {
	assert.AssertNotNil(rnd)

	switch kind {
	case KindRandom:
		return Plan{
			Kind:     kind,
			Loyalist: &Random{rnd: rnd},
			Traitor:  &TraitorStrategy{rnd: rnd},
			Victim:   &RandomVictim{rnd: rnd},
		}, nil
	case KindFixation:
		return Plan{
			Kind:     kind,
			Loyalist: NewFixation(rnd),
			Traitor:  &TraitorStrategy{rnd: rnd},
			Victim:   &RandomVictim{rnd: rnd},
		}, nil
	case KindInfluence:
		m := NewInfluenceMatrix(rnd, population)
		return Plan{
			Kind:     kind,
			Loyalist: &Influence{matrix: m},
			Traitor:  &Influence{matrix: m},
			Victim:   &InfluenceVictim{matrix: m},
		}, nil
	default:
		return Plan{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
}
