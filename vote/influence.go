package vote

import (
	"math/rand/v2"

	"github.com/bmordue/voting-rings/assert"
	"github.com/bmordue/voting-rings/roster"
)

const (
	MinInfluence = 1
	MaxInfluence = 100
)

// InfluenceMatrix holds the directed influence score every actor has
// over every other actor. Scores are drawn once when a game starts
// and never change.
type InfluenceMatrix struct {
	n      int
	scores []int
}

func NewInfluenceMatrix(rnd *rand.Rand, n int) *InfluenceMatrix {
	assert.AssertPositive(n, "population")

	m := &InfluenceMatrix{n: n, scores: make([]int, n*n)}
	for from := range n {
		for to := range n {
			if from == to {
				continue
			}
			m.scores[from*n+to] = MinInfluence + rnd.IntN(MaxInfluence-MinInfluence+1)
		}
	}
	return m
}

// Score is the influence from holds over to. An actor has no
// influence over itself.
func (m *InfluenceMatrix) Score(from, to roster.ID) int {
	assert.AssertInRange(from, 0, m.n)
	assert.AssertInRange(to, 0, m.n)
	return m.scores[from*m.n+to]
}

// Influence votes for the eligible target the voter holds the least
// influence over. Loyalists consider every other active actor,
// traitors only active loyalists. Ties go to the lowest ID.
type Influence struct {
	matrix *InfluenceMatrix
}

func NewInfluence(m *InfluenceMatrix) *Influence {
	return &Influence{matrix: m}
}

func (s *Influence) Choose(voter roster.Actor, r *roster.Roster) (roster.ID, bool) {
	var candidates []roster.Actor
	if voter.Faction == roster.Traitor {
		candidates = r.ActiveLoyalists()
	} else {
		candidates = others(voter, r.Active())
	}

	target, best := roster.NoActor, 0
	for _, c := range candidates {
		score := s.matrix.Score(voter.ID, c.ID)
		if target == roster.NoActor || score < best {
			target, best = c.ID, score
		}
	}
	return target, target != roster.NoActor
}

// InfluenceVictim removes the active loyalist over whom the active
// traitors hold the least combined influence.
type InfluenceVictim struct {
	matrix *InfluenceMatrix
}

func NewInfluenceVictim(m *InfluenceMatrix) *InfluenceVictim {
	return &InfluenceVictim{matrix: m}
}

func (s *InfluenceVictim) Victim(r *roster.Roster) (roster.ID, bool) {
	traitors := r.ActiveTraitors()

	victim, best := roster.NoActor, 0
	for _, l := range r.ActiveLoyalists() {
		sum := 0
		for _, t := range traitors {
			sum += s.matrix.Score(t.ID, l.ID)
		}
		if victim == roster.NoActor || sum < best {
			victim, best = l.ID, sum
		}
	}
	return victim, victim != roster.NoActor
}
