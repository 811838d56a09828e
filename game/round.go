package game

import (
	"math/rand/v2"

	"github.com/bmordue/voting-rings/assert"
	"github.com/bmordue/voting-rings/roster"
	"github.com/bmordue/voting-rings/vote"
	"github.com/charmbracelet/log"
)

// MaxTieBreaks caps the restricted re-votes in phase one. After that
// the victim is drawn from every active actor.
const MaxTieBreaks = 10

// RoundResult is the record of one resolved round.
type RoundResult struct {
	RoundNumber int `json:"roundNumber"`
	// PhaseOneVotes is the tally of the last vote held in phase one.
	// Earlier tie-break tallies are not kept.
	PhaseOneVotes   vote.Tally     `json:"phaseOneVotes"`
	PhaseOneRemoved roster.ID      `json:"phaseOneRemoved"`
	PhaseTwoRemoved roster.ID      `json:"phaseTwoRemoved"`
	RemainingActors []roster.Actor `json:"remainingActors"`
	TieBreaks       int            `json:"tieBreaks"`
	// ForcedPick is set when the phase one victim was drawn at random
	// because the vote stayed tied or nobody voted.
	ForcedPick bool `json:"forcedPick"`
}

// engine resolves rounds against a single roster.
//
// Order within a round:
//  1. Every active actor votes through its faction's strategy
//  2. Ties are re-voted among the tied actors, up to MaxTieBreaks times
//  3. The most voted actor, or a random active actor, is removed
//  4. The end condition is checked; a finished game skips phase two
//  5. Phase two removes one loyalist and the end condition is checked again
type engine struct {
	logger *log.Logger
	rnd    *rand.Rand
	roster *roster.Roster
	plan   vote.Plan
	end    EndCondition

	// revote replaces the uniform tie-break vote when set.
	revote func(tied []roster.ID) vote.Tally
}

func (e *engine) resolve(number int) (RoundResult, Outcome, bool) {
	assert.Assert(len(e.roster.Active()) > 1, "round started with fewer than two actors")

	res := RoundResult{
		RoundNumber:     number,
		PhaseTwoRemoved: roster.NoActor,
	}

	res.PhaseOneVotes, res.PhaseOneRemoved, res.TieBreaks, res.ForcedPick = e.phaseOne()
	e.roster.MarkRemoved(res.PhaseOneRemoved)

	outcome, done := e.end.Evaluate(e.roster, res.PhaseOneRemoved)
	if !done {
		res.PhaseTwoRemoved = e.phaseTwo()
		outcome, done = e.end.Evaluate(e.roster, res.PhaseTwoRemoved)
	}

	res.RemainingActors = e.roster.Snapshot()

	e.logger.Debug("round resolved",
		"round", number,
		"phaseOne", res.PhaseOneRemoved,
		"phaseTwo", res.PhaseTwoRemoved,
		"tieBreaks", res.TieBreaks,
		"forced", res.ForcedPick,
		"remaining", len(res.RemainingActors),
	)
	return res, outcome, done
}

func (e *engine) phaseOne() (tally vote.Tally, removed roster.ID, tieBreaks int, forced bool) {
	tally = vote.Tally{}
	for _, voter := range e.roster.Active() {
		if target, ok := e.plan.For(voter.Faction).Choose(voter, e.roster); ok {
			assert.Assertf(e.roster.IsActive(target), "actor %d voted for inactive actor %d", voter.ID, target)
			tally.Add(target)
		}
	}

	tied := tally.MostVoted()
	for len(tied) > 1 && tieBreaks < MaxTieBreaks {
		tieBreaks++
		if e.revote != nil {
			tally = e.revote(tied)
		} else {
			tally = e.tieBreak(tied)
		}
		tied = tally.MostVoted()
	}

	if len(tied) == 1 {
		return tally, tied[0], tieBreaks, false
	}

	e.logger.Debug("phase one vote unresolved, picking at random",
		"tied", tied, "tieBreaks", tieBreaks,
	)
	active := e.roster.Active()
	return tally, active[e.rnd.IntN(len(active))].ID, tieBreaks, true
}

// tieBreak re-runs the vote with the tied actors as the only voters
// and the only targets. Everyone votes uniformly at random, whatever
// their faction or strategy.
func (e *engine) tieBreak(tied []roster.ID) vote.Tally {
	tally := vote.Tally{}
	for range tied {
		if target, ok := vote.RandomAmong(e.rnd, tied); ok {
			tally.Add(target)
		}
	}
	return tally
}

func (e *engine) phaseTwo() roster.ID {
	victim, ok := e.plan.Victim.Victim(e.roster)
	if !ok {
		return roster.NoActor
	}
	assert.Assertf(e.roster.Actor(victim).Faction == roster.Loyalist, "phase two picked non-loyalist %d", victim)
	e.roster.MarkRemoved(victim)
	return victim
}
