package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmordue/voting-rings/roster"
)

var (
	ErrUnknownEndCondition     = errors.New("unknown end condition")
	ErrUnsupportedEndCondition = errors.New("end condition not supported by strategy")
)

// EndCondition decides when a game stops.
type EndCondition string

const (
	// FirstTraitorRemoved ends the game as soon as a traitor is voted
	// out, or when no loyalist is left.
	FirstTraitorRemoved EndCondition = "first_traitor_removed"
	// AllOneType plays on until one faction is gone.
	AllOneType EndCondition = "all_one_type"
)

type Outcome string

const (
	OutcomeNone           Outcome = ""
	OutcomeTraitorRemoved Outcome = "traitor_removed"
	OutcomeNoLoyalists    Outcome = "no_loyalists"
	OutcomeAllLoyalists   Outcome = "all_loyalists"
	OutcomeAllTraitors    Outcome = "all_traitors"
)

func EndConditions() []EndCondition {
	return []EndCondition{FirstTraitorRemoved, AllOneType}
}

func ParseEndCondition(s string) (EndCondition, error) {
	c := EndCondition(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(EndConditions(), c) {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownEndCondition)
	}
	return c, nil
}

// Outcomes lists every outcome a game under c can end with.
func (c EndCondition) Outcomes() []Outcome {
	switch c {
	case FirstTraitorRemoved:
		return []Outcome{OutcomeTraitorRemoved, OutcomeNoLoyalists}
	case AllOneType:
		return []Outcome{OutcomeAllLoyalists, OutcomeAllTraitors}
	default:
		return nil
	}
}

// Evaluate reports whether the game is over given the roster right
// after removed was taken out. removed may be roster.NoActor when a
// phase removed nobody.
//
// Under FirstTraitorRemoved the removed actor is checked before the
// faction counts, so a traitor removal always wins over the loyalist
// count.
func (c EndCondition) Evaluate(r *roster.Roster, removed roster.ID) (Outcome, bool) {
	loyalists := r.CountActive(roster.Loyalist)
	traitors := r.CountActive(roster.Traitor)

	switch c {
	case FirstTraitorRemoved:
		if removed != roster.NoActor && r.Actor(removed).Faction == roster.Traitor {
			return OutcomeTraitorRemoved, true
		}
		if loyalists == 0 {
			return OutcomeNoLoyalists, true
		}
		if traitors == 0 {
			return OutcomeTraitorRemoved, true
		}
	case AllOneType:
		if traitors == 0 {
			return OutcomeAllLoyalists, true
		}
		if loyalists == 0 {
			return OutcomeAllTraitors, true
		}
	}
	return OutcomeNone, false
}
