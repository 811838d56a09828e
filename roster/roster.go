package roster

import (
	"errors"
	"fmt"

	"github.com/bmordue/voting-rings/assert"
)

var ErrInvalidCount = errors.New("actor count must be at least 1")

// Roster owns every actor of a single game. Removed actors stay in
// the roster so round history can refer to them.
type Roster struct {
	actors    []Actor
	loyalists int
	traitors  int
}

// New creates loyalists with IDs [0, loyalists) followed by traitors
// with IDs [loyalists, loyalists+traitors).
func New(loyalists, traitors int) (*Roster, error) {
	if loyalists < 1 {
		return nil, fmt.Errorf("loyalists=%d: %w", loyalists, ErrInvalidCount)
	}
	if traitors < 1 {
		return nil, fmt.Errorf("traitors=%d: %w", traitors, ErrInvalidCount)
	}

	actors := make([]Actor, 0, loyalists+traitors)
	for i := range loyalists {
		actors = append(actors, Actor{ID: i, Faction: Loyalist, Status: Active})
	}
	for i := range traitors {
		actors = append(actors, Actor{ID: loyalists + i, Faction: Traitor, Status: Active})
	}

	return &Roster{
		actors:    actors,
		loyalists: loyalists,
		traitors:  traitors,
	}, nil
}

// Len returns the number of actors ever created, removed or not.
func (r *Roster) Len() int {
	return len(r.actors)
}

func (r *Roster) Actor(id ID) Actor {
	assert.AssertInRange(id, 0, len(r.actors))
	return r.actors[id]
}

func (r *Roster) IsActive(id ID) bool {
	if id < 0 || id >= len(r.actors) {
		return false
	}
	return r.actors[id].IsActive()
}

func (r *Roster) Active() []Actor {
	return r.filter(func(a Actor) bool { return true })
}

func (r *Roster) ActiveLoyalists() []Actor {
	return r.filter(func(a Actor) bool { return a.Faction == Loyalist })
}

func (r *Roster) ActiveTraitors() []Actor {
	return r.filter(func(a Actor) bool { return a.Faction == Traitor })
}

// CountActive returns the number of active actors in the faction.
func (r *Roster) CountActive(f Faction) int {
	if f == Loyalist {
		return r.loyalists
	}
	return r.traitors
}

// Snapshot is a copy of the active actors, safe to keep after further
// removals.
func (r *Roster) Snapshot() []Actor {
	return r.Active()
}

// MarkRemoved flips an active actor to removed. Removing an actor
// twice is a bug in the caller.
func (r *Roster) MarkRemoved(id ID) {
	assert.AssertInRange(id, 0, len(r.actors))
	assert.Assertf(r.actors[id].IsActive(), "actor %d already removed", id)

	r.actors[id].Status = Removed
	if r.actors[id].Faction == Loyalist {
		r.loyalists--
	} else {
		r.traitors--
	}
}

func (r *Roster) filter(keep func(Actor) bool) []Actor {
	out := make([]Actor, 0, len(r.actors))
	for _, a := range r.actors {
		if a.IsActive() && keep(a) {
			out = append(out, a)
		}
	}
	return out
}
