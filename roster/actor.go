package roster

// ID identifies an actor for the lifetime of a game. IDs are
// assigned contiguously and never reused.
type ID = int

// NoActor is used where a round did not remove anyone.
const NoActor ID = -1

type Faction uint8

const (
	Loyalist Faction = iota
	Traitor
)

func (f Faction) String() string {
	switch f {
	case Loyalist:
		return "loyalist"
	case Traitor:
		return "traitor"
	default:
		return "unknown"
	}
}

type Status uint8

const (
	Active Status = iota
	Removed
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

type Actor struct {
	ID      ID      `json:"id"`
	Faction Faction `json:"faction"`
	Status  Status  `json:"status"`
}

func (a Actor) IsActive() bool {
	return a.Status == Active
}
