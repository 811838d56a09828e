package montecarlo

import (
	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/stats"
)

// Summary aggregates a batch: round statistics plus how often each
// outcome occurred.
type Summary struct {
	Games    int                  `json:"games"`
	Rounds   stats.Statistics     `json:"rounds"`
	Outcomes map[game.Outcome]int `json:"outcomes"`
}

func Summarize(results []SimulationResult) Summary {
	rounds := make([]int, len(results))
	outcomes := map[game.Outcome]int{}
	for i, r := range results {
		rounds[i] = r.RoundsToCompletion
		outcomes[r.Outcome]++
	}

	return Summary{
		Games:    len(results),
		Rounds:   stats.Compute(rounds),
		Outcomes: outcomes,
	}
}

// Rate is the share of games that ended with o, in [0, 1].
func (s Summary) Rate(o game.Outcome) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Outcomes[o]) / float64(s.Games)
}
