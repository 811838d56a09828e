package game

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/bmordue/voting-rings/assert"
	"github.com/bmordue/voting-rings/roster"
	"github.com/bmordue/voting-rings/vote"
	"github.com/charmbracelet/log"
)

type Config struct {
	Loyalists    int
	Traitors     int
	EndCondition EndCondition
	Strategy     vote.Kind
}

// Validate checks everything New would reject, so callers running
// many games can fail before starting any of them.
func (c Config) Validate() error {
	if c.Loyalists < 1 {
		return fmt.Errorf("loyalists=%d: %w", c.Loyalists, roster.ErrInvalidCount)
	}
	if c.Traitors < 1 {
		return fmt.Errorf("traitors=%d: %w", c.Traitors, roster.ErrInvalidCount)
	}
	if _, err := ParseEndCondition(string(c.EndCondition)); err != nil {
		return err
	}
	if _, err := vote.ParseKind(string(c.Strategy)); err != nil {
		return err
	}
	// Influence games only know how to stop on the first traitor.
	if c.Strategy == vote.KindInfluence && c.EndCondition != FirstTraitorRemoved {
		return fmt.Errorf("%s with %s: %w", c.EndCondition, c.Strategy, ErrUnsupportedEndCondition)
	}
	return nil
}

func (c Config) Population() int {
	return c.Loyalists + c.Traitors
}

// Result is the full record of a finished game.
type Result struct {
	Rounds       []RoundResult `json:"rounds"`
	TotalRounds  int           `json:"totalRounds"`
	Outcome      Outcome       `json:"outcome"`
	EndCondition EndCondition  `json:"endCondition"`
	Strategy     vote.Kind     `json:"strategy"`
	Seed1        uint64        `json:"seed1"`
	Seed2        uint64        `json:"seed2"`
}

type options struct {
	logger       *log.Logger
	rnd          *rand.Rand
	seed1, seed2 uint64
}

type Option func(*options)

// WithSeed seeds the game's own PCG source. Two games with the same
// config and seeds play out identically.
func WithSeed(seed1, seed2 uint64) Option {
	return func(o *options) {
		o.seed1, o.seed2 = seed1, seed2
		o.rnd = rand.New(rand.NewPCG(seed1, seed2))
	}
}

// WithRand makes the game draw from rnd. The source must not be used
// by another game at the same time.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type Game struct {
	cfg    Config
	seed1  uint64
	seed2  uint64
	engine *engine

	rounds  []RoundResult
	outcome Outcome
	done    bool
}

func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		WithSeed(rand.Uint64(), rand.Uint64())(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	r, err := roster.New(cfg.Loyalists, cfg.Traitors)
	if err != nil {
		return nil, err
	}
	plan, err := vote.NewPlan(cfg.Strategy, o.rnd, r.Len())
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:   cfg,
		seed1: o.seed1,
		seed2: o.seed2,
		engine: &engine{
			logger: o.logger,
			rnd:    o.rnd,
			roster: r,
			plan:   plan,
			end:    cfg.EndCondition,
		},
		rounds: make([]RoundResult, 0, r.Len()),
	}, nil
}

func (g *Game) Done() bool {
	return g.done
}

func (g *Game) Roster() *roster.Roster {
	return g.engine.roster
}

// Step resolves the next round. It returns false for done until the
// game has ended; stepping a finished game is a no-op.
func (g *Game) Step() (RoundResult, bool) {
	if g.done {
		return RoundResult{}, true
	}

	// Every round removes at least one actor.
	assert.Assertf(len(g.rounds) < g.cfg.Population(), "game exceeded %d rounds", g.cfg.Population())

	res, outcome, done := g.engine.resolve(len(g.rounds) + 1)
	g.rounds = append(g.rounds, res)
	if done {
		g.outcome = outcome
		g.done = true
		g.engine.logger.Debug("game over", "outcome", outcome, "rounds", len(g.rounds))
	}
	return res, done
}

// Run plays rounds until the end condition is met.
func (g *Game) Run() Result {
	for !g.done {
		g.Step()
	}
	return g.Result()
}

// Result returns the game's record so far. The rounds slice is a copy.
func (g *Game) Result() Result {
	rounds := make([]RoundResult, len(g.rounds))
	copy(rounds, g.rounds)
	return Result{
		Rounds:       rounds,
		TotalRounds:  len(rounds),
		Outcome:      g.outcome,
		EndCondition: g.cfg.EndCondition,
		Strategy:     g.cfg.Strategy,
		Seed1:        g.seed1,
		Seed2:        g.seed2,
	}
}
