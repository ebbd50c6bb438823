package pbls

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Config carries the external configuration of a search: the RNG seed, the
// wall-clock cutoff, the strategy selector (only 0 is accepted) and the
// known-best value at which the inner loop may stop early.
type Config struct {
	Seed           uint64
	CutoffTime     time.Duration
	StrategyID     int
	BestKnownValue int

	// Logger receives one entry every tenth restart (the first, eleventh,
	// and so on). A nil Logger is replaced by a no-op logger so the core
	// package never forces output.
	Logger *zap.Logger
}

func (c Config) validate() error {
	if c.StrategyID != 0 {
		return &ConfigError{Msg: fmt.Sprintf("unsupported strategy id %d", c.StrategyID)}
	}
	if c.CutoffTime < 0 {
		return &ConfigError{Msg: "cutoff time must be non-negative"}
	}
	return nil
}

// Status reports how a search concluded.
type Status int

const (
	// StatusOptimal means the objective reached or exceeded
	// Config.BestKnownValue before the cutoff.
	StatusOptimal Status = iota
	// StatusTimeout means the wall-clock cutoff elapsed without reaching
	// Config.BestKnownValue. This is not an error: Result.BestSolution may
	// still hold a feasible assignment, and BestObjectiveValue is at its
	// initial sentinel if none was ever found feasible.
	StatusTimeout
)

func (st Status) String() string {
	switch st {
	case StatusOptimal:
		return "optimal-reached"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Result is the outcome of a call to Engine.Run.
type Result struct {
	Status             Status
	BestSolution       []bool
	BestObjectiveValue int
	BestTime           time.Duration
	Tries              int
	Steps              int
}

// Feasible reports whether BestSolution is a witness found during the
// search, as opposed to the unchanged zero value from before any restart
// ever reached a feasible assignment.
func (r Result) Feasible() bool { return r.BestObjectiveValue != negInfObjective }

// Engine is the restart driver (C5): it owns the problem, configuration,
// RNG and incremental state for one search.
type Engine struct {
	problem  *Problem
	cfg      Config
	rng      *rand.Rand
	state    *State
	logger   *zap.Logger
	maxSteps int
}

// NewEngine validates cfg and builds an Engine over p. max_steps defaults to
// 2*N under strategy 0, the only strategy this engine supports.
func NewEngine(p *Problem, cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger()
	}
	return &Engine{
		problem:  p,
		cfg:      cfg,
		rng:      newRNG(cfg.Seed),
		state:    newState(p),
		logger:   logger,
		maxSteps: 2 * p.numVars,
	}, nil
}

// Problem returns the problem this engine was built over.
func (e *Engine) Problem() *Problem { return e.problem }

// State exposes the engine's incremental state, primarily for tests that
// need to inspect or cross-check C2's arrays directly.
func (e *Engine) State() *State { return e.state }

// Run executes the restart loop: each try resets C2 from scratch (reinit)
// and then flips up to max_steps variables, checking feasibility and the
// objective between flips. The outer loop exits as soon as either the
// cutoff elapses or the objective reaches Config.BestKnownValue - the fix
// for the original's unconditional restart loop (see the design notes on
// the unbounded outer loop).
func (e *Engine) Run() Result {
	start := time.Now()
	s := e.state

	reachKnown := false
	reachCutoff := false
	tries := 0
	step := 0

	for ; ; tries++ {
		s.reinit(e.rng, e.maxSteps)

		for step = 0; ; step++ {
			if len(s.unsatStack) == 0 {
				s.updateObjective(time.Since(start))
				if s.bestObjectiveValue >= e.cfg.BestKnownValue {
					reachKnown = true
					break
				}
			}
			if step >= e.maxSteps {
				break
			}
			v := s.pickVar(e.rng)
			s.Flip(v)
			s.timeStamp[v] = step + 1
		}

		if debugEnabled {
			if err := s.debugAssert(); err != nil {
				panic(err)
			}
		}

		elapsed := time.Since(start)
		if tries%10 == 0 {
			e.logger.Info("restart",
				zap.Int("tries", tries),
				zap.Duration("elapsed", elapsed),
				zap.Int("best_objective", s.bestObjectiveValue),
			)
		}
		if elapsed > e.cfg.CutoffTime {
			reachCutoff = true
		}
		if reachKnown || reachCutoff {
			break
		}
	}

	status := StatusTimeout
	if reachKnown {
		status = StatusOptimal
	}
	return Result{
		Status:             status,
		BestSolution:       append([]bool(nil), s.bestSolution...),
		BestObjectiveValue: s.bestObjectiveValue,
		BestTime:           s.bestTime,
		Tries:              tries + 1,
		Steps:              tries*e.maxSteps + step,
	}
}
