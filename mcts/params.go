package mcts

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Default option values.
const (
	DefaultExploitation  = 1.0
	DefaultAlpha         = Value(-1)
	DefaultBeta          = Value(1)
	DefaultDuration      = 1000 * time.Millisecond
	DefaultMaxSim        = 1e8
	DefaultBaseNumRolls  = 1
	DefaultSimsPerRoll   = 1e6
	DefaultExtraCache    = 100000
	DefaultAdvanceChunks = 100
)

// Params configures a single search: a plain struct with a
// DefaultParams() constructor, fluent SetXxx setters, and a String()
// rendered through encoding/json.
type Params struct {
	Exploitation  float64       `json:"exploitation"`
	Exploration   float64       `json:"exploration"`
	Alpha         Value         `json:"alpha"`
	Beta          Value         `json:"beta"`
	Duration      time.Duration `json:"duration"`
	MaxSim        uint64        `json:"max_sim"`
	BaseNumRolls  int           `json:"base_num_rolls"`
	SimsPerRoll   uint64        `json:"sims_per_roll"`
	ExtraCache    int           `json:"extra_cache"`
	AdvanceChunks int           `json:"advance_chunks"`
	Background    bool          `json:"background"`
	Uniform       bool          `json:"uniform"`
	Inert         bool          `json:"inert"`

	// LessEvilDuration overrides the duration of the least-evil
	// fallback search; zero means "use
	// Duration unchanged".
	LessEvilDuration time.Duration `json:"less_evil_duration"`
}

// DefaultParams returns a conservative, general-purpose option set.
func DefaultParams() *Params {
	return &Params{
		Exploitation:  DefaultExploitation,
		Exploration:   math.Sqrt(8),
		Alpha:         DefaultAlpha,
		Beta:          DefaultBeta,
		Duration:      DefaultDuration,
		MaxSim:        DefaultMaxSim,
		BaseNumRolls:  DefaultBaseNumRolls,
		SimsPerRoll:   DefaultSimsPerRoll,
		ExtraCache:    DefaultExtraCache,
		AdvanceChunks: DefaultAdvanceChunks,
		Background:    true,
	}
}

func (p Params) String() string {
	var b strings.Builder
	_ = json.NewEncoder(&b).Encode(p)
	return strings.TrimSpace(b.String())
}

func (p *Params) SetExploitation(c1 float64) *Params  { p.Exploitation = c1; return p }
func (p *Params) SetExploration(c2 float64) *Params   { p.Exploration = c2; return p }
func (p *Params) SetAlpha(alpha Value) *Params        { p.Alpha = alpha; return p }
func (p *Params) SetBeta(beta Value) *Params          { p.Beta = beta; return p }
func (p *Params) SetDuration(d time.Duration) *Params { p.Duration = d; return p }
func (p *Params) SetMaxSim(max uint64) *Params        { p.MaxSim = max; return p }
func (p *Params) SetBaseNumRolls(n int) *Params       { p.BaseNumRolls = n; return p }
func (p *Params) SetSimsPerRoll(n uint64) *Params     { p.SimsPerRoll = n; return p }
func (p *Params) SetExtraCache(n int) *Params         { p.ExtraCache = n; return p }
func (p *Params) SetAdvanceChunks(n int) *Params      { p.AdvanceChunks = n; return p }
func (p *Params) SetBackground(b bool) *Params        { p.Background = b; return p }
func (p *Params) SetUniform(b bool) *Params           { p.Uniform = b; return p }
func (p *Params) SetInert(b bool) *Params             { p.Inert = b; return p }
func (p *Params) SetLessEvilDuration(d time.Duration) *Params {
	p.LessEvilDuration = d
	return p
}

// lessEvilParams derives the config the least-evil fallback search
// runs with: a copy of p forced into inert mode, with its own
// duration override if one was set.
func (p *Params) lessEvilParams() *Params {
	clone := *p
	clone.Inert = true
	if clone.LessEvilDuration > 0 {
		clone.Duration = clone.LessEvilDuration
	}
	return &clone
}

// Validate rejects configurations that would make the search's math
// undefined, returning a pkg/errors-wrapped error rather than letting
// a bad config panic deep inside a search loop.
func (p *Params) Validate() error {
	if p.Alpha >= p.Beta {
		return errors.Errorf("mcts: alpha (%v) must be less than beta (%v)", p.Alpha, p.Beta)
	}
	if p.AdvanceChunks <= 0 {
		return errors.New("mcts: advance chunks must be positive")
	}
	if p.SimsPerRoll == 0 {
		return errors.New("mcts: sims per roll must be positive")
	}
	if p.BaseNumRolls <= 0 {
		return errors.New("mcts: base num rolls must be positive")
	}
	if p.Duration <= 0 {
		return errors.New("mcts: duration must be positive")
	}
	return nil
}

// numRollsFor recomputes leafExpand's batch size from the root's
// current sims: floor(sims/simsperroll) + base.
func numRollsFor[G comparable](root Node[G], params *Params) int {
	var sims Value
	if t, ok := root.(*TrunkNode[G]); ok {
		sims = t.Sims
	}
	return int(math.Floor(float64(sims)/float64(params.SimsPerRoll))) + params.BaseNumRolls
}
