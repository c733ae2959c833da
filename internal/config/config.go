// Package config loads the engine's TOML configuration, merging a
// user-supplied document field-by-field over the compiled-in defaults
// embedded from defaults.toml.
package config

import (
	_ "embed"
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML string

// TreeConfig controls progressive expansion and the RAVE blend.
type TreeConfig struct {
	ExpandAfter  int     `toml:"expand_after"`
	RaveEquiv    float64 `toml:"rave_equiv"`
	ScoreWeight  float64 `toml:"score_weight"`
}

// PriorsConfig controls the per-move prior heuristics applied at node
// expansion.
type PriorsConfig struct {
	BestMoveFactor float64 `toml:"best_move_factor"`
	CaptureMany    int     `toml:"capture_many"`
	CaptureOne     int     `toml:"capture_one"`
	Empty          int     `toml:"empty"`
	NeutralPlays   int     `toml:"neutral_plays"`
	NeutralWins    int     `toml:"neutral_wins"`
	Patterns       int     `toml:"patterns"`
	SelfAtari      int     `toml:"self_atari"`
}

// PlayoutConfig controls the random playout policy.
type PlayoutConfig struct {
	AtariCheck          float64 `toml:"atari_check"`
	LadderCheck         float64 `toml:"ladder_check"`
	PatternProbability  float64 `toml:"pattern_probability"`
	// PlayInMiddleOfEye is the probability of playing inside a large
	// own eye when no other heuristic produced a move.
	PlayInMiddleOfEye      float64 `toml:"play_in_middle_of_eye"`
	LastMovesForHeuristics int     `toml:"last_moves_for_heuristics"`
	NoSelfAtariCutoff      int     `toml:"no_self_atari_cutoff"`
}

// ScoringConfig controls ownership-statistics smoothing.
type ScoringConfig struct {
	OwnershipPrior  int     `toml:"ownership_prior"`
	OwnershipCutoff float64 `toml:"ownership_cutoff"`
}

// TimeControlConfig controls per-move time budgeting.
type TimeControlConfig struct {
	C                 float64 `toml:"c"`
	FastplayBudget    float64 `toml:"fastplay_budget"`
	FastplayThreshold float64 `toml:"fastplay_threshold"`
	MinStones         int     `toml:"min_stones"`
}

// Config is the full engine configuration.
type Config struct {
	Threads     int               `toml:"threads"`
	Tree        TreeConfig        `toml:"tree"`
	Priors      PriorsConfig      `toml:"priors"`
	Playout     PlayoutConfig     `toml:"playout"`
	Scoring     ScoringConfig     `toml:"scoring"`
	TimeControl TimeControlConfig `toml:"time_control"`
}

// Default returns the compiled-in configuration with Threads resolved
// to the number of logical CPUs.
func Default() (*Config, error) {
	return fromTOML(defaultsTOML)
}

// Load reads a user TOML document and merges it over the compiled-in
// defaults, field by field per section.
func Load(userTOML string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if userTOML == "" {
		return cfg, nil
	}
	if _, err := toml.Decode(userTOML, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Threads == 0 {
		cfg.Threads = runtime.NumCPU()
	}
	return cfg, nil
}

func fromTOML(doc string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(doc, &cfg); err != nil {
		return nil, fmt.Errorf("invalid built-in defaults: %w", err)
	}
	if cfg.Threads == 0 {
		cfg.Threads = runtime.NumCPU()
	}
	return &cfg, nil
}
