// Package playout runs one bounded semi-random simulation from a given
// board, producing a winner, a score, and an AMAF move-ownership map.
// The policy avoids filling its own eyes, optionally avoids self-atari
// of larger chains, and biases toward atari rescues and local shape
// matches.
package playout

import (
	"math/rand"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/pattern"
	"github.com/hafner-go/goigo/internal/reader"
)

// Config holds the playout policy's tunable probabilities and cutoffs.
type Config struct {
	AtariCheck            float64
	LadderCheck           float64
	PatternProbability    float64
	PlayInMiddleOfEye     float64
	LastMovesForHeuristics int
	NoSelfAtariCutoff     int
}

// DefaultConfig returns the compiled-in playout defaults.
func DefaultConfig() Config {
	return Config{
		AtariCheck:             0.9,
		LadderCheck:            0.5,
		PatternProbability:     0.9,
		PlayInMiddleOfEye:      0.5,
		LastMovesForHeuristics: 3,
		NoSelfAtariCutoff:      3,
	}
}

// Result is what one playout returns: the winning color, the final
// score, and the first-play-wins AMAF ownership map.
type Result struct {
	Winner board.Color
	Score  board.Score
	AMAF   map[board.Coord]board.Color
}

// Policy runs playouts with a fixed configuration, pattern matcher and
// RNG. It holds no board state of its own: Run receives the starting
// board as an argument, exactly as a stateless worker would.
type Policy struct {
	cfg     Config
	matcher *pattern.Matcher
	rng     *rand.Rand
}

// NewPolicy builds a playout policy. rng should be a worker-private
// generator: playouts run concurrently across many workers and must not
// share one.
func NewPolicy(cfg Config, matcher *pattern.Matcher, rng *rand.Rand) *Policy {
	return &Policy{cfg: cfg, matcher: matcher, rng: rng}
}

// Run plays out b (which is mutated in place; callers pass a clone) to
// completion or to the move cap of 3*size*size plies, whichever comes
// first.
func (p *Policy) Run(b *board.Board) Result {
	amaf := make(map[board.Coord]board.Color)
	moveCap := 3 * int(b.Size()) * int(b.Size())
	var recent []board.Move

	for ply := 0; ply < moveCap && !b.IsGameOver(); ply++ {
		color := b.NextPlayer()
		m, ok := p.choose(b, color, recent)
		if !ok {
			m = p.lastResort(b, color)
		}
		if m.Kind == board.Play {
			if _, seen := amaf[m.Coord]; !seen {
				amaf[m.Coord] = color
			}
		}
		b.PlayLegalMove(m)
		if m.Kind == board.Play {
			recent = append(recent, m)
			if len(recent) > p.cfg.LastMovesForHeuristics {
				recent = recent[1:]
			}
		}
	}

	score := b.Score()
	return Result{Winner: score.Winner(), Score: score, AMAF: amaf}
}

// lastResort fires when no ordinary candidate was acceptable: with the
// configured probability, play inside a large own eye (a vacant point
// touching own stones and further vacant points but no enemy, so
// single-point eyes stay untouched); otherwise pass.
func (p *Policy) lastResort(b *board.Board, color board.Color) board.Move {
	if p.rng.Float64() < p.cfg.PlayInMiddleOfEye {
		for _, c := range b.Vacant() {
			own, enemy, empties := 0, 0, 0
			for _, n := range b.Neighbours(c) {
				switch b.Color(n) {
				case color:
					own++
				case board.Empty:
					empties++
				default:
					enemy++
				}
			}
			if enemy > 0 || own == 0 || empties == 0 {
				continue
			}
			m := board.NewPlay(color, c)
			if b.IsLegal(m) == nil {
				return m
			}
		}
	}
	return board.NewPass(color)
}

// choose picks one candidate move: rescue moves for an own chain the
// recent moves left in atari, then pattern matches, then a uniform pick
// among legal non-eye moves; self-atari is rejected unless the move
// captures.
func (p *Policy) choose(b *board.Board, color board.Color, recent []board.Move) (board.Move, bool) {
	if len(recent) > 0 && p.rng.Float64() < p.cfg.AtariCheck {
		for i := len(recent) - 1; i >= 0; i-- {
			if m, ok := p.rescueMove(b, color, recent[i]); ok {
				return m, true
			}
		}
	}

	candidates := b.LegalMovesWithoutEyes(color)
	var plays []board.Move
	for _, m := range candidates {
		if m.Kind != board.Play {
			continue
		}
		plays = append(plays, m)
	}
	if len(plays) == 0 {
		return board.NewPass(color), true
	}

	if p.rng.Float64() < p.cfg.PatternProbability {
		var patterned []board.Move
		for _, m := range plays {
			if p.matcher.Match(b, m.Coord, color) && p.acceptable(b, color, m) {
				patterned = append(patterned, m)
			}
		}
		if len(patterned) > 0 {
			return patterned[p.rng.Intn(len(patterned))], true
		}
	}

	// uniform pick among acceptable moves, trying a bounded number of
	// random candidates before giving up and passing.
	attempts := len(plays)
	if attempts > 20 {
		attempts = 20
	}
	for i := 0; i < attempts; i++ {
		m := plays[p.rng.Intn(len(plays))]
		if p.acceptable(b, color, m) {
			return m, true
		}
	}
	for _, m := range plays {
		if p.acceptable(b, color, m) {
			return m, true
		}
	}
	return board.Move{}, false
}

// acceptable rejects self-atari moves for chains that would reach the
// configured cutoff size, unless the move captures something.
func (p *Policy) acceptable(b *board.Board, color board.Color, m board.Move) bool {
	if b.IsNotSelfAtari(m) {
		return true
	}
	if b.RemovesEnemyNeighbouringStones(color, m.Coord) > 0 {
		return true
	}
	// self-atari that captures nothing: only acceptable if the
	// resulting chain stays below the configured cutoff size.
	return b.NewChainLengthLessThan(color, m.Coord, p.cfg.NoSelfAtariCutoff)
}

// rescueMove looks for a chain of color (the side to move) next to
// lastMove that is in atari and returns a defensive reply.
func (p *Policy) rescueMove(b *board.Board, color board.Color, lastMove board.Move) (board.Move, bool) {
	for _, n := range b.Neighbours(lastMove.Coord) {
		ch := b.ChainAt(n)
		if ch == nil || ch.Color() != color {
			continue
		}
		if ch.LibertyCount() != 1 {
			continue
		}
		if p.rng.Float64() < p.cfg.LadderCheck {
			rescues := reader.FixAtari(b, ch)
			if len(rescues) > 0 {
				return rescues[p.rng.Intn(len(rescues))], true
			}
		} else {
			libs := ch.Liberties()
			return board.NewPlay(color, libs[0]), true
		}
	}
	return board.Move{}, false
}
