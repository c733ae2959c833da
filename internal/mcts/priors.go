package mcts

import (
	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/pattern"
	"github.com/hafner-go/goigo/internal/reader"
)

// Priors computes the per-candidate-move prior plays/wins applied at
// node expansion: self-atari and border-empty-area are negative or even
// priors on the individual move, pattern matches are an even prior
// scaled by how many shapes match, and capture-ladder priors (computed
// once per expansion, across every fresh child) bias the move that
// captures an opponent chain left in atari or near-atari by the
// previous move.
type Priors struct {
	cfg     config.PriorsConfig
	matcher *pattern.Matcher
}

// NewPriors builds a Priors evaluator from the configured weights and a
// shared, immutable pattern matcher.
func NewPriors(cfg config.PriorsConfig, matcher *pattern.Matcher) *Priors {
	return &Priors{cfg: cfg, matcher: matcher}
}

// For computes the individual prior (self-atari, empty-area, pattern)
// for playing m on b, seeded with the configured neutral prior.
func (p *Priors) For(b *board.Board, m board.Move) (plays uint64, wins float64) {
	plays = uint64(p.cfg.NeutralPlays)
	wins = float64(p.cfg.NeutralWins)
	if m.Kind != board.Play {
		return plays, wins
	}

	if !b.IsNotSelfAtari(m) {
		plays += uint64(p.cfg.SelfAtari)
	}

	if p.cfg.Empty > 0 {
		distance := m.Coord.DistanceToBorder(b.Size())
		if distance <= 2 && inEmptyArea(b, m) {
			if distance <= 1 {
				plays += uint64(p.cfg.Empty)
			} else {
				plays += uint64(p.cfg.Empty)
				wins += float64(p.cfg.Empty)
			}
		}
	}

	if p.cfg.Patterns > 0 {
		if count := p.matcher.Count(b, m.Coord, m.Color); count > 0 {
			prior := count * p.cfg.Patterns
			plays += uint64(prior)
			wins += float64(prior)
		}
	}

	return plays, wins
}

// inEmptyArea reports whether every point within Manhattan distance 3
// of m's coord is empty, i.e. m sits in open space rather than near
// other stones.
func inEmptyArea(b *board.Board, m board.Move) bool {
	for _, c := range m.Coord.ManhattanDistanceThreeNeighbours(b.Size()) {
		if b.Color(c) != board.Empty {
			return false
		}
	}
	return true
}

// ApplyLadderPriors biases the freshly built children of an expanded
// node toward capturing an opposing chain the previous move left in
// atari or near-atari: single stones get capture_one, larger chains get
// capture_many, each only when the Reader confirms a capturing ladder
// move exists and some child represents exactly that move.
func ApplyLadderPriors(children []*Node, b *board.Board, cfg config.PriorsConfig) {
	// The chains at risk belong to whoever just moved into this
	// position: the node's own color is the opposite of the side to
	// move among these children.
	defender := b.NextPlayer().Opposite()

	find := func(m board.Move) *Node {
		for _, c := range children {
			if c.move == m {
				return c
			}
		}
		return nil
	}

	for _, ch := range b.Chains() {
		if ch.Color() != defender || ch.Size() != 1 || ch.LibertyCount() > 2 {
			continue
		}
		if m, ok := reader.CaptureLadder(b, ch); ok {
			if n := find(m); n != nil {
				n.addEvenPrior(cfg.CaptureOne)
			}
		}
	}
	for _, ch := range b.Chains() {
		if ch.Color() != defender || ch.Size() <= 1 || ch.LibertyCount() > 2 {
			continue
		}
		if m, ok := reader.CaptureLadder(b, ch); ok {
			if n := find(m); n != nil {
				n.addEvenPrior(cfg.CaptureMany)
			}
		}
	}
}
