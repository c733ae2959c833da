package mcts

import (
	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/pattern"
	"github.com/hafner-go/goigo/internal/playout"
	"github.com/hafner-go/goigo/internal/timer"
)

// SearchEngine owns the search tree's root, drives the coordinator
// loop, and picks the move to play. One SearchEngine is reused across
// a whole game: between moves it reroots onto the opponent's reply
// instead of rebuilding the tree.
type SearchEngine struct {
	cfg       *config.Config
	matcher   *pattern.Matcher
	priors    *Priors
	root      *Node
	ownership *board.OwnershipStats
	size      uint8
}

// NewSearchEngine builds a SearchEngine with an empty, unexpanded root.
// Reset must be called once the board size is known before the first
// Genmove.
func NewSearchEngine(cfg *config.Config, matcher *pattern.Matcher) *SearchEngine {
	return &SearchEngine{
		cfg:     cfg,
		matcher: matcher,
		priors:  NewPriors(cfg.Priors, matcher),
		root:    NewRoot(board.Black),
	}
}

// Reset discards the tree and ownership statistics, as clear_board or a
// boardsize change requires.
func (e *SearchEngine) Reset(size uint8) {
	e.root = NewRoot(board.Black)
	e.ownership = board.NewOwnershipStats(size, e.cfg.Scoring.OwnershipPrior, e.cfg.Scoring.OwnershipCutoff)
	e.size = size
}

// Ownership returns the engine's running ownership histogram, valid
// after at least one Genmove call.
func (e *SearchEngine) Ownership() *board.OwnershipStats {
	if e.ownership == nil {
		e.ownership = board.NewOwnershipStats(e.size, e.cfg.Scoring.OwnershipPrior, e.cfg.Scoring.OwnershipCutoff)
	}
	return e.ownership
}

// Playouts returns the current root's visit count. Genmove advances the
// tree onto its chosen move before returning, which resets this count;
// the number of playouts a search ran is Genmove's second return value.
func (e *SearchEngine) Playouts() uint64 {
	return e.root.Plays()
}

// toPlayoutConfig adapts the engine's config.PlayoutConfig to the field
// set playout.Config expects; the two mirror each other field for
// field.
func toPlayoutConfig(c config.PlayoutConfig) playout.Config {
	return playout.Config{
		AtariCheck:             c.AtariCheck,
		LadderCheck:            c.LadderCheck,
		PatternProbability:     c.PatternProbability,
		PlayInMiddleOfEye:      c.PlayInMiddleOfEye,
		LastMovesForHeuristics: c.LastMovesForHeuristics,
		NoSelfAtariCutoff:      c.NoSelfAtariCutoff,
	}
}

// reroot promotes the child matching opponentMove to root for color,
// rebuilding a fresh root (seeded from b's current legal moves) when no
// such child exists or when every child of an expanded match was
// pruned. A match that was never expanded is kept childless; Genmove
// expands it.
func (e *SearchEngine) reroot(b *board.Board, opponentMove board.Move, color board.Color) {
	if newRoot, ok := e.root.FindNewRoot(opponentMove, color, b); ok {
		e.root = newRoot
		return
	}
	e.root = NewRoot(color)
	e.root.ExpandRoot(b, e.cfg)
}

// Genmove runs the coordinator/worker search loop until t reports the
// per-move time budget is exhausted, then returns the best move and the
// number of playouts run. b is the actual game position (never
// mutated); opponentMove is the move that led to it (NoMove if this is
// the very first move of the game, or after a fresh reset).
func (e *SearchEngine) Genmove(color board.Color, b *board.Board, opponentMove board.Move, t *timer.Timer) (board.Move, int) {
	if e.ownership == nil || e.size != b.Size() {
		e.ownership = board.NewOwnershipStats(b.Size(), e.cfg.Scoring.OwnershipPrior, e.cfg.Scoring.OwnershipCutoff)
		e.size = b.Size()
	}
	e.reroot(b, opponentMove, color)

	if len(e.root.Children()) == 0 {
		e.root.ExpandRoot(b, e.cfg)
	}
	if len(e.root.Children()) == 0 {
		return board.NewPass(color), int(e.root.Plays())
	}

	pool := Spin(e.cfg.Threads, b, toPlayoutConfig(e.cfg.Playout), e.matcher)
	t.Start()

	for {
		_, _, winRatio := e.root.Best()
		if t.RanOutOfTime(b.VacantPointCount(), winRatio) {
			pool.Halt()
			break
		}
		res := <-pool.Results()
		if res.path != nil {
			e.ownership.Merge(res.result.Score)
			RecordOnPath(res.path, res.nodesAdded, res.result.Winner, res.result.Score.Adjusted(), e.cfg.Tree.ScoreWeight, res.result.AMAF)
		}
		path, moves := e.root.FindLeafAndMark(e.cfg)
		leaf := path[len(path)-1]
		clone := b.Clone()
		for _, m := range moves {
			clone.PlayLegalMove(m)
		}
		nodesAdded := leaf.Expand(clone, e.cfg, e.priors)
		res.inbox <- playoutJob{path: path, moves: moves, nodesAdded: nodesAdded}
	}

	playouts := int(e.root.Plays())
	m := e.bestMove(b, color)
	// Advance the tree onto our own chosen move. The next Genmove call,
	// for the other side, reroots again onto the opponent's actual
	// reply and overwrites this with the correct perspective; this step
	// only prunes now-unreachable branches.
	afterMove := b.Clone()
	afterMove.PlayLegalMove(m)
	e.reroot(afterMove, m, color)
	return m, playouts
}

// bestMove picks the root child with the highest visit count, with a
// ruleset-dependent pass preference and the 0%/15% resign/pass
// thresholds.
func (e *SearchEngine) bestMove(b *board.Board, color board.Color) board.Move {
	_, bestMove, bestRatio := e.root.Best()

	var passNode *Node
	for _, c := range e.root.Children() {
		if c.MoveValue().IsPass() {
			passNode = c
			break
		}
	}

	chosen := bestMove
	ratio := bestRatio
	if passNode != nil {
		passRatio := passNode.winRatio()
		switch b.Ruleset() {
		case board.KgsChinese:
			if passRatio >= bestRatio {
				chosen, ratio = passNode.MoveValue(), passRatio
			}
		default:
			// Tromp-Taylor and CGOS only prefer pass when already winning.
			if b.Winner() == color && passRatio >= bestRatio {
				chosen, ratio = passNode.MoveValue(), passRatio
			}
		}
	}

	if ratio == 0 {
		return board.NewPass(color)
	}
	if ratio < 0.15 {
		return board.NewResign(color)
	}
	return chosen
}
