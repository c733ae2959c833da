// Package engine wires the core board/reader/mcts/timer subsystems
// together into the single stateful object the GTP dispatcher drives:
// one Controller per running engine process, holding the board, the
// search state, and the time control behind a handler-friendly API.
package engine

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/mcts"
	"github.com/hafner-go/goigo/internal/pattern"
	"github.com/hafner-go/goigo/internal/sgf"
	"github.com/hafner-go/goigo/internal/timer"
)

const (
	defaultSize = 9
	defaultKomi = 6.5

	// defaultMainTime is the assumed main time before any GTP
	// time_settings command arrives (5 minutes sudden death); without it
	// the per-move budget would be zero and genmove would return after a
	// single playout.
	defaultMainTime = 5 * time.Minute
)

// Controller is the stateful engine instance the GTP dispatcher talks
// to: a board, the reusable search engine sitting on top of it, the
// clocks for both colors, and the positional-superko history for
// rulesets that enforce it.
type Controller struct {
	cfg     *config.Config
	log     zerolog.Logger
	matcher *pattern.Matcher

	b        *board.Board
	ruleset  board.Ruleset
	search   *mcts.SearchEngine
	lastMove board.Move

	timers map[board.Color]*timer.Timer

	seen map[uint64]struct{}
}

// New builds a Controller from a resolved configuration and logger,
// starting on an empty 9x9 board at komi 6.5 under Tromp-Taylor rules
// (the GTP controller is expected to follow up with boardsize/komi/
// komi as needed, exactly like a freshly started GTP engine process).
func New(cfg *config.Config, log zerolog.Logger) *Controller {
	c := &Controller{
		cfg:     cfg,
		log:     log,
		matcher: pattern.NewMatcher(),
		ruleset: board.AnySizeTrompTaylor,
	}
	c.search = mcts.NewSearchEngine(cfg, c.matcher)
	c.resetBoard(defaultSize, defaultKomi)
	return c
}

func (c *Controller) resetBoard(size uint8, komi float64) {
	c.b = board.New(size, komi, c.ruleset)
	c.lastMove = board.Move{Kind: board.NoMove}
	c.seen = map[uint64]struct{}{c.b.Hash(): {}}
	c.search.Reset(size)
	c.timers = map[board.Color]*timer.Timer{
		board.Black: c.newTimer(defaultMainTime, 0, 0),
		board.White: c.newTimer(defaultMainTime, 0, 0),
	}
}

func (c *Controller) newTimer(main, byo time.Duration, byoStones int) *timer.Timer {
	return timer.New(timer.Config{
		C:                 c.cfg.TimeControl.C,
		FastplayBudget:    c.cfg.TimeControl.FastplayBudget,
		FastplayThreshold: c.cfg.TimeControl.FastplayThreshold,
		MinStones:         c.cfg.TimeControl.MinStones,
	}, main, byo, byoStones)
}

// Board exposes the current position for GTP commands (showboard,
// final_score) that need read-only access.
func (c *Controller) Board() *board.Board { return c.b }

// SetBoardSize resets the engine at the given size, preserving komi and
// ruleset. GTP only supports up to 25.
func (c *Controller) SetBoardSize(size int) bool {
	if size < 1 || size > 25 {
		return false
	}
	c.resetBoard(uint8(size), c.b.Komi())
	return true
}

// ClearBoard resets the position, preserving board size, komi and
// ruleset.
func (c *Controller) ClearBoard() {
	c.resetBoard(c.b.Size(), c.b.Komi())
}

// SetKomi updates komi, preserving the board size and position by
// rescoring rather than resetting: komi only affects the score, never
// legality, so the live game and search tree survive unaffected.
func (c *Controller) SetKomi(komi float64) {
	c.b.SetKomi(komi)
}

// SetRuleset updates the ruleset, resetting the position (it changes
// suicide/superko legality, so reusing the old board would be unsound).
func (c *Controller) SetRuleset(r board.Ruleset) {
	c.ruleset = r
	c.resetBoard(c.b.Size(), c.b.Komi())
}

// Play validates and applies m, additionally enforcing positional
// superko (by cloning, playing, and hashing) for rulesets that define
// it, since Board.IsLegal only checks the immediate ko point.
func (c *Controller) Play(m board.Move) error {
	if err := c.b.IsLegal(m); err != nil {
		return err
	}
	if m.Kind == board.Play && c.ruleset.SuperkoEnforced() {
		clone := c.b.Clone()
		clone.PlayLegalMove(m)
		h := clone.Hash()
		if _, ok := c.seen[h]; ok {
			return board.SuperKo
		}
	}
	c.b.PlayLegalMove(m)
	c.lastMove = m
	c.seen[c.b.Hash()] = struct{}{}
	return nil
}

// Genmove asks the search engine for a move for color, applies it to
// the board (unless it requests the reg_genmove no-op variant), and
// returns it.
func (c *Controller) Genmove(color board.Color, apply bool) board.Move {
	t := c.timers[color]
	t.Start()
	m, playouts := c.search.Genmove(color, c.b, c.lastMove, t)
	t.Adjust(c.b.VacantPointCount())
	c.log.Info().
		Int("playouts", playouts).
		Str("move", m.ToGTP()).
		Str("color", color.String()).
		Msg("genmove")
	if apply {
		c.b.PlayLegalMove(m)
		c.lastMove = m
		c.seen[c.b.Hash()] = struct{}{}
	}
	return m
}

// KgsGenmoveCleanup is kgs-genmove_cleanup's handler. The original
// engine runs no separate dead-stone cleanup search (it has no
// life-and-death solver), so this is a plain alias for Genmove.
func (c *Controller) KgsGenmoveCleanup(color board.Color) board.Move {
	return c.Genmove(color, true)
}

// TimeSettings configures both colors' clocks.
func (c *Controller) TimeSettings(main, byo time.Duration, byoStones int) {
	for _, col := range []board.Color{board.Black, board.White} {
		c.timers[col] = c.newTimer(main, byo, byoStones)
	}
}

// TimeLeft applies a GTP time_left update for one color.
func (c *Controller) TimeLeft(color board.Color, remaining time.Duration, stones int) {
	c.timers[color].SetTimeLeft(remaining, stones)
}

// FinalScore renders the area score as a GTP final_score string.
func (c *Controller) FinalScore() string {
	return c.b.Score().String()
}

// FinalStatusList returns the vertices GTP considers to have the given
// status. goigo runs no life-and-death solver, so every stone on the
// board is reported alive and dead/seki are always empty.
func (c *Controller) FinalStatusList(status string) []string {
	if status != "alive" {
		return nil
	}
	var out []string
	for _, coord := range board.CoordsForSize(c.b.Size()) {
		if c.b.Color(coord) != board.Empty {
			out = append(out, coord.ToGTP())
		}
	}
	return out
}

// ShowBoard renders the position as an ASCII grid, top row first.
func (c *Controller) ShowBoard() string {
	var sb strings.Builder
	size := c.b.Size()
	for row := int(size); row >= 1; row-- {
		for col := uint8(1); col <= size; col++ {
			switch c.b.Color(board.NewCoord(col, uint8(row))) {
			case board.Empty:
				sb.WriteByte('.')
			case board.Black:
				sb.WriteByte('@')
			case board.White:
				sb.WriteByte('O')
			}
		}
		if row > 1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// GoguiOwnership renders the running ownership statistics as a GoGui
// INFLUENCE-style grid.
func (c *Controller) GoguiOwnership() string {
	return c.search.Ownership().String()
}

// LoadSGF replays an SGF game record's setup stones and move sequence
// onto a freshly reset board of the file's size and komi. Moves are
// applied with PlayLegalMove rather than the legality-checked Play,
// since AB/AW setup stones and handicap records routinely violate
// ordinary turn-alternation rules that IsLegal would reject.
func (c *Controller) LoadSGF(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	game, err := sgf.Parse(string(data))
	if err != nil {
		return err
	}
	c.resetBoard(game.Size, game.Komi)
	for _, m := range game.Moves {
		c.b.PlayLegalMove(m)
		c.lastMove = m
		c.seen[c.b.Hash()] = struct{}{}
	}
	return nil
}
