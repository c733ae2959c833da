package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/engine"
)

func newController(t *testing.T) *engine.Controller {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return engine.New(cfg, zerolog.Nop())
}

func TestClearBoardPreservesKomi(t *testing.T) {
	c := newController(t)
	c.SetKomi(0.5)
	require.NoError(t, c.Play(board.NewPlay(board.Black, board.NewCoord(3, 3))))
	c.ClearBoard()
	assert.Equal(t, 0.5, c.Board().Komi())
	assert.Equal(t, board.Empty, c.Board().Color(board.NewCoord(3, 3)))
}

func TestSetBoardSizeBounds(t *testing.T) {
	c := newController(t)
	assert.True(t, c.SetBoardSize(19))
	assert.Equal(t, uint8(19), c.Board().Size())
	assert.False(t, c.SetBoardSize(0))
	assert.False(t, c.SetBoardSize(26))
}

func TestPlayRejectsIllegalMoves(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Play(board.NewPlay(board.Black, board.NewCoord(3, 3))))
	err := c.Play(board.NewPlay(board.White, board.NewCoord(3, 3)))
	assert.Equal(t, board.IntersectionNotEmpty, err)
}

func TestPlayEnforcesPositionalSuperko(t *testing.T) {
	c := newController(t)
	// Under Tromp-Taylor a single-stone suicide is a legal board
	// operation, but it leaves the position exactly as it was before the
	// move, which positional superko rejects.
	seq := []board.Move{
		board.NewPlay(board.Black, board.NewCoord(1, 2)),
		board.NewPlay(board.White, board.NewCoord(5, 5)),
		board.NewPlay(board.Black, board.NewCoord(2, 1)),
	}
	for _, m := range seq {
		require.NoError(t, c.Play(m), "move %s", m)
	}
	err := c.Play(board.NewPlay(board.White, board.NewCoord(1, 1)))
	assert.Equal(t, board.SuperKo, err)
}

func TestLoadSGFReplaysGame(t *testing.T) {
	c := newController(t)
	path := filepath.Join(t.TempDir(), "game.sgf")
	require.NoError(t, os.WriteFile(path, []byte("(;SZ[9]KM[5.5];B[ee];W[cc])"), 0o644))

	require.NoError(t, c.LoadSGF(path))
	assert.Equal(t, uint8(9), c.Board().Size())
	assert.Equal(t, 5.5, c.Board().Komi())
	assert.Equal(t, board.Black, c.Board().Color(board.NewCoord(5, 5)))
	assert.Equal(t, board.White, c.Board().Color(board.NewCoord(3, 7)))
}

func TestLoadSGFMissingFile(t *testing.T) {
	c := newController(t)
	assert.Error(t, c.LoadSGF(filepath.Join(t.TempDir(), "nope.sgf")))
}

func TestShowBoardRendersStones(t *testing.T) {
	c := newController(t)
	require.True(t, c.SetBoardSize(3))
	require.NoError(t, c.Play(board.NewPlay(board.Black, board.NewCoord(1, 1))))
	require.NoError(t, c.Play(board.NewPlay(board.White, board.NewCoord(3, 3))))
	assert.Equal(t, "..O\n...\n@..", c.ShowBoard())
}

func TestFinalStatusListDeadAndSekiAreEmpty(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Play(board.NewPlay(board.Black, board.NewCoord(3, 3))))
	assert.NotEmpty(t, c.FinalStatusList("alive"))
	assert.Empty(t, c.FinalStatusList("dead"))
	assert.Empty(t, c.FinalStatusList("seki"))
}
