package mcts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/mcts"
	"github.com/hafner-go/goigo/internal/pattern"
	"github.com/hafner-go/goigo/internal/timer"
)

func TestGenmoveReturnsLegalMove(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Threads = 2

	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	e := mcts.NewSearchEngine(cfg, pattern.NewMatcher())
	e.Reset(5)

	tm := timer.New(timer.DefaultConfig(), 2*time.Second, 0, 0)
	m, playouts := e.Genmove(board.Black, b, board.Move{Kind: board.NoMove}, tm)

	assert.Greater(t, playouts, 0, "the search should complete at least one playout")
	require.Equal(t, board.Black, m.Color)
	if m.Kind == board.Play {
		assert.NoError(t, b.IsLegal(m))
	}
}

func TestGenmoveReusesTreeAcrossMoves(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Threads = 2

	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	e := mcts.NewSearchEngine(cfg, pattern.NewMatcher())
	e.Reset(5)

	tm := timer.New(timer.DefaultConfig(), 2*time.Second, 0, 0)
	m, _ := e.Genmove(board.Black, b, board.Move{Kind: board.NoMove}, tm)
	require.NoError(t, b.Play(m))

	reply, _ := e.Genmove(board.White, b, m, timer.New(timer.DefaultConfig(), 2*time.Second, 0, 0))
	assert.Equal(t, board.White, reply.Color)
	if reply.Kind == board.Play {
		assert.NoError(t, b.IsLegal(reply))
	}
}

func TestGenmovePassesWhenGameDecided(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Threads = 1

	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	require.NoError(t, b.Play(board.NewPass(board.Black)))
	require.NoError(t, b.Play(board.NewPass(board.White)))

	e := mcts.NewSearchEngine(cfg, pattern.NewMatcher())
	e.Reset(5)
	m, _ := e.Genmove(board.Black, b, board.NewPass(board.White), timer.New(timer.DefaultConfig(), time.Second, 0, 0))
	assert.Equal(t, board.Pass, m.Kind)
}
