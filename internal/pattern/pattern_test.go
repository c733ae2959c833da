package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/pattern"
)

func TestMatcherDoesNotPanicOnEdges(t *testing.T) {
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	m := pattern.NewMatcher()
	for _, c := range board.CoordsForSize(9) {
		assert.NotPanics(t, func() {
			m.Match(b, c, board.Black)
		})
	}
}

func TestMatcherIsDeterministic(t *testing.T) {
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	require.NoError(t, b.Play(board.NewPlay(board.Black, board.NewCoord(1, 2))))
	require.NoError(t, b.Play(board.NewPlay(board.White, board.NewCoord(5, 5))))
	m := pattern.NewMatcher()
	first := m.Match(b, board.NewCoord(1, 1), board.Black)
	second := m.Match(b, board.NewCoord(1, 1), board.Black)
	assert.Equal(t, first, second)
}
