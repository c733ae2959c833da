package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hafner-go/goigo/internal/board"
)

func TestOwnershipStartsUndecided(t *testing.T) {
	o := board.NewOwnershipStats(5, 100, 0.1)
	assert.Zero(t, o.ValueForCoord(board.NewCoord(3, 3)))
}

func TestOwnershipConvergesWithSamples(t *testing.T) {
	b := board.New(5, 6.5, board.Minimal)
	for _, c := range board.CoordsForSize(5) {
		// leave one liberty so the filling chain never self-captures.
		if c == board.NewCoord(1, 1) {
			continue
		}
		play(t, b, board.NewPlay(board.Black, c))
	}
	s := b.Score()

	o := board.NewOwnershipStats(5, 100, 0.1)
	// the neutral prior (100 empty pseudo-samples) must be outweighed
	// before a point reads as decided.
	for i := 0; i < 500; i++ {
		o.Merge(s)
	}
	v := o.ValueForCoord(board.NewCoord(3, 3))
	assert.Greater(t, v, 0.5, "a point black held in every sample should read black")
}

func TestScoreIdempotence(t *testing.T) {
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	play(t, b, board.NewPlay(board.Black, board.NewCoord(3, 3)))
	play(t, b, board.NewPlay(board.White, board.NewCoord(2, 2)))
	first := b.Score()
	second := b.Score()
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, first.BlackScore(), second.BlackScore())
	assert.Equal(t, first.WhiteScore(), second.WhiteScore())
}

func TestTerritoryCountsEnclosedAreaOnly(t *testing.T) {
	// black wall across the second column of a 5x5 board encloses the
	// first column as black territory; the rest touches only black too,
	// so the whole empty area is black's.
	b := board.New(5, 6.5, board.Minimal)
	for row := uint8(1); row <= 5; row++ {
		play(t, b, board.NewPlay(board.Black, board.NewCoord(2, row)))
	}
	s := b.Score()
	assert.Equal(t, 5, s.BlackStones)
	assert.Equal(t, 20, s.BlackTerritory)
	assert.Equal(t, 0, s.WhiteTerritory)
	assert.Equal(t, board.Black, s.Winner())
}

func TestDameCountsForNeither(t *testing.T) {
	b := board.New(5, 6.5, board.Minimal)
	play(t, b, board.NewPlay(board.Black, board.NewCoord(1, 1)))
	play(t, b, board.NewPlay(board.White, board.NewCoord(5, 5)))
	s := b.Score()
	// one empty region touching both colors: all of it is dame.
	assert.Zero(t, s.BlackTerritory)
	assert.Zero(t, s.WhiteTerritory)
}
