package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hafner-go/goigo/internal/board"
)

// corner atari: a white stone on A1 with black on A2, so B1 captures.
func cornerAtariBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	play(t, b, board.NewPlay(board.White, board.NewCoord(1, 1)))
	play(t, b, board.NewPlay(board.Black, board.NewCoord(1, 2)))
	return b
}

func TestLibertyCountCountsEmptyNeighbours(t *testing.T) {
	b := cornerAtariBoard(t)
	assert.Equal(t, 4, b.LibertyCount(board.NewCoord(5, 5)))
	// B1 touches the white stone at A1 and the empty C1 and B2.
	assert.Equal(t, 2, b.LibertyCount(board.NewCoord(2, 1)))
}

func TestRemovesEnemyNeighbouringStones(t *testing.T) {
	b := cornerAtariBoard(t)
	// playing black at B1 captures the white A1 stone.
	assert.Equal(t, 1, b.RemovesEnemyNeighbouringStones(board.Black, board.NewCoord(2, 1)))
	// white playing B1 captures nothing.
	assert.Equal(t, 0, b.RemovesEnemyNeighbouringStones(board.White, board.NewCoord(2, 1)))
}

func TestNewChainLibertiesGreaterThan(t *testing.T) {
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	play(t, b, board.NewPlay(board.Black, board.NewCoord(4, 4)))
	// extending to (4,5) merges into a two-stone chain with 6 liberties.
	assert.True(t, b.NewChainLibertiesGreaterThan(board.Black, board.NewCoord(4, 5), 5))
	assert.False(t, b.NewChainLibertiesGreaterThan(board.Black, board.NewCoord(4, 5), 6))
}

func TestNewChainLengthLessThan(t *testing.T) {
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	play(t, b, board.NewPlay(board.Black, board.NewCoord(4, 4)))
	play(t, b, board.NewPlay(board.White, board.NewCoord(8, 8)))
	play(t, b, board.NewPlay(board.Black, board.NewCoord(4, 6)))
	// playing (4,5) bridges both stones into a chain of 3.
	assert.True(t, b.NewChainLengthLessThan(board.Black, board.NewCoord(4, 5), 4))
	assert.False(t, b.NewChainLengthLessThan(board.Black, board.NewCoord(4, 5), 3))
}

func TestIsNotSelfAtariRecognizesCapture(t *testing.T) {
	b := cornerAtariBoard(t)
	// B1 for black has two empty neighbours (C1, B2) and also captures
	// A1, so it is not self-atari.
	assert.True(t, b.IsNotSelfAtari(board.NewPlay(board.Black, board.NewCoord(2, 1))))
}

func TestIsNotSelfAtariRejectsCornerPush(t *testing.T) {
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	play(t, b, board.NewPlay(board.Black, board.NewCoord(1, 2)))
	play(t, b, board.NewPlay(board.White, board.NewCoord(5, 5)))
	play(t, b, board.NewPlay(board.Black, board.NewCoord(2, 1)))
	// A1 is now a zero-liberty placement for white (a single-stone
	// suicide): self-atari.
	assert.False(t, b.IsNotSelfAtari(board.NewPlay(board.White, board.NewCoord(1, 1))))
}

func TestEyeRecognition(t *testing.T) {
	b := board.New(9, 6.5, board.Minimal)
	// black diamond around (2,2) plus the diagonals needed for an eye.
	for _, c := range []board.Coord{
		{Col: 2, Row: 1}, {Col: 1, Row: 2}, {Col: 3, Row: 2}, {Col: 2, Row: 3},
		{Col: 1, Row: 1}, {Col: 3, Row: 1}, {Col: 1, Row: 3},
	} {
		play(t, b, board.NewPlay(board.Black, c))
	}
	assert.True(t, b.IsEye(board.NewCoord(2, 2), board.Black))
	assert.False(t, b.IsEye(board.NewCoord(2, 2), board.White))

	// an enemy stone on the remaining diagonal leaves the eye intact:
	// (2,2) has all four diagonals on the board, so one enemy diagonal
	// is tolerated.
	play(t, b, board.NewPlay(board.White, board.NewCoord(3, 3)))
	assert.True(t, b.IsEye(board.NewCoord(2, 2), board.Black))
}

func TestEyeAtEdgeNeedsAllDiagonals(t *testing.T) {
	b := board.New(9, 6.5, board.Minimal)
	// candidate eye at A2 (edge): neighbours A1, A3, B2 black.
	for _, c := range []board.Coord{
		{Col: 1, Row: 1}, {Col: 1, Row: 3}, {Col: 2, Row: 2},
	} {
		play(t, b, board.NewPlay(board.Black, c))
	}
	assert.True(t, b.IsEye(board.NewCoord(1, 2), board.Black))
	// any enemy diagonal at the edge destroys the eye.
	play(t, b, board.NewPlay(board.White, board.NewCoord(2, 3)))
	assert.False(t, b.IsEye(board.NewCoord(1, 2), board.Black))
}

func TestLegalMovesWithoutEyesSkipsOwnEyes(t *testing.T) {
	b := board.New(9, 6.5, board.Minimal)
	for _, c := range []board.Coord{
		{Col: 2, Row: 1}, {Col: 1, Row: 2}, {Col: 3, Row: 2}, {Col: 2, Row: 3},
		{Col: 1, Row: 1}, {Col: 3, Row: 1}, {Col: 1, Row: 3}, {Col: 3, Row: 3},
	} {
		play(t, b, board.NewPlay(board.Black, c))
	}
	for _, m := range b.LegalMovesWithoutEyes(board.Black) {
		if m.Kind != board.Play {
			continue
		}
		assert.NotEqual(t, board.NewCoord(2, 2), m.Coord, "eye fill offered as a move")
	}
}

func TestPlayIsLegalConsistency(t *testing.T) {
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	play(t, b, board.NewPlay(board.Black, board.NewCoord(3, 3)))
	for _, c := range board.CoordsForSize(5) {
		m := board.NewPlay(board.White, c)
		legal := b.IsLegal(m) == nil
		clone := b.Clone()
		err := clone.Play(m)
		assert.Equal(t, legal, err == nil, "play/is_legal disagree on %s", m)
	}
}

func TestLibertyInvariantAfterCaptures(t *testing.T) {
	b := board.New(9, 6.5, board.AnySizeTrompTaylor)
	seq := []board.Move{
		board.NewPlay(board.White, board.NewCoord(1, 1)),
		board.NewPlay(board.Black, board.NewCoord(1, 2)),
		board.NewPlay(board.White, board.NewCoord(5, 5)),
		board.NewPlay(board.Black, board.NewCoord(2, 1)), // captures A1
	}
	for _, m := range seq {
		play(t, b, m)
	}
	for _, c := range b.Chains() {
		expected := map[board.Coord]struct{}{}
		for _, s := range c.Coords() {
			for _, n := range b.Neighbours(s) {
				if b.Color(n) == board.Empty {
					expected[n] = struct{}{}
				}
			}
		}
		assert.Equal(t, len(expected), c.LibertyCount(), "chain %d", c.ID())
		for l := range expected {
			assert.True(t, c.HasLiberty(l))
		}
	}
}
