package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/pattern"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func TestExpandRootBuildsChildrenFromLegalMoves(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	root := NewRoot(board.Black)
	root.ExpandRoot(b, cfg)
	// 25 point moves plus the explicit pass child.
	assert.Len(t, root.Children(), 26)
	for _, c := range root.Children() {
		assert.Equal(t, board.Black, c.Color())
	}
}

func TestFindLeafAndMarkAppliesVirtualLoss(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	root := NewRoot(board.Black)
	root.ExpandRoot(b, cfg)

	rootPlaysBefore := root.Plays()
	path, moves := root.FindLeafAndMark(cfg)

	require.Len(t, path, 2)
	assert.Same(t, root, path[0])
	assert.Equal(t, rootPlaysBefore+1, root.Plays())
	assert.Equal(t, uint64(1), path[1].Plays())
	require.Len(t, moves, 1)
	assert.Equal(t, path[1].MoveValue(), moves[0])
}

func TestParallelDescentsDiversify(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	root := NewRoot(board.Black)
	root.ExpandRoot(b, cfg)

	first, _ := root.FindLeafAndMark(cfg)
	second, _ := root.FindLeafAndMark(cfg)
	assert.NotSame(t, first[1], second[1],
		"two descents with no results in between should pick different leaves")
}

func TestMarkTerminalDominatesSelection(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	root := NewRoot(board.Black)
	root.ExpandRoot(b, cfg)

	winner := root.Children()[7]
	winner.MarkTerminal(true)
	assert.True(t, winner.IsTerminal())
	assert.Same(t, winner, root.selectChild(cfg))

	winner.MarkTerminal(false)
	assert.NotSame(t, winner, root.selectChild(cfg))
}

func TestExpandMarksFinishedPositionTerminal(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	require.NoError(t, b.Play(board.NewPass(board.Black)))
	require.NoError(t, b.Play(board.NewPass(board.White)))
	require.True(t, b.IsGameOver())

	leaf := newLeaf(board.NewPass(board.White), 0, 0)
	added := leaf.Expand(b, cfg, NewPriors(cfg.Priors, pattern.NewMatcher()))
	assert.Zero(t, added)
	assert.True(t, leaf.IsTerminal())
	assert.True(t, leaf.IsLeaf())
	// an empty board scores W+komi, so the white pass node is a win.
	assert.Equal(t, float64(leaf.plays), leaf.wins)
}

func TestRecordOnPathCreditsWinnerAndAMAF(t *testing.T) {
	blackMove := board.NewPlay(board.Black, board.NewCoord(3, 3))
	whiteReply := board.NewPlay(board.White, board.NewCoord(5, 5))

	child := newLeaf(blackMove, 0, 0)
	sibling := newLeaf(board.NewPlay(board.Black, board.NewCoord(4, 4)), 0, 0)
	root := NewRoot(board.Black)
	root.children = []*Node{child, sibling}
	child.children = []*Node{newLeaf(whiteReply, 0, 0)}

	amaf := map[board.Coord]board.Color{
		board.NewCoord(4, 4): board.Black,
		board.NewCoord(5, 5): board.White,
	}
	RecordOnPath([]*Node{root, child}, 3, board.Black, 0.5, 0, amaf)

	// binary scoring (scoreWeight 0): the winning color's nodes gain one
	// full win each. The root was seeded with wins=1.
	assert.Equal(t, 1.0, child.wins)
	assert.Equal(t, 2.0, root.wins)

	// the sibling's move appears in the AMAF map for black, so it earns
	// an AMAF play and an AMAF win; white's reply earns a play only.
	assert.Equal(t, uint64(1), sibling.amafPlays)
	assert.Equal(t, 1.0, sibling.amafWins)
	assert.Equal(t, uint64(1), child.children[0].amafPlays)
	assert.Zero(t, child.children[0].amafWins)

	// nodesAdded lands on every ancestor of the leaf, not the leaf.
	assert.Equal(t, uint64(3), root.descendants)
	assert.Zero(t, child.descendants)
}

func TestBestPicksHighestVisitsFirstSeenOnTies(t *testing.T) {
	a := newLeaf(board.NewPlay(board.Black, board.NewCoord(1, 1)), 0, 0)
	bn := newLeaf(board.NewPlay(board.Black, board.NewCoord(2, 2)), 0, 0)
	c := newLeaf(board.NewPlay(board.Black, board.NewCoord(3, 3)), 0, 0)
	a.plays, a.wins = 10, 6
	bn.plays, bn.wins = 10, 9
	c.plays, c.wins = 4, 4

	root := NewRoot(board.Black)
	root.children = []*Node{a, bn, c}

	best, move, ratio := root.Best()
	assert.Same(t, a, best, "ties on visit count go to the first child")
	assert.Equal(t, a.MoveValue(), move)
	assert.InDelta(t, 0.6, ratio, 1e-9)
}

func TestBestStableUnderLosingVisitsOnOthers(t *testing.T) {
	a := newLeaf(board.NewPlay(board.Black, board.NewCoord(1, 1)), 0, 0)
	bn := newLeaf(board.NewPlay(board.Black, board.NewCoord(2, 2)), 0, 0)
	a.plays, a.wins = 20, 15
	bn.plays, bn.wins = 10, 5

	root := NewRoot(board.Black)
	root.children = []*Node{a, bn}

	best, _, _ := root.Best()
	require.Same(t, a, best)

	// losing visits on the runner-up, still below the leader's count.
	bn.plays += 5
	best, _, _ = root.Best()
	assert.Same(t, a, best)
}

func TestFindNewRootPromotesMatchingChild(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	root := NewRoot(board.Black)
	root.ExpandRoot(b, cfg)

	opponentMove := root.Children()[3].MoveValue()
	require.NoError(t, b.Play(opponentMove))

	// give the child some history and a subtree so the reroot has
	// something to preserve and something to reset.
	child := root.Children()[3]
	child.plays, child.wins = 40, 25
	child.Expand(b, cfg, NewPriors(cfg.Priors, pattern.NewMatcher()))

	newRoot, ok := root.FindNewRoot(opponentMove, board.White, b)
	require.True(t, ok)
	assert.Same(t, child, newRoot)
	assert.Equal(t, uint64(1), newRoot.Plays())
	assert.Equal(t, board.White, newRoot.Color())
	assert.Equal(t, board.NoMove, newRoot.MoveValue().Kind)
	assert.NotEmpty(t, newRoot.Children(), "the promoted child keeps its subtree")
}

func TestFindNewRootFailsOnUnknownMove(t *testing.T) {
	cfg := testConfig(t)
	b := board.New(5, 6.5, board.AnySizeTrompTaylor)
	root := NewRoot(board.Black)
	root.ExpandRoot(b, cfg)

	_, ok := root.FindNewRoot(board.NewPlay(board.White, board.NewCoord(9, 9)), board.White, b)
	assert.False(t, ok)
}

func TestChildValueBlendsRAVEOnceSampled(t *testing.T) {
	cfg := testConfig(t)
	n := newLeaf(board.NewPlay(board.Black, board.NewCoord(3, 3)), 0, 0)
	n.plays, n.wins = 10, 5

	pure := n.childValue(cfg, 100)
	n.amafPlays, n.amafWins = 20, 20
	blended := n.childValue(cfg, 100)
	assert.Greater(t, blended, pure,
		"a perfect AMAF record should pull the blended value up")
}
