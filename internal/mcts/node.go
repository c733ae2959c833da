// Package mcts implements the shared search tree: UCB1-Tuned + RAVE
// node selection, progressive expansion, prior seeding, terminal-node
// handling, subtree reuse between moves, and the coordinator/worker
// concurrency model that folds playout results back into the tree with
// at most one writer.
package mcts

import (
	"math"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
)

// terminalPlays is the sentinel visit count used to mark a node whose
// position is already decided: large enough to dominate every UCB
// comparison without overflowing float64 arithmetic.
const terminalPlays = 1 << 40

// Node is one entry in the search tree: the move that led to it, visit
// and win counters, AMAF counters, prior counters, and its children.
// Color() is the color that played Move — record keeping throughout the
// tree treats "this node's color" as "the player who just moved here".
type Node struct {
	move Move

	plays uint64
	wins  float64

	amafPlays uint64
	amafWins  float64

	priorPlays uint64
	priorWins  float64

	children    []*Node
	descendants uint64
}

// Move is re-exported as board.Move for readability at call sites.
type Move = board.Move

// NewRoot creates a fresh, unexpanded root node for the given color to
// move. A root's color is the side who is about to move (its "move"
// field is a NoMove sentinel carrying that color), with plays/wins
// seeded to 1 to avoid division by zero before its first expansion.
func NewRoot(toMove board.Color) *Node {
	return &Node{
		move:  board.Move{Kind: board.NoMove, Color: toMove},
		plays: 1,
		wins:  1,
	}
}

// ExpandRoot builds a fresh root's children directly from b's legal
// non-eye moves, seeded only with the configured neutral prior (no
// self-atari/empty-area/pattern heuristics, unlike Expand): a
// brand-new root has no board history yet to evaluate priors against
// beyond the current position's legality.
func (n *Node) ExpandRoot(b *board.Board, cfg *config.Config) {
	if b.IsGameOver() {
		return
	}
	moves := b.LegalMovesWithoutEyes(b.NextPlayer())
	n.children = make([]*Node, 0, len(moves))
	for _, m := range moves {
		n.children = append(n.children, newLeaf(m, uint64(cfg.Priors.NeutralPlays), float64(cfg.Priors.NeutralWins)))
	}
	n.descendants = uint64(len(n.children))
}

func newLeaf(m board.Move, priorPlays uint64, priorWins float64) *Node {
	return &Node{move: m, priorPlays: priorPlays, priorWins: priorWins}
}

// Color is the color that played this node's move (the opposite of the
// side to move at this node).
func (n *Node) Color() board.Color { return n.move.Color }

// MoveValue returns the move that led to this node.
func (n *Node) MoveValue() board.Move { return n.move }

// Plays returns the node's visit count.
func (n *Node) Plays() uint64 { return n.plays }

// Children returns the node's children, or nil if it is a leaf.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether the node has not yet been expanded.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// IsTerminal reports whether the node was marked as a terminal result.
func (n *Node) IsTerminal() bool { return n.plays >= terminalPlays }

// MarkTerminal marks a leaf whose replayed position is already
// game-over: its plays become effectively infinite, and its wins
// saturate to the same value (an automatic win) or to zero (an
// automatic loss), so terminal results dominate every UCB comparison.
func (n *Node) MarkTerminal(isWin bool) {
	n.plays = terminalPlays
	if isWin {
		n.wins = terminalPlays
	} else {
		n.wins = 0
	}
}

// winRatio is the raw (prior-free) win ratio, 0.5 on a never-visited node.
func (n *Node) winRatio() float64 {
	if n.plays == 0 {
		return 0.5
	}
	return n.wins / float64(n.plays)
}

// winRatioWithPriors blends the node's real counters with its priors,
// weighted by alpha (priors.best_move_factor).
func (n *Node) winRatioWithPriors(alpha float64) float64 {
	den := n.effectivePlays(alpha)
	if den == 0 {
		return 0.5
	}
	return (n.wins + n.priorWins*alpha) / den
}

func (n *Node) effectivePlays(alpha float64) float64 {
	return float64(n.plays) + float64(n.priorPlays)*alpha
}

// uctTunedValue is the UCB1-Tuned selection value, blending the node's
// prior-adjusted win ratio with a variance-aware exploration bonus.
func (n *Node) uctTunedValue(cfg *config.Config, parentPlays uint64) float64 {
	alpha := cfg.Priors.BestMoveFactor
	p := n.winRatioWithPriors(alpha)
	P := n.effectivePlays(alpha)
	if P <= 0 {
		P = 1e-9
	}
	logParent := math.Log(math.Max(float64(parentPlays), 1))
	variance := p*(1-p) + math.Sqrt(2*logParent/P)
	if variance > 0.25 {
		variance = 0.25
	}
	return p + math.Sqrt(logParent*variance/P)
}

// childValue is uctTunedValue blended with the RAVE/AMAF estimate once
// the node has accumulated AMAF samples.
func (n *Node) childValue(cfg *config.Config, parentPlays uint64) float64 {
	uct := n.uctTunedValue(cfg, parentPlays)
	if n.amafPlays == 0 {
		return uct
	}
	alpha := cfg.Priors.BestMoveFactor
	P := n.effectivePlays(alpha)
	ap := float64(n.amafPlays)
	raveEquiv := cfg.Tree.RaveEquiv
	beta := ap / (ap + P + P*ap/raveEquiv)
	raveWinRatio := n.amafWins / ap
	return beta*raveWinRatio + (1-beta)*uct
}

// selectChild returns the child maximizing childValue, breaking ties by
// first occurrence (lowest child index).
func (n *Node) selectChild(cfg *config.Config) *Node {
	best := n.children[0]
	bestValue := best.childValue(cfg, n.plays)
	for _, c := range n.children[1:] {
		v := c.childValue(cfg, n.plays)
		if v > bestValue {
			best = c
			bestValue = v
		}
	}
	return best
}

// FindLeafAndMark descends from the root to a leaf, applying a
// virtual-loss-style pre-increment of plays at every node on the path
// (including the leaf) so that concurrent descents before any result
// returns still diversify. It returns the full path (root to leaf
// inclusive) and the sequence of moves taken.
func (root *Node) FindLeafAndMark(cfg *config.Config) (path []*Node, moves []board.Move) {
	current := root
	path = append(path, current)
	current.plays++
	for !current.IsLeaf() {
		current = current.selectChild(cfg)
		path = append(path, current)
		current.plays++
		moves = append(moves, current.move)
	}
	return path, moves
}

// addEvenPrior adds the same value to both priorPlays and priorWins, an
// optimistic prior that assumes the move wins whenever it is played.
func (n *Node) addEvenPrior(v int) {
	n.priorPlays += uint64(v)
	n.priorWins += float64(v)
}

// Expand turns a leaf into an internal node once it has accumulated
// enough playouts (progressive expansion): its children are every legal
// non-eye move on b for the side to move there, plus an explicit Pass,
// each seeded with priors. If the position is already game-over, the
// leaf is marked terminal instead and never gains children. It returns
// the number of nodes added to the tree by this call, the nodesAdded
// value threaded back through the coordinator/worker protocol.
func (n *Node) Expand(b *board.Board, cfg *config.Config, priors *Priors) uint64 {
	if b.IsGameOver() {
		n.MarkTerminal(b.Winner() == n.Color())
		return 0
	}
	if !n.IsLeaf() || n.plays < uint64(cfg.Tree.ExpandAfter) {
		return 0
	}
	toMove := b.NextPlayer()
	moves := b.LegalMovesWithoutEyes(toMove)
	children := make([]*Node, 0, len(moves))
	for _, m := range moves {
		pp, pw := priors.For(b, m)
		children = append(children, newLeaf(m, pp, pw))
	}
	ApplyLadderPriors(children, b, cfg.Priors)
	n.children = children
	added := uint64(len(n.children))
	n.descendants += added
	return added
}

// RecordOnPath folds one finished playout's result into every node on
// path: a win is credited to a node whose color matches the winner, and
// an AMAF credit is given to each child whose move coordinate appears in
// the AMAF map with that child's color (i.e. the color to move one ply
// below the node). nodesAdded (the count returned by the leaf's Expand
// call) is added to every ancestor's descendant count; the leaf itself
// already carries that count from Expand, so it is excluded here.
func RecordOnPath(path []*Node, nodesAdded uint64, winner board.Color, scoreAdjusted float64, scoreWeight float64, amaf map[board.Coord]board.Color) {
	winValue := scoreWeight*scoreAdjusted + (1 - scoreWeight)
	for i, n := range path {
		if i < len(path)-1 {
			n.descendants += nodesAdded
		}
		if n.Color() == winner {
			n.wins += winValue
		}
		for _, child := range n.children {
			if child.move.Kind != board.Play {
				continue
			}
			color, ok := amaf[child.move.Coord]
			if !ok || color != child.Color() {
				continue
			}
			child.amafPlays++
			if child.Color() == winner {
				child.amafWins += winValue
			}
		}
	}
}

// Best returns the child with the highest visit count, the move it
// represents, and its raw win ratio. Ties go to the first child seen
// (lowest index / insertion order), matching a first-seen-wins scan.
func (n *Node) Best() (*Node, board.Move, float64) {
	best := n.children[0]
	for _, c := range n.children[1:] {
		if c.plays > best.plays {
			best = c
		}
	}
	return best, best.move, best.winRatio()
}

// FindNewRoot locates the child matching opponentMove and promotes it to
// root for color, pruning illegal children and resetting its counters.
// If no matching child exists, or the match had been expanded and all
// of its children were pruned, it returns nil and ok=false. A match
// that was never expanded is returned childless with ok=true.
func (root *Node) FindNewRoot(opponentMove board.Move, color board.Color, b *board.Board) (newRoot *Node, ok bool) {
	var match *Node
	for _, c := range root.children {
		if c.move == opponentMove {
			match = c
			break
		}
	}
	if match == nil {
		return nil, false
	}
	wasExpanded := !match.IsLeaf()
	match.removeIllegalChildren(b)
	match.plays = 1
	match.wins = 1
	match.priorPlays = 0
	match.priorWins = 0
	match.amafPlays = 0
	match.amafWins = 0
	// The matched child's move belonged to the opponent; as the new
	// root it represents our own perspective, so its move is replaced
	// by a sentinel carrying the side now to move.
	match.move = board.Move{Kind: board.NoMove, Color: color}
	if wasExpanded && len(match.children) == 0 {
		return nil, false
	}
	return match, true
}

func (n *Node) removeIllegalChildren(b *board.Board) {
	if n.IsLeaf() {
		return
	}
	kept := n.children[:0]
	for _, c := range n.children {
		if c.move.Kind == board.Pass || b.IsLegal(c.move) == nil {
			kept = append(kept, c)
		}
	}
	n.children = kept
}
