// Package reader implements tactical ladder reading: capture, escape
// and atari-rescue, each evaluated by trial play on cloned boards. It
// is consulted by the move-prior heuristics and, optionally, by the
// playout policy.
package reader

import "github.com/hafner-go/goigo/internal/board"

// CaptureLadder reports whether the attacker (the opposite color of
// chain) can capture chain in a ladder, and if so returns the capturing
// move. A chain in atari (one liberty) is captured directly; a chain
// with two liberties is captured only if every escape attempt still
// leaves it capturable.
func CaptureLadder(b *board.Board, chain *board.Chain) (board.Move, bool) {
	attacker := chain.Color().Opposite()
	switch chain.LibertyCount() {
	case 1:
		lib := soleLiberty(chain)
		return board.NewPlay(attacker, lib), true
	case 2:
		for _, lib := range liberties(chain) {
			clone := b.Clone()
			clone.PlayLegalMove(board.NewPlay(attacker, lib))
			target := chainAfterMove(clone, chain)
			if target == nil {
				// the attacking move captured the group outright.
				return board.NewPlay(attacker, lib), true
			}
			if len(FixAtari(clone, target)) == 0 {
				return board.NewPlay(attacker, lib), true
			}
		}
		return board.Move{}, false
	default:
		return board.Move{}, false
	}
}

// FixAtari returns the set of moves, from the defender's side, that
// rescue chain out of atari (one liberty): capturing an attacking group
// that is itself in atari, or extending to the liberty when that leaves
// at least 3 liberties, or exactly 2 liberties that cannot themselves be
// captured in a ladder.
func FixAtari(b *board.Board, chain *board.Chain) []board.Move {
	if chain.LibertyCount() != 1 {
		return nil
	}
	defender := chain.Color()
	attacker := defender.Opposite()

	var rescues []board.Move
	seen := map[board.Coord]struct{}{}
	add := func(m board.Move) {
		if _, ok := seen[m.Coord]; ok {
			return
		}
		seen[m.Coord] = struct{}{}
		rescues = append(rescues, m)
	}

	for _, stone := range chain.Coords() {
		for _, n := range b.Neighbours(stone) {
			enemy := b.ChainAt(n)
			if enemy == nil || enemy.Color() != attacker {
				continue
			}
			if enemy.LibertyCount() == 1 {
				add(board.NewPlay(defender, soleLiberty(enemy)))
			}
		}
	}

	lib := soleLiberty(chain)
	clone := b.Clone()
	clone.PlayLegalMove(board.NewPlay(defender, lib))
	extended := chainAfterMove(clone, chain)
	if extended != nil {
		switch {
		case extended.LibertyCount() >= 3:
			add(board.NewPlay(defender, lib))
		case extended.LibertyCount() == 2:
			if _, captured := CaptureLadder(clone, extended); !captured {
				add(board.NewPlay(defender, lib))
			}
		}
	}
	return rescues
}

// EscapeLadder reports whether a chain with two liberties has an escape
// move: a liberty which, once played, leaves the chain with at least two
// liberties and not capturable by CaptureLadder.
func EscapeLadder(b *board.Board, chain *board.Chain) (board.Move, bool) {
	if chain.LibertyCount() != 2 {
		return board.Move{}, false
	}
	defender := chain.Color()
	for _, lib := range liberties(chain) {
		clone := b.Clone()
		clone.PlayLegalMove(board.NewPlay(defender, lib))
		extended := chainAfterMove(clone, chain)
		if extended == nil {
			continue
		}
		if extended.LibertyCount() >= 2 {
			if _, captured := CaptureLadder(clone, extended); !captured {
				return board.NewPlay(defender, lib), true
			}
		}
	}
	return board.Move{}, false
}

func soleLiberty(c *board.Chain) board.Coord {
	libs := c.Liberties()
	if len(libs) == 0 {
		panic("chain has no liberties")
	}
	return libs[0]
}

func liberties(c *board.Chain) []board.Coord {
	return c.Liberties()
}

// chainAfterMove relocates the chain that used to occupy one of before's
// stones, after a move has been played on a clone (ids may have
// shifted, and the chain may have merged with a neighbour or vanished).
func chainAfterMove(after *board.Board, before *board.Chain) *board.Chain {
	for _, stone := range before.Coords() {
		if c := after.ChainAt(stone); c != nil {
			return c
		}
	}
	return nil
}
