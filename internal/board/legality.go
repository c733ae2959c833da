package board

// IsLegal checks whether m may be played, without mutating the board.
// Checks run in this order, first failure wins: game-over, same-player-
// twice, pass/resign (always legal), off-board, occupied, ko, suicide.
func (b *Board) IsLegal(m Move) error {
	if b.IsGameOver() && !b.ruleset.GameOverPlayAllowed() {
		return GameAlreadyOver
	}
	if m.Kind != NoMove {
		if b.previousPlayer == m.Color && b.previousPlayer != Empty && !b.ruleset.SamePlayerAllowed() {
			return SamePlayerPlayedTwice
		}
	}
	switch m.Kind {
	case Pass, Resign:
		return nil
	case NoMove:
		return nil
	}

	coord := m.Coord
	if !coord.IsInside(b.size) {
		return PlayOutOfBoard
	}
	if b.Color(coord) != Empty {
		return IntersectionNotEmpty
	}
	if b.ko != nil && *b.ko == coord {
		for _, n := range b.cache.neighboursOf(coord) {
			ch := b.chainAt(n)
			if ch != nil && ch.color == m.Color.Opposite() && ch.Size() == 1 && ch.LibertyCount() == 1 {
				return Ko
			}
		}
	}
	if !b.ruleset.SuicideAllowed() && b.isSuicide(m.Color, coord) {
		return SuicidePlay
	}
	return nil
}

// isSuicide reports whether playing color at coord would immediately
// remove the placed stone's own chain with no captures: every neighbour
// is occupied, every enemy neighbour chain has more than one liberty,
// and every friendly neighbour chain has at most one liberty.
func (b *Board) isSuicide(color Color, coord Coord) bool {
	neighbours := b.cache.neighboursOf(coord)
	for _, n := range neighbours {
		if b.Color(n) == Empty {
			return false
		}
	}
	for _, id := range b.uniqueNeighbourChains(coord, color.Opposite()) {
		if b.chains[id].LibertyCount() == 1 {
			return false
		}
	}
	for _, id := range b.uniqueNeighbourChains(coord, color) {
		if b.chains[id].LibertyCount() > 1 {
			return false
		}
	}
	return true
}

// Play validates m and, if legal, applies it.
func (b *Board) Play(m Move) error {
	if err := b.IsLegal(m); err != nil {
		return err
	}
	b.PlayLegalMove(m)
	return nil
}

// LegalMovesWithoutEyes returns every legal Play move on the board that
// does not fill the mover's own eye, plus a Pass.
func (b *Board) LegalMovesWithoutEyes(color Color) []Move {
	moves := make([]Move, 0, len(b.vacant)+1)
	for _, coord := range b.vacant {
		if b.IsEye(coord, color) {
			continue
		}
		m := NewPlay(color, coord)
		if b.IsLegal(m) == nil {
			moves = append(moves, m)
		}
	}
	moves = append(moves, NewPass(color))
	return moves
}

// LegalMovesWithoutSuperkoCheck returns every legal Play and Pass move,
// without checking positional superko (the caller performs that check
// by playing on a clone and comparing board hashes).
func (b *Board) LegalMovesWithoutSuperkoCheck(color Color) []Move {
	moves := make([]Move, 0, len(b.vacant)+1)
	for _, coord := range b.vacant {
		m := NewPlay(color, coord)
		if b.IsLegal(m) == nil {
			moves = append(moves, m)
		}
	}
	moves = append(moves, NewPass(color))
	return moves
}
