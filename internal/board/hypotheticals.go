package board

// LibertyCount returns the number of empty 4-neighbours of coord. It is
// used as a hypothetical query, not as a chain's liberty count.
func (b *Board) LibertyCount(coord Coord) int {
	n := 0
	for _, c := range b.cache.neighboursOf(coord) {
		if b.Color(c) == Empty {
			n++
		}
	}
	return n
}

// RemovesEnemyNeighbouringStones returns the number of distinct enemy
// neighbour chains of coord that are in atari (would be captured by
// playing color at coord).
func (b *Board) RemovesEnemyNeighbouringStones(color Color, coord Coord) int {
	n := 0
	for _, id := range b.uniqueNeighbourChains(coord, color.Opposite()) {
		if b.chains[id].LibertyCount() == 1 {
			n++
		}
	}
	return n
}

// NewChainLibertiesGreaterThan reports whether the chain that would
// result from playing color at coord has strictly more than k liberties,
// without mutating the board. It unions the liberties of adjacent
// friendly chains (minus coord) with coord's empty neighbours and
// short-circuits once the union exceeds k.
func (b *Board) NewChainLibertiesGreaterThan(color Color, coord Coord, k int) bool {
	seen := map[Coord]struct{}{}
	add := func(c Coord) bool {
		if c == coord {
			return false
		}
		if _, ok := seen[c]; ok {
			return false
		}
		seen[c] = struct{}{}
		return true
	}
	count := 0
	for _, n := range b.cache.neighboursOf(coord) {
		if b.Color(n) == Empty && add(n) {
			count++
			if count > k {
				return true
			}
		}
	}
	for _, id := range b.uniqueNeighbourChains(coord, color) {
		for l := range b.chains[id].liberties {
			if add(l) {
				count++
				if count > k {
					return true
				}
			}
		}
	}
	return count > k
}

// NewChainLengthLessThan reports whether the chain resulting from
// playing color at coord would have fewer than k stones.
func (b *Board) NewChainLengthLessThan(color Color, coord Coord, k int) bool {
	count := 1
	for _, id := range b.uniqueNeighbourChains(coord, color) {
		count += b.chains[id].Size()
		if count >= k {
			return false
		}
	}
	return count < k
}

// IsNotSelfAtari reports whether playing m does not leave the mover's
// own new/merged chain in atari: true if coord has at least two empty
// neighbours, or the move captures at least two enemy groups, or it has
// one empty neighbour and captures at least one group, or the resulting
// chain would have at least two liberties.
func (b *Board) IsNotSelfAtari(m Move) bool {
	if m.Kind != Play {
		return true
	}
	coord := m.Coord
	color := m.Color
	empties := b.LibertyCount(coord)
	if empties >= 2 {
		return true
	}
	captures := b.RemovesEnemyNeighbouringStones(color, coord)
	if captures >= 2 {
		return true
	}
	if empties == 1 && captures >= 1 {
		return true
	}
	return b.NewChainLibertiesGreaterThan(color, coord, 1)
}
