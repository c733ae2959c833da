package board

// PlayLegalMove applies m without validating legality; callers must only
// call it with moves already known legal (normally via IsLegal, or
// because the caller generated m from a legal-move list).
func (b *Board) PlayLegalMove(m Move) {
	b.previousPlayer = m.Color

	switch m.Kind {
	case Pass:
		b.consecutivePasses++
		return
	case Resign:
		b.resignedBy = m.Color
		return
	case NoMove:
		return
	}
	b.consecutivePasses = 0

	coord := m.Coord
	color := m.Color

	b.removeFromVacant(coord)
	target := b.mergeOrCreateChain(coord, color)

	enemyIDs := b.uniqueNeighbourChains(coord, color.Opposite())
	for _, id := range enemyIDs {
		b.chains[id].removeLiberty(coord)
	}

	var capturedIDs []int
	for _, id := range enemyIDs {
		if b.chains[id].LibertyCount() == 0 {
			capturedIDs = append(capturedIDs, id)
		}
	}

	var allCaptured []Coord
	for i := len(capturedIDs) - 1; i >= 0; i-- {
		id := capturedIDs[i]
		ch := b.chains[id]
		stones := append([]Coord(nil), ch.coords...)
		allCaptured = append(allCaptured, stones...)
		for _, s := range stones {
			b.setColor(s, Empty, -1)
			b.addToVacant(s)
		}
		b.removeChainAt(id)
	}

	for _, s := range allCaptured {
		for _, n := range b.cache.neighboursOf(s) {
			if ch := b.chainAt(n); ch != nil {
				ch.addLiberty(s)
			}
		}
	}

	var friendRemoved []Coord
	if target.IsCaptured() {
		friendRemoved = append([]Coord(nil), target.coords...)
		for _, s := range friendRemoved {
			b.setColor(s, Empty, -1)
			b.addToVacant(s)
		}
		b.removeChainAt(target.id)
		for _, s := range friendRemoved {
			for _, n := range b.cache.neighboursOf(s) {
				if ch := b.chainAt(n); ch != nil {
					ch.addLiberty(s)
				}
			}
		}
	}

	if len(allCaptured) == 1 && len(friendRemoved) == 0 {
		k := allCaptured[0]
		b.ko = &k
	} else {
		b.ko = nil
	}
}

// mergeOrCreateChain places color at coord, merging it with any
// adjacent friendly chains into the lowest-numbered one (the others are
// folded in and their chain-table slots removed), or allocating a fresh
// chain if coord has no friendly neighbour. The returned chain's
// liberties include every empty neighbour of coord and exclude coord
// itself.
func (b *Board) mergeOrCreateChain(coord Coord, color Color) *Chain {
	friendlyIDs := b.uniqueNeighbourChains(coord, color)

	var target *Chain
	if len(friendlyIDs) == 0 {
		target = newChain(len(b.chains), color)
		b.chains = append(b.chains, target)
	} else {
		target = b.chains[friendlyIDs[0]]
		for i := len(friendlyIDs) - 1; i >= 1; i-- {
			other := b.chains[friendlyIDs[i]]
			for _, c := range other.coords {
				target.addCoord(c)
				b.setColor(c, color, target.id)
			}
			for l := range other.liberties {
				target.addLiberty(l)
			}
			b.removeChainAt(other.id)
		}
	}

	target.addCoord(coord)
	b.setColor(coord, color, target.id)
	target.removeLiberty(coord)
	for _, n := range b.cache.neighboursOf(coord) {
		if b.Color(n) == Empty {
			target.addLiberty(n)
		}
	}
	return target
}

// removeChainAt deletes the chain at id from the chain table and
// renumbers every chain above it (and the chainID of every point
// belonging to those chains), preserving the invariant that
// chains[i].id == i.
func (b *Board) removeChainAt(id int) {
	b.chains = append(b.chains[:id], b.chains[id+1:]...)
	for i := id; i < len(b.chains); i++ {
		b.chains[i].id = i
		for _, c := range b.chains[i].coords {
			b.setColor(c, b.chains[i].color, i)
		}
	}
}
