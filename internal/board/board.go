package board

// point is one intersection: its color and, if occupied, the id of the
// chain it belongs to.
type point struct {
	color   Color
	chainID int
}

// Board is a full Go position: the point grid, the compact chain table,
// the vacant-point bag, the ko point, and the bookkeeping needed for
// legality and scoring.
type Board struct {
	size    uint8
	komi    float64
	ruleset Ruleset

	points []point
	chains []*Chain

	vacant      []Coord
	vacantIndex map[Coord]int

	ko *Coord

	previousPlayer    Color
	consecutivePasses int
	resignedBy        Color

	cache *cache
}

// New creates an empty board of the given size, komi and ruleset.
func New(size uint8, komi float64, ruleset Ruleset) *Board {
	n := int(size) * int(size)
	b := &Board{
		size:        size,
		komi:        komi,
		ruleset:     ruleset,
		points:      make([]point, n),
		chains:      make([]*Chain, 0, n/4),
		vacant:      make([]Coord, 0, n),
		vacantIndex: make(map[Coord]int, n),
		previousPlayer: Empty,
		resignedBy:  Empty,
		cache:       sharedCache(size),
	}
	for i, coord := range CoordsForSize(size) {
		b.vacant = append(b.vacant, coord)
		b.vacantIndex[coord] = i
	}
	return b
}

// Clone returns a deep copy of the board. The geometry cache is shared,
// not copied.
func (b *Board) Clone() *Board {
	nb := &Board{
		size:              b.size,
		komi:              b.komi,
		ruleset:           b.ruleset,
		points:            make([]point, len(b.points)),
		chains:            make([]*Chain, len(b.chains)),
		vacant:            make([]Coord, len(b.vacant)),
		vacantIndex:       make(map[Coord]int, len(b.vacantIndex)),
		previousPlayer:    b.previousPlayer,
		consecutivePasses: b.consecutivePasses,
		resignedBy:        b.resignedBy,
		cache:             b.cache,
	}
	copy(nb.points, b.points)
	copy(nb.vacant, b.vacant)
	for k, v := range b.vacantIndex {
		nb.vacantIndex[k] = v
	}
	for i, c := range b.chains {
		nc := &Chain{
			id:        c.id,
			color:     c.color,
			coords:    append([]Coord(nil), c.coords...),
			liberties: make(map[Coord]struct{}, len(c.liberties)),
		}
		for l := range c.liberties {
			nc.liberties[l] = struct{}{}
		}
		nb.chains[i] = nc
	}
	if b.ko != nil {
		k := *b.ko
		nb.ko = &k
	}
	return nb
}

func (b *Board) Size() uint8        { return b.size }
func (b *Board) Komi() float64      { return b.komi }

// SetKomi changes the score adjustment without touching the position;
// unlike board size or ruleset it affects no legality rule.
func (b *Board) SetKomi(komi float64) { b.komi = komi }
func (b *Board) Ruleset() Ruleset   { return b.ruleset }
func (b *Board) Chains() []*Chain   { return b.chains }
func (b *Board) Ko() (Coord, bool) {
	if b.ko == nil {
		return Coord{}, false
	}
	return *b.ko, true
}
func (b *Board) VacantPointCount() int { return len(b.vacant) }

// Vacant returns the empty points in no particular order. The returned
// slice is the board's own storage and must not be mutated.
func (b *Board) Vacant() []Coord { return b.vacant }
func (b *Board) ConsecutivePasses() int { return b.consecutivePasses }

// Color returns the color at coord.
func (b *Board) Color(coord Coord) Color {
	return b.points[coord.Index(b.size)].color
}

// Neighbours returns the up-to-4 on-board orthogonal neighbours of coord.
func (b *Board) Neighbours(coord Coord) []Coord {
	return b.cache.neighboursOf(coord)
}

// Diagonals returns the up-to-4 on-board diagonal neighbours of coord.
func (b *Board) Diagonals(coord Coord) []Coord {
	return b.cache.diagonalsOf(coord)
}

// NextPlayer returns the color to move, the opposite of whoever played
// last (Black if the board has never been played on).
func (b *Board) NextPlayer() Color {
	if b.previousPlayer == Empty {
		return Black
	}
	return b.previousPlayer.Opposite()
}

// IsGameOver reports whether the game has ended: by resignation, or by
// two consecutive passes.
func (b *Board) IsGameOver() bool {
	return b.resignedBy != Empty || b.consecutivePasses >= 2
}

// Winner returns the winning color. It is only meaningful once
// IsGameOver is true.
func (b *Board) Winner() Color {
	if b.resignedBy != Empty {
		return b.resignedBy.Opposite()
	}
	return b.Score().Winner()
}

// ChainAt returns the chain occupying coord, or nil if it is empty.
func (b *Board) ChainAt(coord Coord) *Chain {
	return b.chainAt(coord)
}

// chainAt returns the chain occupying coord, or nil if it is empty.
func (b *Board) chainAt(coord Coord) *Chain {
	p := b.points[coord.Index(b.size)]
	if p.color == Empty {
		return nil
	}
	return b.chains[p.chainID]
}

func (b *Board) setColor(coord Coord, c Color, chainID int) {
	idx := coord.Index(b.size)
	b.points[idx].color = c
	b.points[idx].chainID = chainID
}

func (b *Board) removeFromVacant(coord Coord) {
	idx, ok := b.vacantIndex[coord]
	if !ok {
		return
	}
	last := len(b.vacant) - 1
	moved := b.vacant[last]
	b.vacant[idx] = moved
	b.vacant = b.vacant[:last]
	b.vacantIndex[moved] = idx
	delete(b.vacantIndex, coord)
}

func (b *Board) addToVacant(coord Coord) {
	if _, ok := b.vacantIndex[coord]; ok {
		return
	}
	b.vacantIndex[coord] = len(b.vacant)
	b.vacant = append(b.vacant, coord)
}

// uniqueNeighbourChains returns the ids, sorted ascending, of the
// distinct chains of color c adjacent to coord.
func (b *Board) uniqueNeighbourChains(coord Coord, c Color) []int {
	seen := map[int]struct{}{}
	var ids []int
	for _, n := range b.cache.neighboursOf(coord) {
		ch := b.chainAt(n)
		if ch == nil || ch.color != c {
			continue
		}
		if _, ok := seen[ch.id]; !ok {
			seen[ch.id] = struct{}{}
			ids = append(ids, ch.id)
		}
	}
	// simple insertion sort; neighbour lists are at most 4 long.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
