package board

import "sync"

// cache holds the precomputed neighbour and diagonal lists for a given
// board size. It is immutable once built and shared (by pointer) across
// every clone of a Board, so cloning a board never re-derives geometry.
type cache struct {
	size       uint8
	neighbours [][]Coord
	diagonals  [][]Coord
}

var (
	cacheMu sync.Mutex
	caches  = map[uint8]*cache{}
)

// sharedCache returns the cache for size, building and memoizing it on
// first use. Safe for concurrent use by search workers.
func sharedCache(size uint8) *cache {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if c, ok := caches[size]; ok {
		return c
	}
	c := &cache{
		size:       size,
		neighbours: make([][]Coord, int(size)*int(size)),
		diagonals:  make([][]Coord, int(size)*int(size)),
	}
	for _, coord := range CoordsForSize(size) {
		idx := coord.Index(size)
		c.neighbours[idx] = coord.Neighbours(size)
		c.diagonals[idx] = coord.Diagonals(size)
	}
	caches[size] = c
	return c
}

func (c *cache) neighboursOf(coord Coord) []Coord {
	return c.neighbours[coord.Index(c.size)]
}

func (c *cache) diagonalsOf(coord Coord) []Coord {
	return c.diagonals[coord.Index(c.size)]
}
