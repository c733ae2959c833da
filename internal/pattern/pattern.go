// Package pattern implements a small, fixed library of 3x3 local shape
// patterns used to bias playout move choice and node priors toward
// locally plausible moves (hane, cuts, edge moves), the way a
// traditional Go-playing program's pattern table does. It is
// deliberately small: this is a move-ordering heuristic, not a
// knowledge base.
package pattern

import "github.com/hafner-go/goigo/internal/board"

// cell is the required content of one of the eight points around a
// pattern's center, relative to the color to move.
type cell int

const (
	any cell = iota
	own
	enemy
	empty
	edge // off the board
)

// The eight neighbours are read clockwise from north:
// N, NE, E, SE, S, SW, W, NW.
type shape [8]cell

// Pattern is one named 3x3 shape. A pattern matches a candidate point if
// some rotation/reflection of its shape matches the board around that
// point.
type Pattern struct {
	Name   string
	shapes []shape
}

// Matcher holds the pattern library and matches it against a board.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher builds the default pattern library: a handful of shapes
// that show up constantly in amateur play (hane at the head of two
// stones, the simple cut, edge contact plays) and are cheap enough to
// test on every candidate move in a playout.
func NewMatcher() *Matcher {
	lib := []Pattern{
		{Name: "hane", shapes: rotations(shape{enemy, enemy, any, empty, any, any, own, any})},
		{Name: "cut1", shapes: rotations(shape{own, enemy, own, enemy, any, any, any, any})},
		{Name: "edge", shapes: rotations(shape{edge, edge, edge, own, any, any, any, any})},
		{Name: "tiger-mouth", shapes: rotations(shape{own, empty, own, any, any, any, enemy, any})},
	}
	return &Matcher{patterns: lib}
}

// rotations generates the four 90-degree rotations of s and their
// mirror images, deduplicated.
func rotations(s shape) []shape {
	seen := map[shape]struct{}{}
	var out []shape
	cur := s
	for i := 0; i < 4; i++ {
		cur = rotate(cur)
		if _, ok := seen[cur]; !ok {
			seen[cur] = struct{}{}
			out = append(out, cur)
		}
		mirrored := mirror(cur)
		if _, ok := seen[mirrored]; !ok {
			seen[mirrored] = struct{}{}
			out = append(out, mirrored)
		}
	}
	return out
}

func rotate(s shape) shape {
	var r shape
	for i := 0; i < 8; i++ {
		r[i] = s[(i+6)%8]
	}
	return r
}

func mirror(s shape) shape {
	// reflect across the N-S axis: swap E/W sides.
	return shape{s[0], s[7], s[6], s[5], s[4], s[3], s[2], s[1]}
}

// neighbourShape reads the actual board content around coord for color
// to move (own/enemy relative to color), in the same clockwise order.
func neighbourShape(b *board.Board, coord board.Coord, color board.Color) shape {
	size := b.Size()
	offsets := [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	var s shape
	for i, off := range offsets {
		col := int(coord.Col) + off[0]
		row := int(coord.Row) + off[1]
		if col < 1 || row < 1 || col > int(size) || row > int(size) {
			s[i] = edge
			continue
		}
		c := board.NewCoord(uint8(col), uint8(row))
		switch b.Color(c) {
		case board.Empty:
			s[i] = empty
		case color:
			s[i] = own
		default:
			s[i] = enemy
		}
	}
	return s
}

func matches(want, have shape) bool {
	for i, w := range want {
		if w == any {
			continue
		}
		if w != have[i] {
			return false
		}
	}
	return true
}

// Match reports whether any pattern in the library matches the board
// around coord for color to move.
func (m *Matcher) Match(b *board.Board, coord board.Coord, color board.Color) bool {
	have := neighbourShape(b, coord, color)
	for _, p := range m.patterns {
		for _, s := range p.shapes {
			if matches(s, have) {
				return true
			}
		}
	}
	return false
}

// Count returns the number of distinct named patterns in the library
// that match the board around coord for color to move (a pattern with
// several rotations counts once), used to weight node priors by how
// many local shapes a candidate move completes.
func (m *Matcher) Count(b *board.Board, coord board.Coord, color board.Color) int {
	have := neighbourShape(b, coord, color)
	n := 0
	for _, p := range m.patterns {
		for _, s := range p.shapes {
			if matches(s, have) {
				n++
				break
			}
		}
	}
	return n
}
