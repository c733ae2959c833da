// Package sgf parses the small subset of SGF properties goigo needs to
// replay a game record: board size, komi, and the setup/move sequence.
// A single regex tokenizes the bracketed properties; AB/AW setup stones
// and B/W moves are folded into one replay sequence.
package sgf

import (
	"regexp"
	"strconv"

	"github.com/hafner-go/goigo/internal/board"
)

// Game is the result of parsing an SGF file: the board geometry the
// game was recorded at, and the full ordered sequence of stone
// placements (AB/AW setup stones and B/W moves alike, in file order).
type Game struct {
	Size  uint8
	Komi  float64
	Moves []board.Move
}

var propertyRe = regexp.MustCompile(`([A-Z]{1,2})?\[([^\]]*)\]`)

type property struct {
	name string
	val  string
}

func tokenize(sgf string) []property {
	var props []property
	prevName := ""
	for _, m := range propertyRe.FindAllStringSubmatch(sgf, -1) {
		name, val := m[1], m[2]
		if name == "" {
			name = prevName
		} else {
			prevName = name
		}
		props = append(props, property{name: name, val: val})
	}
	return props
}

func findValue(props []property, name string) (string, bool) {
	for _, p := range props {
		if p.name == name {
			return p.val, true
		}
	}
	return "", false
}

func isMoveProperty(name string) bool {
	switch name {
	case "AB", "AW", "B", "W":
		return true
	default:
		return false
	}
}

func colorFor(name string) board.Color {
	switch name {
	case "AB", "B":
		return board.Black
	case "AW", "W":
		return board.White
	default:
		return board.Empty
	}
}

// charToInt converts a single SGF coordinate letter ('a'-based) to a
// 1-based board index.
func charToInt(c byte) uint8 {
	return c - 'a' + 1
}

// coordFromValue converts an SGF point value to a board.Coord. SGF
// counts rows top to bottom; GTP (and this engine's board) counts
// bottom to top starting at 1, so the row is inverted against size.
func coordFromValue(val string, size uint8) board.Coord {
	col := charToInt(val[0])
	row := size - charToInt(val[1]) + 1
	return board.NewCoord(col, row)
}

// Parse reads an SGF game record and returns its board size, komi, and
// replay sequence. Unset SZ/KM default to 19 and 6.5.
func Parse(sgf string) (Game, error) {
	props := tokenize(sgf)

	size := uint8(19)
	if v, ok := findValue(props, "SZ"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			size = uint8(n)
		}
	}

	komi := 6.5
	if v, ok := findValue(props, "KM"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			komi = f
		}
	}

	g := Game{Size: size, Komi: komi}
	for _, p := range props {
		if !isMoveProperty(p.name) {
			continue
		}
		color := colorFor(p.name)
		if p.val == "" {
			g.Moves = append(g.Moves, board.NewPass(color))
			continue
		}
		g.Moves = append(g.Moves, board.NewPlay(color, coordFromValue(p.val, size)))
	}
	return g, nil
}
