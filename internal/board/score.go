package board

import (
	"fmt"
	"math"
)

// Score is a computed Tromp-Taylor area score: stones plus enclosed
// territory for each color, komi for White, and the per-point owner
// used by ownership statistics and the GTP status-list commands.
type Score struct {
	Size           uint8
	Komi           float64
	BlackStones    int
	WhiteStones    int
	BlackTerritory int
	WhiteTerritory int
	Owner          map[Coord]Color
}

// Score computes the area score of the current position. A territory
// region is a maximal empty connected area; it counts for neither color
// (dame) if it borders both, or borders neither.
func (b *Board) Score() Score {
	s := Score{
		Size:  b.size,
		Komi:  b.komi,
		Owner: make(map[Coord]Color, int(b.size)*int(b.size)),
	}
	for _, coord := range CoordsForSize(b.size) {
		switch b.Color(coord) {
		case Black:
			s.BlackStones++
			s.Owner[coord] = Black
		case White:
			s.WhiteStones++
			s.Owner[coord] = White
		}
	}
	for _, region := range b.territoryRegions() {
		_, blackBorders := region.borders[Black]
		_, whiteBorders := region.borders[White]
		var owner Color
		switch {
		case blackBorders && !whiteBorders:
			owner = Black
			s.BlackTerritory += len(region.coords)
		case whiteBorders && !blackBorders:
			owner = White
			s.WhiteTerritory += len(region.coords)
		default:
			owner = Empty
		}
		for _, c := range region.coords {
			s.Owner[c] = owner
		}
	}
	return s
}

// BlackScore is the black area score (stones + territory, no komi).
func (s Score) BlackScore() float64 {
	return float64(s.BlackStones + s.BlackTerritory)
}

// WhiteScore is the white area score (stones + territory + komi).
func (s Score) WhiteScore() float64 {
	return float64(s.WhiteStones+s.WhiteTerritory) + s.Komi
}

// Winner returns the color with the higher score.
func (s Score) Winner() Color {
	if s.BlackScore() > s.WhiteScore() {
		return Black
	}
	return White
}

// Margin is the absolute point difference between the two scores.
func (s Score) Margin() float64 {
	d := s.BlackScore() - s.WhiteScore()
	if d < 0 {
		d = -d
	}
	return d
}

// Adjusted folds the margin into a bounded, monotone [0,1) confidence
// value used to scale a tree node's weighted win credit: a bare win by
// half a point and a blowout both count as a win, but the blowout counts
// for more when score_weight>0.
func (s Score) Adjusted() float64 {
	area := float64(s.Size) * float64(s.Size)
	if area == 0 {
		return 1
	}
	return math.Tanh(4 * s.Margin() / area)
}

// String renders the score the way final_score does, e.g. "B+6.5" or
// "W+22.5", or "0" for an exact draw.
func (s Score) String() string {
	margin := s.Margin()
	if margin == 0 {
		return "0"
	}
	if s.Winner() == Black {
		return fmt.Sprintf("B+%s", trimFloat(margin))
	}
	return fmt.Sprintf("W+%s", trimFloat(margin))
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.1f", f)
}
