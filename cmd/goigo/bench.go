package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hafner-go/goigo/internal/board"
)

// newBenchCmd builds the self-play harness: the engine plays both sides
// of one or more games on a small board with a short fixed clock,
// printing each final position and result. Useful for profiling the
// search and for a quick smoke check that a build actually plays.
func newBenchCmd(opts *options) *cobra.Command {
	var (
		games   int
		moveCap int
		perMove time.Duration
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "play the engine against itself",
		RunE: func(cmd *cobra.Command, args []string) error {
			for game := 0; game < games; game++ {
				c, log, err := newController(*opts)
				if err != nil {
					return err
				}
				// a flat clock: perMove per remaining move, roughly.
				c.TimeSettings(time.Duration(moveCap)*perMove, 0, 0)

				start := time.Now()
				color := board.Black
				moves := 0
				for ; moves < moveCap && !c.Board().IsGameOver(); moves++ {
					c.Genmove(color, true)
					color = color.Opposite()
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.ShowBoard())
				fmt.Fprintf(cmd.OutOrStdout(), "result: %s\n", c.FinalScore())
				log.Info().
					Int("game", game+1).
					Int("moves", moves).
					Dur("elapsed", time.Since(start)).
					Msg("bench game finished")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 1, "number of games to play")
	cmd.Flags().IntVar(&moveCap, "moves", 80, "maximum moves per game")
	cmd.Flags().DurationVar(&perMove, "per-move", 500*time.Millisecond, "approximate time per move")
	return cmd
}
