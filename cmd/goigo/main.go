// Command goigo is a GTP-speaking Go engine using parallel Monte Carlo
// tree search. Run with no arguments it reads GTP commands from stdin
// and writes responses to stdout until quit; the bench subcommand plays
// the engine against itself for profiling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "goigo",
		Short:         "a GTP-speaking Go engine using parallel Monte Carlo tree search",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGTP(opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML configuration file")
	cmd.PersistentFlags().StringVar(&opts.ruleset, "ruleset", "tromp-taylor", "ruleset: tromp-taylor, cgos, chinese or minimal")
	cmd.PersistentFlags().IntVar(&opts.threads, "threads", 0, "number of search threads (0 = all logical CPUs)")
	cmd.PersistentFlags().IntVar(&opts.size, "size", 9, "initial board size (controllers usually override it via boardsize)")
	cmd.PersistentFlags().Float64Var(&opts.komi, "komi", 6.5, "initial komi")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log search statistics to stderr")

	cmd.AddCommand(newBenchCmd(&opts))
	return cmd
}
