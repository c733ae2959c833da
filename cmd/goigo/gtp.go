package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hafner-go/goigo/internal/board"
	"github.com/hafner-go/goigo/internal/config"
	"github.com/hafner-go/goigo/internal/engine"
	"github.com/hafner-go/goigo/internal/gtp"
)

const (
	engineName    = "goigo"
	engineVersion = "0.1.0"
)

type options struct {
	configPath string
	ruleset    string
	threads    int
	size       int
	komi       float64
	verbose    bool
}

// loadConfig resolves the engine configuration from the compiled-in
// defaults, an optional TOML file, and CLI flag overrides, in that
// order.
func loadConfig(opts options) (*config.Config, error) {
	doc := ""
	if opts.configPath != "" {
		data, err := os.ReadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		doc = string(data)
	}
	cfg, err := config.Load(doc)
	if err != nil {
		return nil, err
	}
	if opts.threads > 0 {
		cfg.Threads = opts.threads
	}
	return cfg, nil
}

// newLogger builds the engine logger. GTP owns stdout, so logs always
// go to stderr; without --verbose only warnings and errors surface.
func newLogger(opts options) zerolog.Logger {
	level := zerolog.WarnLevel
	if opts.verbose {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func newController(opts options) (*engine.Controller, zerolog.Logger, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	log := newLogger(opts)

	ruleset, err := board.ParseRuleset(opts.ruleset)
	if err != nil {
		return nil, log, err
	}

	c := engine.New(cfg, log)
	c.SetRuleset(ruleset)
	if !c.SetBoardSize(opts.size) {
		return nil, log, fmt.Errorf("unacceptable board size %d", opts.size)
	}
	c.SetKomi(opts.komi)
	log.Info().
		Int("threads", cfg.Threads).
		Int("size", opts.size).
		Float64("komi", opts.komi).
		Str("ruleset", ruleset.String()).
		Msg("engine ready")
	return c, log, nil
}

func runGTP(opts options) error {
	c, _, err := newController(opts)
	if err != nil {
		return err
	}
	return gtp.New(c, engineName, engineVersion).Run(os.Stdin, os.Stdout)
}
