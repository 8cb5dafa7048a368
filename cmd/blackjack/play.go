package main

import (
	"fmt"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

type PlayCmd struct {
	Decks    int    `help:"Decks in the shoe (overrides config)"`
	Pace     string `help:"Table pace: slow, medium, fast or instant (overrides config)"`
	AutoDeal bool   `help:"Deal the next round automatically"`
	Dev      bool   `help:"Open the developer panel"`
	Seed     int64  `hidden:"" help:"Shuffle seed for a reproducible shoe"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Pace != "" {
		cfg.Timing.Pace = c.Pace
	}
	if c.AutoDeal {
		cfg.Table.AutoDeal = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", g.ConfigFile, err)
	}

	logger, closeLog, err := newFileLogger(cfg.Log.File, cfg.LogLevel(), "blackjack")
	if err != nil {
		return err
	}
	defer closeLog()

	engineCfg, err := cfg.Engine()
	if err != nil {
		return err
	}
	logger.Info("Opening table", "decks", engineCfg.Decks, "pace", cfg.Timing.Pace, "auto_deal", engineCfg.AutoDeal)

	opts := []blackjack.Option{blackjack.WithLogger(logger)}
	if c.Seed != 0 {
		logger.Warn("Using a seeded shoe", "seed", c.Seed)
		opts = append(opts, blackjack.WithRand(randutil.New(c.Seed)))
	}
	engine, err := blackjack.New(engineCfg, opts...)
	if err != nil {
		return err
	}

	return tui.Run(engine, tui.Options{
		Logger:      logger,
		HideHistory: cfg.UI.HideHistory,
		Dev:         c.Dev,
	})
}
