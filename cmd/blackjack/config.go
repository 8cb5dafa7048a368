package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/blackjack/internal/config"
)

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a config file with the defaults"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

type ConfigInitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	err := config.DefaultConfig().Save(g.ConfigFile, c.Force)
	if errors.Is(err, config.ErrExists) {
		return fmt.Errorf("%s already exists, use --force to overwrite", g.ConfigFile)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", g.ConfigFile, err)
	}
	fmt.Printf("Wrote %s\n", g.ConfigFile)
	return nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", g.ConfigFile, err)
	}

	timings, err := cfg.Timings()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", g.ConfigFile)
	fmt.Printf("# resolved delays: deal %s, peek %s, dealer %s, settle %s, reset %s\n\n",
		timings.DealDelay, timings.PeekDelay, timings.DealerDelay, timings.SettleDelay, timings.ResetDelay)

	_, err = cfg.WriteTo(os.Stdout)
	return err
}
