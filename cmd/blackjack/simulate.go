package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pterm/pterm"
	"github.com/sanity-io/litter"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
)

type SimulateCmd struct {
	Rounds int    `default:"10000" help:"Number of rounds to play"`
	Tables int    `default:"4" help:"Tables to run in parallel"`
	Decks  int    `help:"Decks in the shoe (defaults to the config file)"`
	Policy string `default:"basic" enum:"dealer,basic,never-bust" help:"Player policy: dealer, basic or never-bust"`
	Seed   int64  `default:"0" help:"RNG seed (0 for random)"`
	Dump   bool   `help:"Dump the raw statistics after the report"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", g.ConfigFile, err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "simulate",
		Level:           cfg.LogLevel(),
	})

	sim, err := simulator.New(simulator.Config{
		Rounds: c.Rounds,
		Tables: c.Tables,
		Decks:  cfg.Table.Decks,
		Policy: c.Policy,
		Seed:   c.Seed,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d rounds on %d tables", c.Rounds, c.Tables))
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Played %d rounds in %s", stats.Rounds, time.Since(start).Round(time.Millisecond)))

	if err := printReport(stats, c.Policy, cfg.Table.Decks); err != nil {
		return err
	}
	if c.Dump {
		litter.Dump(stats)
	}
	return nil
}

func printReport(stats *statistics.Statistics, policy string, decks int) error {
	pterm.DefaultSection.Printfln("Results: %s policy, %d decks", policy, decks)

	pct := func(n int) string {
		if stats.Rounds == 0 {
			return "-"
		}
		return fmt.Sprintf("%.2f%%", float64(n)/float64(stats.Rounds)*100)
	}

	outcomes := pterm.TableData{{"Outcome", "Code", "Rounds", "Share"}}
	for _, o := range []blackjack.Outcome{blackjack.BlackjackWin, blackjack.PlayerWin, blackjack.DealerWin, blackjack.Bust} {
		outcomes = append(outcomes, []string{o.String(), o.Code(), fmt.Sprint(stats.Count(o)), pct(stats.Count(o))})
	}
	outcomes = append(outcomes, []string{"push", "-", fmt.Sprint(stats.Pushes), pct(stats.Pushes)})
	if err := pterm.DefaultTable.WithHasHeader().WithData(outcomes).Render(); err != nil {
		return err
	}

	low, high := stats.ConfidenceInterval95()
	summary := pterm.TableData{
		{"Metric", "Value"},
		{"Player wins", fmt.Sprintf("%d (%d blackjacks)", stats.PlayerWins, stats.PlayerBlackjacks)},
		{"Dealer wins", fmt.Sprintf("%d (%d blackjacks, %d player busts)", stats.DealerWins, stats.DealerBlackjacks, stats.PlayerBusts)},
		{"Dealer busts", fmt.Sprint(stats.DealerBusts)},
		{"Win rate (decided)", fmt.Sprintf("%.2f%%", stats.WinRate()*100)},
		{"Mean score", fmt.Sprintf("%+.4f ± %.4f", stats.Mean(), stats.StdError())},
		{"95% CI", fmt.Sprintf("[%+.4f, %+.4f]", low, high)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(summary).Render()
}
