package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand
type Globals struct {
	ConfigFile string `name:"config" short:"c" default:"blackjack.hcl" type:"path" help:"Path to the HCL config file"`
	Debug      bool   `help:"Enable debug logging"`
	NoColor    bool   `env:"NO_COLOR" help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Sit down at the table"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds headlessly with a fixed policy"`
	Config   ConfigCmd        `cmd:"" help:"Manage the config file"`
}

// loadConfig reads the config file and applies the global flags on top
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}
	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableColor()
	}
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-table blackjack in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
