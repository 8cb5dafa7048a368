package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// DefaultFilename is where the CLI looks for a config file
const DefaultFilename = "blackjack.hcl"

// Config represents the complete blackjack configuration
type Config struct {
	Table  *TableConfig  `hcl:"table,block"`
	Timing *TimingConfig `hcl:"timing,block"`
	Log    *LogConfig    `hcl:"log,block"`
	UI     *UIConfig     `hcl:"ui,block"`
}

// TableConfig holds the table rules
type TableConfig struct {
	Decks    int  `hcl:"decks,optional"`
	AutoDeal bool `hcl:"auto_deal,optional"`
}

// TimingConfig controls how long the table pauses between automatic
// transitions. Pace picks a preset; an explicit delay overrides it.
type TimingConfig struct {
	Pace        string `hcl:"pace,optional"`
	DealDelay   string `hcl:"deal_delay,optional"`
	PeekDelay   string `hcl:"peek_delay,optional"`
	DealerDelay string `hcl:"dealer_delay,optional"`
	SettleDelay string `hcl:"settle_delay,optional"`
	ResetDelay  string `hcl:"reset_delay,optional"`
}

// LogConfig controls the debug log file
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// UIConfig controls the terminal table
type UIConfig struct {
	HideHistory bool `hcl:"hide_history,optional"`
	NoColor     bool `hcl:"no_color,optional"`
}

// Pace presets scale the default table timings
const (
	PaceSlow    = "slow"
	PaceMedium  = "medium"
	PaceFast    = "fast"
	PaceInstant = "instant"
)

var paceFactors = map[string]float64{
	PaceSlow:    2,
	PaceMedium:  1,
	PaceFast:    0.5,
	PaceInstant: 0,
}

// Paces lists the presets from slowest to fastest
var Paces = []string{PaceSlow, PaceMedium, PaceFast, PaceInstant}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Table: &TableConfig{
			Decks: deck.DefaultDecks,
		},
		Timing: &TimingConfig{
			Pace: PaceMedium,
		},
		Log: &LogConfig{
			Level: "info",
			File:  "blackjack.log",
		},
		UI: &UIConfig{},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills every block and field the file left out
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Table == nil {
		c.Table = defaults.Table
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = defaults.Table.Decks
	}

	if c.Timing == nil {
		c.Timing = defaults.Timing
	}
	if c.Timing.Pace == "" {
		c.Timing.Pace = defaults.Timing.Pace
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	if c.UI == nil {
		c.UI = defaults.UI
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Decks < 1 {
		return fmt.Errorf("table: %w: %d", deck.ErrInvalidDecks, c.Table.Decks)
	}

	if _, ok := paceFactors[c.Timing.Pace]; !ok {
		return fmt.Errorf("timing: unknown pace %q", c.Timing.Pace)
	}
	if _, err := c.Timings(); err != nil {
		return err
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

// Timings resolves the pace preset and any explicit delays
func (c *Config) Timings() (blackjack.Timings, error) {
	t := blackjack.DefaultTimings().Scale(paceFactors[c.Timing.Pace])

	overrides := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"deal_delay", c.Timing.DealDelay, &t.DealDelay},
		{"peek_delay", c.Timing.PeekDelay, &t.PeekDelay},
		{"dealer_delay", c.Timing.DealerDelay, &t.DealerDelay},
		{"settle_delay", c.Timing.SettleDelay, &t.SettleDelay},
		{"reset_delay", c.Timing.ResetDelay, &t.ResetDelay},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		d, err := time.ParseDuration(o.value)
		if err != nil {
			return blackjack.Timings{}, fmt.Errorf("timing: %s: %w", o.name, err)
		}
		*o.dst = d
	}

	if err := t.Validate(); err != nil {
		return blackjack.Timings{}, fmt.Errorf("timing: %w", err)
	}
	return t, nil
}

// Engine returns the engine configuration described by c
func (c *Config) Engine() (blackjack.Config, error) {
	timings, err := c.Timings()
	if err != nil {
		return blackjack.Config{}, err
	}
	return blackjack.Config{
		Decks:    c.Table.Decks,
		AutoDeal: c.Table.AutoDeal,
		Timings:  timings,
	}, nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// WriteTo writes c as HCL. Unset delays are left out so the pace preset
// keeps applying.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	table := root.AppendNewBlock("table", nil).Body()
	table.SetAttributeValue("decks", cty.NumberIntVal(int64(c.Table.Decks)))
	table.SetAttributeValue("auto_deal", cty.BoolVal(c.Table.AutoDeal))
	root.AppendNewline()

	timing := root.AppendNewBlock("timing", nil).Body()
	timing.SetAttributeValue("pace", cty.StringVal(c.Timing.Pace))
	for _, attr := range []struct {
		name  string
		value string
	}{
		{"deal_delay", c.Timing.DealDelay},
		{"peek_delay", c.Timing.PeekDelay},
		{"dealer_delay", c.Timing.DealerDelay},
		{"settle_delay", c.Timing.SettleDelay},
		{"reset_delay", c.Timing.ResetDelay},
	} {
		if attr.value != "" {
			timing.SetAttributeValue(attr.name, cty.StringVal(attr.value))
		}
	}
	root.AppendNewline()

	logBlock := root.AppendNewBlock("log", nil).Body()
	logBlock.SetAttributeValue("level", cty.StringVal(c.Log.Level))
	logBlock.SetAttributeValue("file", cty.StringVal(c.Log.File))
	root.AppendNewline()

	ui := root.AppendNewBlock("ui", nil).Body()
	ui.SetAttributeValue("hide_history", cty.BoolVal(c.UI.HideHistory))
	ui.SetAttributeValue("no_color", cty.BoolVal(c.UI.NoColor))

	return f.WriteTo(w)
}
