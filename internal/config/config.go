// Package config loads table configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/holdem/internal/bot"
)

// Config represents the complete configuration
type Config struct {
	Game   GameSettings   `hcl:"game,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
	Server ServerSettings `hcl:"server,block"`
}

// GameSettings contains the table-level rules
type GameSettings struct {
	SmallBlind  int    `hcl:"small_blind,optional"`
	BigBlind    int    `hcl:"big_blind,optional"`
	StartStack  int    `hcl:"start_stack,optional"`
	MaxHands    int    `hcl:"max_hands,optional"`
	TurnTimeout string `hcl:"turn_timeout,optional"`
	Seed        int64  `hcl:"seed,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// BotConfig defines one bot seat
type BotConfig struct {
	Name  string `hcl:"name,label"`
	Kind  string `hcl:"kind"`
	Stack int    `hcl:"stack,optional"`
}

// ServerSettings contains the websocket server configuration
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Game: GameSettings{
			SmallBlind:  10,
			BigBlind:    20,
			StartStack:  1000,
			TurnTimeout: "30s",
			LogLevel:    "info",
		},
		Bots: []BotConfig{
			{Name: "caller-1", Kind: "caller"},
			{Name: "random-1", Kind: "random"},
		},
		Server: ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults rather than an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Game.SmallBlind == 0 {
		c.Game.SmallBlind = def.Game.SmallBlind
	}
	if c.Game.BigBlind == 0 {
		c.Game.BigBlind = def.Game.BigBlind
	}
	if c.Game.StartStack == 0 {
		c.Game.StartStack = def.Game.StartStack
	}
	if c.Game.TurnTimeout == "" {
		c.Game.TurnTimeout = def.Game.TurnTimeout
	}
	if c.Game.LogLevel == "" {
		c.Game.LogLevel = def.Game.LogLevel
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	for i := range c.Bots {
		if c.Bots[i].Stack == 0 {
			c.Bots[i].Stack = c.Game.StartStack
		}
	}
}

// TurnTimeout parses the configured per-turn deadline
func (c *Config) TurnTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Game.TurnTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid turn_timeout %q: %w", c.Game.TurnTimeout, err)
	}
	return d, nil
}

// Validate checks the configuration for values the engine would reject
func (c *Config) Validate() error {
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Game.SmallBlind)
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind %d must exceed small blind %d", c.Game.BigBlind, c.Game.SmallBlind)
	}
	if c.Game.StartStack < c.Game.BigBlind {
		return fmt.Errorf("start stack %d cannot cover the big blind %d", c.Game.StartStack, c.Game.BigBlind)
	}
	if _, err := c.TurnTimeout(); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	seen := map[string]bool{}
	for _, b := range c.Bots {
		if !slices.Contains(bot.Kinds(), b.Kind) {
			return fmt.Errorf("bot %s: unknown kind %q (have %v)", b.Name, b.Kind, bot.Kinds())
		}
		if b.Stack <= 0 {
			return fmt.Errorf("bot %s: stack must be positive, got %d", b.Name, b.Stack)
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate bot name %q", b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}
