package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/bot"
	"github.com/cardroom/holdem/internal/config"
	"github.com/cardroom/holdem/internal/console"
	"github.com/cardroom/holdem/internal/evaluator"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
	"github.com/cardroom/holdem/internal/server"
)

// version is overridden at build time via -ldflags
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Config  string           `short:"c" help:"Path to HCL config file" default:"holdem.hcl"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play at the table against the configured bots"`
	Simulate SimulateCmd `cmd:"" help:"Run a bots-only simulation"`
	Serve    ServeCmd    `cmd:"" help:"Host the table over websockets"`
}

type PlayCmd struct {
	Name string `help:"Your name at the table" default:"you"`
}

type SimulateCmd struct {
	Hands int `short:"n" help:"Stop after this many hands (0 plays to a champion)" default:"0"`
}

type ServeCmd struct {
	Seats int `help:"Number of remote seats to wait for" default:"1"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("A Texas Hold'em table with bots, a console, and remote play."),
		kong.Vars{"version": version})

	kctx.FatalIfErrorf(kctx.Run(&cli))
}

// setup loads configuration and builds the shared pieces every command needs
func setup(cli *CLI) (*config.Config, *log.Logger, *rand.Rand, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config %s: %w", cli.Config, err)
	}

	level, err := log.ParseLevel(cfg.Game.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config %s: %w", cli.Config, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return cfg, logger, randutil.New(seed), nil
}

// signalContext cancels on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func seatBots(table *game.Table, cfg *config.Config, rng *rand.Rand, logger *log.Logger) error {
	for _, bc := range cfg.Bots {
		agent, err := bot.New(bc.Kind, rng, logger)
		if err != nil {
			return err
		}
		if err := table.Seat(bc.Name, bc.Stack, agent); err != nil {
			return err
		}
	}
	return nil
}

// Run plays an interactive game on the terminal
func (c *PlayCmd) Run(cli *CLI) error {
	cfg, logger, rng, err := setup(cli)
	if err != nil {
		return err
	}
	if len(cfg.Bots) == 0 {
		return errors.New("playing alone is no fun: configure at least one bot")
	}

	timeout, err := cfg.TurnTimeout()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))

	display := console.NewDisplay(os.Stdout)
	table := game.NewTable(rng, cfg.Game.SmallBlind, cfg.Game.BigBlind, evaluator.New(), display, logger)

	human := console.NewPromptAgent(os.Stdin, os.Stdout, logger)
	hero := game.NewTimeoutAgent(human, timeout, quartz.NewReal(), logger)
	if err := table.Seat(c.Name, cfg.Game.StartStack, hero); err != nil {
		return err
	}
	if err := seatBots(table, cfg, rng, logger); err != nil {
		return err
	}

	for len(table.Players()) > 1 {
		if cfg.Game.MaxHands > 0 && table.HandsPlayed() >= cfg.Game.MaxHands {
			break
		}
		result, err := table.PlayHand(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				logger.Info("goodbye")
				return nil
			}
			return err
		}
		display.ShowResult(result)
	}

	if players := table.Players(); len(players) == 1 {
		fmt.Printf("\n%s wins it all with $%d after %d hands\n",
			players[0].Name, players[0].Stack, table.HandsPlayed())
	}
	return nil
}

// Run plays bots against each other
func (c *SimulateCmd) Run(cli *CLI) error {
	cfg, logger, rng, err := setup(cli)
	if err != nil {
		return err
	}
	if len(cfg.Bots) < 2 {
		return fmt.Errorf("simulation needs at least 2 bots, have %d", len(cfg.Bots))
	}

	ctx, cancel := signalContext()
	defer cancel()

	table := game.NewTable(rng, cfg.Game.SmallBlind, cfg.Game.BigBlind, evaluator.New(), nil, logger)
	if err := seatBots(table, cfg, rng, logger); err != nil {
		return err
	}

	maxHands := c.Hands
	if maxHands == 0 {
		maxHands = cfg.Game.MaxHands
	}

	start := time.Now()
	champion, err := table.Run(ctx, maxHands)
	if err != nil {
		return err
	}

	logger.Info("simulation complete",
		"hands", table.HandsPlayed(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	if champion != nil {
		fmt.Printf("%s wins with $%d after %d hands\n", champion.Name, champion.Stack, table.HandsPlayed())
	} else {
		for _, p := range table.Players() {
			fmt.Printf("%-12s $%d\n", p.Name, p.Stack)
		}
	}
	return nil
}

// Run hosts the table for remote players
func (c *ServeCmd) Run(cli *CLI) error {
	cfg, logger, rng, err := setup(cli)
	if err != nil {
		return err
	}
	if c.Seats < 1 {
		return errors.New("serve needs at least one remote seat")
	}

	timeout, err := cfg.TurnTimeout()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	bots := make([]server.BotSeat, 0, len(cfg.Bots))
	for _, bc := range cfg.Bots {
		agent, err := bot.New(bc.Kind, rng, logger)
		if err != nil {
			return err
		}
		bots = append(bots, server.BotSeat{Name: bc.Name, Agent: agent})
	}

	srv := server.NewServer(server.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		SmallBlind:  cfg.Game.SmallBlind,
		BigBlind:    cfg.Game.BigBlind,
		StartStack:  cfg.Game.StartStack,
		RemoteSeats: c.Seats,
		MaxHands:    cfg.Game.MaxHands,
		TurnTimeout: timeout,
	}, bots, rng, evaluator.New(), logger)

	err = srv.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
