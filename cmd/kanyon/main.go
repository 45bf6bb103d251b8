package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/input"
	"github.com/opd-ai/go-kanyonbird/pkg/logging"
	"github.com/opd-ai/go-kanyonbird/pkg/sim"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Run struct {
		Configs   []string `arg:"" optional:"" name:"configs" help:"Configuration files, applied in order over the defaults." type:"existingfile"`
		Period    int      `help:"Ticks per scripted wing flap." default:"20"`
		Outward   float64  `help:"Scripted horizontal stick deflection." default:"0.5"`
		Amplitude float64  `help:"Scripted vertical stick deflection." default:"0.8"`
		Realtime  bool     `help:"Pace ticks with the wall clock."`
	} `cmd:"" help:"Fly a headless session with a scripted flapping pattern."`

	Config struct {
		YAML bool `name:"yaml" help:"Print YAML instead of JSON."`
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kanyon"),
		kong.Description("kanyon bird flight simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	logger := logging.NewLogger()
	if CLI.Debug {
		logger = logging.NewLoggerWithWriter(os.Stdout, slog.LevelDebug)
		logger.Warn(context.Background(), "debug logging enabled")
	}

	switch ctx.Command() {
	case "run", "run <configs>":
		if err := runCommand(logger); err != nil {
			writeError(err)
		}
	case "config":
		data, err := config.Marshal(config.DefaultConfig(), CLI.Config.YAML)
		if err != nil {
			writeError(err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			writeError(err)
		}
	}
}

func runCommand(logger *logging.Logger) error {
	cfg, err := config.LoadConfigs(CLI.Run.Configs...)
	if err != nil {
		return err
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return err
	}
	if CLI.Run.Realtime {
		cfg.Session.Realtime = true
	}

	source, err := input.FlapScript(CLI.Run.Period, CLI.Run.Outward, CLI.Run.Amplitude)
	if err != nil {
		return err
	}

	session, err := sim.NewSession(cfg, source, sim.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := session.Run(ctx, cfg.Session.MaxTicks())
	if err != nil {
		logger.Warn(ctx, "run interrupted", "error", err.Error())
	}

	fmt.Printf("outcome=%s distance=%.2f ticks=%d elapsed=%.2fs",
		res.Outcome, res.Distance, res.Ticks, res.Elapsed)
	if res.Contact != "" {
		fmt.Printf(" contact=%q", res.Contact)
	}
	if res.TimedOut {
		fmt.Print(" timed_out")
	}
	fmt.Println()
	return nil
}
