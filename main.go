package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	app "github.com/rocketscienceinc/pebbles-backend/internal"
	"github.com/rocketscienceinc/pebbles-backend/internal/config"
	"github.com/rocketscienceinc/pebbles-backend/internal/console"
	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
	"github.com/rocketscienceinc/pebbles-backend/internal/random"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" default:"1" help:"Run the REST and WebSocket servers"`
	Play    PlayCmd          `cmd:"" help:"Play a game in the terminal"`
}

type ServeCmd struct {
	Config string `short:"c" default:"./config.yml" help:"Path to YAML configuration file"`
}

type PlayCmd struct {
	Difficulty string `short:"d" enum:"Easy,Hard" default:"Easy" help:"Opponent difficulty (Easy, Hard)"`
	Pebbles    int    `short:"p" default:"15" help:"Pebbles in the pile"`
	MaxPerTurn int    `short:"m" name:"max-per-turn" default:"3" help:"Most pebbles a single turn may take"`
	Seed       int64  `short:"s" help:"Random seed, 0 picks one from the clock"`
}

// main - is the entry point of the application. It parses the command line and runs the selected command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pebbles"),
		kong.Description("Pebble-removal game against an automated opponent"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	ctx.FatalIfErrorf(ctx.Run())
}

func (that *ServeCmd) Run() error {
	conf := initConfig(that.Config)
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}

	return nil
}

func (that *PlayCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameConfig := entity.GameConfig{
		Difficulty:   entity.Difficulty(that.Difficulty),
		PebblesTotal: that.Pebbles,
		MaxPerTurn:   that.MaxPerTurn,
	}

	return console.Run(ctx, os.Stdin, os.Stdout, gameConfig, random.New(that.Seed))
}

// initialize config.
func initConfig(path string) *config.Config {
	if !filepath.IsAbs(path) {
		baseDir, err := os.Getwd()
		if err != nil {
			panic(fmt.Errorf("failed to get current directory: %w", err))
		}

		path = filepath.Join(baseDir, path)
	}

	return config.MustLoad(path)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if conf.LogFormat == "text" {
		return slog.New(log.NewWithOptions(os.Stderr, log.Options{
			Level:           log.Level(level),
			ReportTimestamp: true,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
