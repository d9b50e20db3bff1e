package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Dread-Maze/internal/sim"
	"github.com/Garsondee/Dread-Maze/internal/term"
)

func main() {
	var configPath string
	var logLevel string
	var logFile string
	var supersample int

	flag.StringVar(&configPath, "config", "", "optional tuning YAML file")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "termchase.log", "log destination; the terminal is taken by the game")
	flag.IntVar(&supersample, "supersample", 3, "render scale before downsampling to cells")
	flag.Parse()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logrus.Fatal(err)
	}
	defer f.Close()
	logrus.SetOutput(f)

	tuning := sim.DefaultTuning()
	if configPath != "" {
		if tuning, err = sim.LoadTuning(configPath); err != nil {
			logrus.Fatal(err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.New(screen, term.Config{
		Tuning:      tuning,
		Logger:      logrus.WithField("app", "termchase"),
		Supersample: supersample,
	})
	runErr := app.Run(ctx)
	screen.Fini()
	if runErr != nil {
		logrus.Fatal(runErr)
	}
}
