package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Dread-Maze/internal/game"
	"github.com/Garsondee/Dread-Maze/internal/sim"
)

func main() {
	var configPath string
	var logLevel string
	var width, height int

	flag.StringVar(&configPath, "config", "", "optional tuning YAML file")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.IntVar(&width, "width", 1280, "window width")
	flag.IntVar(&height, "height", 720, "window height")
	flag.Parse()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	tuning := sim.DefaultTuning()
	if configPath != "" {
		if tuning, err = sim.LoadTuning(configPath); err != nil {
			logrus.Fatal(err)
		}
	}

	g, err := game.New(game.Config{
		Width:  width,
		Height: height,
		Tuning: tuning,
		Logger: logrus.WithField("app", "dread-maze"),
	})
	if err != nil {
		logrus.Fatal(err)
	}

	ebiten.SetWindowTitle(g.Title())
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		logrus.Fatal(err)
	}
}
