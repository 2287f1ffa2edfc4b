package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/logger"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlays")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "also write logs to this file, rotated")
	watch := flag.Bool("watch", true, "hot reload prefabs and scripts from disk")
	flag.Parse()

	if err := logger.Init(*logLevel, *logFile); err != nil {
		panic("init logger: " + err.Error())
	}
	defer logger.Sync()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("stealth")

	game, err := NewGame(GameOptions{
		Level: *levelName,
		Debug: *debug,
		Watch: *watch,
		TPS:   ebiten.TPS(),
	})
	if err != nil {
		logger.Fatal("build game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("run game", zap.Error(err))
	}
}
