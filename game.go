package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stealth/common"
	"github.com/milk9111/stealth/ecs"
	"github.com/milk9111/stealth/ecs/component"
	"github.com/milk9111/stealth/ecs/entity"
	"github.com/milk9111/stealth/ecs/render"
	"github.com/milk9111/stealth/ecs/system"
	"github.com/milk9111/stealth/levels"
	"github.com/milk9111/stealth/logger"
	"github.com/milk9111/stealth/prefabs"
	"go.uber.org/zap"
)

type GameOptions struct {
	Level string
	Debug bool
	Watch bool
	TPS   int
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler

	clock   *system.ClockSystem
	physics *system.PhysicsSystem
	cues    *system.CameraCueSystem
	render  *render.RenderSystem

	player ecs.Entity
	focal  ecs.Entity

	paused  bool
	quit    bool
	debug   bool
	pauseUI *ebitenui.UI

	watcher   *prefabs.Watcher
	clipboard *snapshotClipboard
	log       *zap.Logger
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{
		world:     ecs.NewWorld(),
		debug:     opts.Debug,
		render:    render.NewRenderSystem(),
		clipboard: newSnapshotClipboard(),
		log:       logger.Named("game"),
	}

	g.clock = system.NewClockSystem(opts.TPS, func() bool { return g.paused })
	g.physics = system.NewPhysicsSystem()
	g.cues = system.NewCameraCueSystem(g.clock)
	g.scheduler = ecs.NewScheduler(
		g.clock,
		system.NewInputSystem(deviceInput{}),
		system.NewPlayerControllerSystem(),
		system.NewMagGripSystem(),
		g.physics,
		g.cues,
		system.NewFocalPointSystem(),
		system.NewHierarchySystem(),
		system.NewCameraSystem(),
	)

	if err := g.buildWorld(opts.Level); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			// running from a binary without the source tree
			g.log.Info("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) buildWorld(levelName string) error {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return fmt.Errorf("game: load level %q: %w", levelName, err)
	}
	if err := entity.LoadLevelToWorld(g.world, lvl); err != nil {
		return fmt.Errorf("game: build level %q: %w", lvl.Name, err)
	}

	g.player, err = entity.NewPlayer(g.world)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.focal, err = entity.NewFocalPoint(g.world, g.player)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.NewCamera(g.world); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("solids", len(lvl.Solids)),
		zap.Int("enemies", len(lvl.Enemies)),
		zap.Int("cues", len(lvl.Cues)),
	)
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}

	g.applyReloads()
	g.scheduler.Update(g.world)

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		render.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		render.DrawFocusDebug(g.world, screen)
		render.DrawPlayerStateDebug(g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  scale: %.2f", ebiten.ActualFPS(), g.clock.Scale()), 10, common.BaseHeight-20)
	}

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close watcher", zap.Error(err))
		}
	}
}

// applyReloads picks up prefab and script edits made while the game runs.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.PollErrors() {
		g.log.Warn("prefab watcher", zap.Error(err))
	}
	for _, name := range g.watcher.Poll() {
		switch {
		case strings.HasSuffix(name, ".tengo"):
			g.cues.Invalidate(name)
			g.log.Info("cue script reloaded", zap.String("script", name))
		case name == "focal_point.yaml":
			g.reloadFocalPoint()
		default:
			g.log.Debug("prefab changed, applies on restart", zap.String("file", name))
		}
	}
}

func (g *Game) reloadFocalPoint() {
	spec, err := prefabs.LoadFocalPointSpec()
	if err != nil {
		g.log.Warn("reload focal point", zap.Error(err))
		return
	}
	fp, ok := ecs.Get(g.world, g.focal, component.FocalPointComponent.Kind())
	if !ok || fp.Controller == nil {
		return
	}
	x, y := spec.Extremes()
	fp.Controller.Reconfigure(x, y)
	g.log.Info("focal point reconfigured", zap.Int("x", x), zap.Int("y", y))
}

// toggleFollow freezes or resumes the focal point.
func (g *Game) toggleFollow() {
	fp, ok := ecs.Get(g.world, g.focal, component.FocalPointComponent.Kind())
	if !ok || fp.Controller == nil {
		return
	}
	if fp.Controller.Following() {
		fp.Controller.StopFollowing()
	} else {
		fp.Controller.StartFollowing()
	}
	g.log.Info("focal point follow toggled", zap.Bool("following", fp.Controller.Following()))
}

func (g *Game) copySnapshot() {
	snap := system.TakeSnapshot(g.world, g.player, g.focal)
	if err := g.clipboard.Write(snap.String()); err != nil {
		g.log.Warn("copy snapshot", zap.Error(err))
		return
	}
	g.log.Info("snapshot copied")
}
