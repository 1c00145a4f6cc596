// Package game runs the frame loop: sample input, update doors, actors and
// the player, cast one ray sweep, compose the frame and present it.
package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/engine/compositor"
	"github.com/Faultbox/wolfcast/internal/engine/debug"
	"github.com/Faultbox/wolfcast/internal/engine/raycast"
	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/controls"
	"github.com/Faultbox/wolfcast/internal/game/entity"
	"github.com/Faultbox/wolfcast/internal/game/hud"
	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/game/world"
	"github.com/Faultbox/wolfcast/internal/logger"
)

// maxFrameTime caps dt so a stall does not teleport anything through walls.
const maxFrameTime = 0.1

// Presenter shows a finished frame.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// InputSource samples the controls once per frame.
type InputSource interface {
	Poll() controls.Controls
}

// Sounds plays named sound effects.
type Sounds interface {
	Play(name string)
}

// Options configures a game.
type Options struct {
	View      view.Config
	Level     *world.Level
	Textures  compositor.Textures
	Input     InputSource
	Presenter Presenter
	Sounds    Sounds // nil plays nothing

	Player  entity.PlayerConfig
	Spawner entity.Spawner // nil uses entity.DefaultSpawner

	ShowFPS       bool
	ShowMinimap   bool
	FPSLimit      int // frames per second for Run; 0 is unlimited
	ScreenshotDir string
}

// Errors returned by New.
var (
	ErrNoLevel     = errors.New("game: no level")
	ErrNoInput     = errors.New("game: no input source")
	ErrNoPresenter = errors.New("game: no presenter")
	ErrNoTextures  = errors.New("game: no textures")
)

// Game is one running level.
type Game struct {
	opts   Options
	level  *world.Level
	sounds Sounds

	player *entity.Player
	actors *entity.Manager
	ctx    entity.Context

	caster *raycast.Caster
	comp   *compositor.Compositor
	hud    *hud.HUD
	shots  *debug.ScreenshotCapture

	frame *image.RGBA
	hits  []raycast.Hit

	running bool
	frames  uint64
	log     *zap.Logger
}

// New builds a game from opts and plays the greeting.
func New(opts Options) (*Game, error) {
	switch {
	case opts.Level == nil:
		return nil, ErrNoLevel
	case opts.Input == nil:
		return nil, ErrNoInput
	case opts.Presenter == nil:
		return nil, ErrNoPresenter
	case opts.Textures == nil:
		return nil, ErrNoTextures
	}
	if err := opts.View.Validate(); err != nil {
		return nil, err
	}
	if opts.Sounds == nil {
		opts.Sounds = sfx.Nop{}
	}
	if opts.Spawner == nil {
		opts.Spawner = entity.DefaultSpawner
	}

	lvl := opts.Level
	g := &Game{
		opts:    opts,
		level:   lvl,
		sounds:  opts.Sounds,
		actors:  entity.NewManager(),
		caster:  raycast.New(opts.View, lvl.Grid, lvl.Doors),
		comp:    compositor.New(opts.View, opts.Textures),
		shots:   debug.NewScreenshotCapture(opts.ScreenshotDir, "wolfcast"),
		running: true,
		log:     logger.Named("game"),
	}
	g.player = entity.NewPlayer(view.Pose{Pos: lvl.SpawnPos, Angle: lvl.SpawnAngle}, opts.Player, opts.Sounds)
	g.actors.Spawn(lvl.Things, opts.Spawner)
	g.ctx = entity.Context{
		Player: g.player,
		Grid:   lvl.Grid,
		Doors:  lvl.Doors,
		Paths:  lvl.Paths,
		Sight:  g.caster,
		Sounds: opts.Sounds,
	}

	g.hud = hud.New(g.player, lvl, opts.Textures)
	g.hud.FPS.Visible = opts.ShowFPS
	g.hud.Minimap.Visible = opts.ShowMinimap
	g.frame = g.comp.NewFrame()

	g.log.Info("game initialized",
		zap.String("level", lvl.Name),
		zap.Int("actors", g.actors.Count()),
		zap.Int("hostiles", g.actors.Hostiles()),
		zap.Int("width", opts.View.Width),
		zap.Int("height", opts.View.Height))

	g.sounds.Play(sfx.Greeting)
	return g, nil
}

// Player returns the viewer.
func (g *Game) Player() *entity.Player { return g.player }

// Actors returns the level's actors.
func (g *Game) Actors() *entity.Manager { return g.actors }

// Level returns the level being played.
func (g *Game) Level() *world.Level { return g.level }

// HUD returns the overlays.
func (g *Game) HUD() *hud.HUD { return g.hud }

// Frame returns the last composed frame.
func (g *Game) Frame() *image.RGBA { return g.frame }

// Hits returns the last ray sweep.
func (g *Game) Hits() []raycast.Hit { return g.hits }

// Running reports whether the loop should continue.
func (g *Game) Running() bool { return g.running }

// Frames returns the number of frames produced.
func (g *Game) Frames() uint64 { return g.frames }

// Stop ends Run after the current frame.
func (g *Game) Stop() { g.running = false }

// Run steps frames until quit, ctx cancellation or a presentation error.
func (g *Game) Run(ctx context.Context) error {
	var budget time.Duration
	if g.opts.FPSLimit > 0 {
		budget = time.Second / time.Duration(g.opts.FPSLimit)
	}

	g.log.Info("starting game loop")
	last := time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			g.log.Info("game loop cancelled")
			return nil
		default:
		}

		start := time.Now()
		dt := start.Sub(last).Seconds()
		last = start

		if err := g.Step(dt); err != nil {
			return err
		}

		if budget > 0 {
			if rest := budget - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	g.log.Info("game loop finished", zap.Uint64("frames", g.frames))
	return nil
}

// Step produces one frame advancing the world by dt seconds.
func (g *Game) Step(dt float64) error {
	dt = min(max(dt, 0), maxFrameTime)

	c := g.opts.Input.Poll()
	if c.Quit {
		g.running = false
		return nil
	}
	g.handleActions(c)

	g.level.Doors.Update(dt)
	g.actors.Update(&g.ctx, dt)
	if g.player.Alive() {
		g.player.Update(c, dt, g.level.Grid, g.level.Doors)
	}
	g.hud.Update(dt)

	g.render()
	if err := g.opts.Presenter.Present(g.frame); err != nil {
		return fmt.Errorf("presenting frame %d: %w", g.frames, err)
	}
	g.frames++

	if c.Screenshot {
		g.screenshot()
	}
	if g.hud.FPS.Tick(dt) {
		g.log.Debug("fps", zap.Float64("fps", g.hud.FPS.Value()))
	}
	return nil
}

func (g *Game) handleActions(c controls.Controls) {
	if c.ToggleMap {
		g.hud.Minimap.Toggle()
	}
	if !g.player.Alive() {
		return
	}
	if c.Weapon != 0 {
		g.player.SelectWeapon(c.Weapon)
	}
	if c.WeaponCycle != 0 {
		g.player.CycleWeapon(c.WeaponCycle)
	}
	if c.Use {
		g.useDoor()
	}
	if c.Fire {
		g.fire()
	}
}

// useDoor opens the door ahead unless it is already open or opening.
func (g *Game) useDoor() {
	pose := g.player.Pose
	d := g.level.Doors.FindNear(pose.Pos, pose.Angle, g.level.Grid)
	if d == nil {
		return
	}
	if s := d.State(); s == world.DoorClosed || s == world.DoorClosing {
		d.Open()
		g.sounds.Play(sfx.Door)
	}
}

type scorer interface {
	Points() int
}

// fire shoots the current weapon at the nearest target under the crosshair.
func (g *Game) fire() {
	damage := g.player.Weapon.Damage()
	if !g.player.Shoot() {
		return
	}
	g.hud.Weapon.Fire()

	target := entity.FindTarget(g.player, g.actors.All(), g.caster)
	if target == nil {
		return
	}
	d, ok := target.Behavior.(entity.Damageable)
	if !ok {
		return
	}
	if d.TakeDamage(target, damage) {
		if s, ok := target.Behavior.(scorer); ok {
			g.player.AddScore(s.Points())
		}
		g.log.Debug("actor killed", zap.String("name", target.Name))
	}
}

func (g *Game) render() {
	pose := g.player.Pose
	g.hits = g.caster.CastInto(g.hits[:0], pose)
	sprites := g.actors.Sprites()

	mm := g.hud.Minimap
	mm.Hits = g.hits
	mm.Sprites = sprites
	mm.Pose = &g.player.Pose

	g.comp.Compose(g.frame, g.hits, sprites, pose, g.player.Bob(), g.hud.Overlays()...)
}

func (g *Game) screenshot() {
	path, err := g.shots.CaptureFromImage(g.frame)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}
