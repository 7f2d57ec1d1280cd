package game

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Driver runs a Game at a fixed tick rate using an accumulator loop,
// adapted from the teacher engine's engine/core/gameloop.go, plus three
// rate-limited side channels (autosave, delta push, session cleanup) a
// real embedding wires up to its own persistence/network layer.
type Driver struct {
	Game   *Game
	Config Config

	accumulator float64
	lastTime    time.Time

	autosaveLimiter *rate.Limiter
	pushLimiter     *rate.Limiter
	cleanupLimiter  *rate.Limiter
}

// NewDriver returns a driver ready to run g at the cadence described by
// cfg.
func NewDriver(g *Game, cfg Config) *Driver {
	return &Driver{
		Game:            g,
		Config:          cfg,
		lastTime:        time.Now(),
		autosaveLimiter: rate.NewLimiter(rate.Every(time.Duration(cfg.AutosavePeriodS*float64(time.Second))), 1),
		pushLimiter:     rate.NewLimiter(rate.Every(time.Duration(cfg.PushPeriodS*float64(time.Second))), 1),
		cleanupLimiter:  rate.NewLimiter(rate.Every(time.Duration(cfg.CleanupPeriodS*float64(time.Second))), 1),
	}
}

// Hooks are the side channels a Driver fires on its own cadence,
// independent of the tick rate.
type Hooks struct {
	Autosave func(*Game)
	Push     func(*Game)
	Cleanup  func(*Game)
}

// Run drives ticks at Config.TickPeriodS until ctx is canceled, firing
// hooks opportunistically as their own periods elapse. Like the teacher's
// GameLoop.Update, ticks run at a fixed timestep regardless of wall-clock
// jitter; frame time is capped to avoid a spiral of death after a stall.
func (d *Driver) Run(ctx context.Context, hooks Hooks) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.step(now, hooks)
		}
	}
}

func (d *Driver) step(now time.Time, hooks Hooks) {
	frameTime := now.Sub(d.lastTime).Seconds()
	d.lastTime = now
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := d.Config.TickPeriodS
	d.accumulator += frameTime
	for d.accumulator >= dt {
		d.Game.Tick()
		d.accumulator -= dt
	}

	if hooks.Autosave != nil && d.autosaveLimiter.Allow() {
		hooks.Autosave(d.Game)
	}
	if hooks.Push != nil && d.pushLimiter.Allow() {
		hooks.Push(d.Game)
	}
	if hooks.Cleanup != nil && d.cleanupLimiter.Allow() {
		hooks.Cleanup(d.Game)
	}
}
