package world

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PlayerFunc reports the player position at simulation time t.
type PlayerFunc func(t float64) mgl64.Vec3

// FrameHook runs on the frame loop goroutine right after each frame.
type FrameHook func(dt float64, player mgl64.Vec3)

// Run drives Frame at a fixed tick until ctx is cancelled, calling hooks
// after every frame. The frame delta is the nominal tick, not the measured one.
func (o *Orchestrator) Run(ctx context.Context, tick time.Duration, player PlayerFunc, hooks ...FrameHook) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	dt := tick.Seconds()
	slog.Info("frame loop started",
		"tick", tick,
		"creatures", o.Len(),
		"nearRadius", o.cfg.NearRadius,
		"visibleRadius", o.cfg.VisibleRadius)

	for {
		select {
		case <-ctx.Done():
			slog.Info("frame loop stopping", "frames", o.frame)
			return ctx.Err()

		case <-ticker.C:
			p := player(o.tasks.Now() + dt)
			o.Frame(dt, p)
			for _, hook := range hooks {
				hook(dt, p)
			}
		}
	}
}

// ReportStats logs the frame snapshot every interval until ctx is cancelled.
// Safe to run on its own goroutine: it only reads the locked snapshot.
func (o *Orchestrator) ReportStats(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			s := o.Stats()
			slog.Info("simulation status",
				"frame", s.Frame,
				"simTime", s.SimTime,
				"creatures", s.Creatures,
				"visible", s.Visible,
				"near", s.Near,
				"dead", s.Dead,
				"pendingTasks", s.PendingTasks,
				"playerHits", s.PlayerHits,
				"playerDamage", s.PlayerDamage,
				"handles", s.Handles,
				"hitOwners", s.HitOwners)
		}
	}
}
