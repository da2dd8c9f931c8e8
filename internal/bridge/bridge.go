// Package bridge wires scene, session, input, and geometry into a
// running play loop. Insert builds the whole stack, Run ticks it at a
// fixed rate on the caller's goroutine, Remove tears it down.
//
// All engine calls happen on the goroutine driving Run (or TickOnce).
// Input backends may run background readers internally, but the bridge
// only ever drains them via Sample.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/softquake/sm64bridge/internal/collision"
	"github.com/softquake/sm64bridge/internal/config"
	"github.com/softquake/sm64bridge/internal/convert"
	"github.com/softquake/sm64bridge/internal/geometry"
	"github.com/softquake/sm64bridge/internal/input"
	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/internal/scene"
	"github.com/softquake/sm64bridge/internal/session"
	"github.com/softquake/sm64bridge/pkg/math"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// Follower receives Mario's host-space position after each successful
// tick, typically to move a camera target.
type Follower interface {
	Follow(pos math.Vec3)
}

// FollowerFunc adapts a plain function to the Follower interface.
type FollowerFunc func(pos math.Vec3)

func (f FollowerFunc) Follow(pos math.Vec3) { f(pos) }

// engine is the slice of session behavior the bridge drives. It exists
// so tests can substitute a fake.
type engine interface {
	LoadAndInit(libPath, romPath string) error
	LoadStaticSurfaces(surfaces []sm64.Surface) error
	Spawn(host math.Vec3) error
	Tick(in *sm64.MarioInputs) (sm64.MarioState, *sm64.GeometryBuffers, error)
	MarioToHost(st sm64.MarioState) math.Vec3
	Terminate()
}

var newEngine = func(origin math.Vec3, scale float32) engine {
	return session.New(origin, scale)
}

// Options carries the host-side hooks Insert cannot derive from config.
type Options struct {
	// Source overrides the backend named in the config. Mostly for
	// hosts that already own a polling loop.
	Source input.Source

	// KeyPoll feeds the keyboard backend. Required when the config
	// selects it.
	KeyPoll func() input.Keys

	// CamLook returns the host camera's horizontal look direction each
	// tick. Nil means a fixed north-facing camera.
	CamLook func() math.Vec3

	// Follower, when set, tracks Mario's host position.
	Follower Follower
}

// Bridge is one inserted Mario: a live engine session plus the input
// source and mesh it is bound to.
type Bridge struct {
	eng      engine
	src      input.Source
	dec      *geometry.Decoder
	mesh     geometry.MeshWriter
	follower Follower
	camLook  func() math.Vec3
	follow   bool
	period   time.Duration
	last     sm64.MarioState
	removed  bool
}

// Insert loads the engine, extracts collision from the scene, spawns
// Mario at the given host position, and starts the input backend. Any
// failure tears down everything already built before returning.
func Insert(cfg *config.Config, scn *scene.Scene, spawn math.Vec3, mesh geometry.MeshWriter, opts Options) (*Bridge, error) {
	scale := cfg.Engine.Scale
	if scale <= 0 {
		scale = sm64.DefaultScale
	}

	eng := newEngine(spawn, scale)
	if err := eng.LoadAndInit(cfg.Engine.LibraryPath, cfg.Engine.RomPath); err != nil {
		return nil, fmt.Errorf("loading engine: %w", err)
	}

	res := collision.Extract(scn, spawn, scale)
	if res.Dropped > 0 {
		logger.Warn("triangles outside engine range dropped",
			zap.Int("dropped", res.Dropped),
			zap.Int("kept", len(res.Surfaces)))
	}
	if err := eng.LoadStaticSurfaces(res.Surfaces); err != nil {
		eng.Terminate()
		return nil, fmt.Errorf("loading surfaces: %w", err)
	}

	if err := eng.Spawn(spawn); err != nil {
		eng.Terminate()
		return nil, fmt.Errorf("spawning at %v: %w", spawn, err)
	}

	src := opts.Source
	if src == nil {
		src = newSource(cfg, opts)
	}
	if err := src.Start(); err != nil {
		if !errors.Is(err, input.ErrNoDevice) {
			eng.Terminate()
			return nil, fmt.Errorf("starting input backend %q: %w", cfg.Input.Backend, err)
		}
		logger.Warn("input device not found, using neutral input",
			zap.String("backend", cfg.Input.Backend))
		src = input.Neutral{}
	}

	rate := cfg.Game.TickRate
	if rate <= 0 {
		rate = sm64.TickRate
	}

	camLook := opts.CamLook
	if camLook == nil {
		camLook = func() math.Vec3 { return math.Vec3{Y: -1} }
	}

	logger.Info("mario inserted",
		zap.Int("surfaces", len(res.Surfaces)),
		zap.Float32("scale", scale),
		zap.Int("tick_rate", rate))

	return &Bridge{
		eng:      eng,
		src:      src,
		dec:      geometry.NewDecoder(spawn, scale),
		mesh:     mesh,
		follower: opts.Follower,
		camLook:  camLook,
		follow:   cfg.Game.FollowCamera,
		period:   time.Second / time.Duration(rate),
	}, nil
}

// Run ticks the bridge until ctx is canceled. It blocks on the calling
// goroutine; that goroutine owns all engine calls for the duration.
func (b *Bridge) Run(ctx context.Context) {
	ticker := time.NewTicker(b.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.TickOnce()
		}
	}
}

// TickOnce advances the simulation one frame. A failing or panicking
// tick is logged and the mesh keeps the last good frame.
func (b *Bridge) TickOnce() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("tick panicked", zap.Any("panic", r))
		}
	}()

	var in sm64.MarioInputs
	b.src.Sample(&in)
	in.CamLookX, in.CamLookZ = convert.CamLook(b.camLook())

	st, geo, err := b.eng.Tick(&in)
	if err != nil {
		logger.Error("tick failed", zap.Error(err))
		return
	}
	b.last = st

	b.dec.Apply(b.mesh, geo)

	if b.follow && b.follower != nil {
		b.follower.Follow(b.eng.MarioToHost(st))
	}
}

// Mario returns the state from the most recent successful tick.
func (b *Bridge) Mario() sm64.MarioState { return b.last }

// Position returns Mario's host-space position from the most recent
// successful tick.
func (b *Bridge) Position() math.Vec3 { return b.eng.MarioToHost(b.last) }

// Remove stops the input backend and terminates the engine session.
// Safe to call more than once.
func (b *Bridge) Remove() {
	if b.removed {
		return
	}
	b.removed = true
	b.src.Stop()
	b.eng.Terminate()
	logger.Info("mario removed")
}
