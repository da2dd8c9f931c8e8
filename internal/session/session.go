// Package session owns the loaded libsm64 library and the lifecycle of a
// playable Mario entity: global init with the game ROM, one-shot static
// surface load, spawn, fixed-rate ticking, and teardown.
//
// The native library is not thread safe and keeps global state; a process
// holds at most one loaded session at a time, and every call must come
// from the goroutine that drives the tick loop.
package session

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/softquake/sm64bridge/internal/convert"
	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/pkg/math"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// Session errors.
var (
	// ErrRomMissing reports an unreadable ROM path. Raised before any
	// native call is attempted.
	ErrRomMissing = errors.New("ROM file missing or unreadable")

	// ErrRomSize reports a ROM of the wrong size. libsm64 does no
	// validation of its own and would fault opaquely on bad input.
	ErrRomSize = errors.New("ROM file has unexpected size (want 8 MiB)")

	// ErrNoGround reports a spawn point with no collision surface below
	// it. The native entity-create call returned a negative id.
	ErrNoGround = errors.New("no ground under the spawn point")

	// ErrSessionActive reports a second concurrent session. The native
	// library's global state cannot be shared.
	ErrSessionActive = errors.New("another engine session is already loaded")

	// ErrBadState reports an operation called out of lifecycle order.
	ErrBadState = errors.New("operation not valid in current session state")
)

// State is the session lifecycle phase.
type State int

// Lifecycle states, in order.
const (
	Uninitialized State = iota
	Loaded
	SurfacesLoaded
	Spawned
	Terminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Loaded:
		return "Loaded"
	case SurfacesLoaded:
		return "SurfacesLoaded"
	case Spawned:
		return "Spawned"
	case Terminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// procs is the bound native entry point table. The purego-backed
// implementation lives in native.go; tests substitute a fake.
type procs interface {
	GlobalInit(rom []byte, textureOut []byte)
	GlobalTerminate()
	StaticSurfacesLoad(surfaces []sm64.Surface)
	MarioCreate(x, y, z int16) int32
	MarioTick(id int32, in *sm64.MarioInputs, out *sm64.MarioState, geo *sm64.GeometryBuffers) error
	MarioDelete(id int32)
	Unload()
}

// activeMu guards the one-session-per-process invariant.
var (
	activeMu sync.Mutex
	active   bool
)

// Session drives one loaded libsm64 instance and one Mario entity.
type Session struct {
	id    string
	state State
	procs procs

	origin math.Vec3
	scale  float32

	marioID int32
	texture *image.NRGBA
	geo     *sm64.GeometryBuffers
}

// New prepares a session centered on origin with the given
// host-units-per-engine-unit scale. Nothing native is loaded yet.
func New(origin math.Vec3, scale float32) *Session {
	if scale <= 0 {
		scale = sm64.DefaultScale
	}
	return &Session{
		id:      uuid.NewString(),
		origin:  origin,
		scale:   scale,
		marioID: -1,
		geo:     sm64.NewGeometryBuffers(),
	}
}

// ID returns the session's log identity.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Origin returns the host-space point the engine space is centered on.
func (s *Session) Origin() math.Vec3 { return s.origin }

// Scale returns the active scale factor.
func (s *Session) Scale() float32 { return s.scale }

// Texture returns the character skin atlas decoded during LoadAndInit,
// or nil before that.
func (s *Session) Texture() *image.NRGBA { return s.texture }

// LoadAndInit validates the ROM, loads the native library from libPath,
// and runs global init. The ROM is checked before any native call so
// configuration mistakes surface as errors instead of native faults.
func (s *Session) LoadAndInit(libPath, romPath string) error {
	if s.state != Uninitialized && s.state != Terminated {
		return fmt.Errorf("load: %w: %s", ErrBadState, s.state)
	}

	rom, err := readROM(romPath)
	if err != nil {
		return err
	}

	activeMu.Lock()
	if active {
		activeMu.Unlock()
		return ErrSessionActive
	}
	active = true
	activeMu.Unlock()

	p, err := loadNative(libPath)
	if err != nil {
		s.releaseActive()
		return fmt.Errorf("loading %s: %w", libPath, err)
	}
	s.procs = p

	texture := make([]byte, 4*sm64.TextureWidth*sm64.TextureHeight)
	s.procs.GlobalInit(rom, texture)
	s.texture = decodeTexture(texture)
	s.state = Loaded

	logger.Info("engine session initialized",
		zap.String("session", s.id),
		zap.String("lib", libPath),
		zap.Float32("scale", s.scale))
	return nil
}

// LoadStaticSurfaces hands the extractor's output to the engine. Valid
// once, after LoadAndInit and before Spawn.
func (s *Session) LoadStaticSurfaces(surfaces []sm64.Surface) error {
	if s.state != Loaded {
		return fmt.Errorf("static surfaces: %w: %s", ErrBadState, s.state)
	}
	s.procs.StaticSurfacesLoad(surfaces)
	s.state = SurfacesLoaded
	logger.Debug("static surfaces loaded",
		zap.String("session", s.id),
		zap.Int("count", len(surfaces)))
	return nil
}

// Spawn creates the Mario entity at the given host-space point. The
// engine-space spawn point is lifted by sm64.SpawnLift so Mario drops
// onto the ground. A point whose engine coordinates do not fit the
// int16 fields is rejected with sm64.ErrOutOfRange before any native
// call. A negative native id means no ground below the point;
// the session tears the library down before reporting it, since the
// half-initialized global state cannot be reused.
func (s *Session) Spawn(host math.Vec3) error {
	if s.state != SurfacesLoaded {
		return fmt.Errorf("spawn: %w: %s", ErrBadState, s.state)
	}

	x, y, z := convert.ToEngine(host, s.origin, s.scale)
	y += sm64.SpawnLift
	if !sm64.CoordInRange(x) || !sm64.CoordInRange(y) || !sm64.CoordInRange(z) {
		return fmt.Errorf("spawn at (%d, %d, %d): %w", x, y, z, sm64.ErrOutOfRange)
	}

	id := s.procs.MarioCreate(int16(x), int16(y), int16(z))
	if id < 0 {
		s.teardownNative()
		return fmt.Errorf("spawn at (%d, %d, %d): %w", x, y, z, ErrNoGround)
	}

	s.marioID = id
	s.state = Spawned
	logger.Info("mario spawned",
		zap.String("session", s.id),
		zap.Int32("mario_id", id),
		zap.Int32s("engine_pos", []int32{x, y, z}))
	return nil
}

// Tick advances the entity one fixed timestep with the given inputs and
// returns the new physics state plus the frame's geometry buffers. The
// buffers are owned by the session and overwritten on the next call.
func (s *Session) Tick(in *sm64.MarioInputs) (sm64.MarioState, *sm64.GeometryBuffers, error) {
	if s.state != Spawned {
		return sm64.MarioState{}, nil, fmt.Errorf("tick: %w: %s", ErrBadState, s.state)
	}
	var out sm64.MarioState
	if err := s.procs.MarioTick(s.marioID, in, &out, s.geo); err != nil {
		return sm64.MarioState{}, nil, fmt.Errorf("tick: %w", err)
	}
	return out, s.geo, nil
}

// MarioToHost converts an engine-space Mario position to host space.
func (s *Session) MarioToHost(st sm64.MarioState) math.Vec3 {
	return convert.ToHost(st.PosX, st.PosY, st.PosZ, s.origin, s.scale)
}

// Terminate deletes the entity, shuts the native library down, and
// unloads it. Safe to call at any point and more than once; re-insertion
// afterwards goes through a full reload, since the library's global
// state is not safely re-initializable in place.
func (s *Session) Terminate() {
	if s.procs == nil {
		s.state = Terminated
		return
	}
	if s.state == Spawned && s.marioID >= 0 {
		s.procs.MarioDelete(s.marioID)
		s.marioID = -1
	}
	s.teardownNative()
	logger.Info("engine session terminated", zap.String("session", s.id))
}

// teardownNative runs global terminate, unloads the library, and returns
// the session to a reloadable state.
func (s *Session) teardownNative() {
	s.procs.GlobalTerminate()
	s.procs.Unload()
	s.procs = nil
	s.state = Terminated
	s.releaseActive()
}

func (s *Session) releaseActive() {
	activeMu.Lock()
	active = false
	activeMu.Unlock()
}

// readROM loads and validates the ROM image.
func readROM(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRomMissing, path)
	}
	if len(rom) != sm64.ROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrRomSize, len(rom))
	}
	return rom, nil
}

// decodeTexture converts the RGBA atlas filled by global init into an
// image. Built exactly once per load.
func decodeTexture(buf []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, sm64.TextureWidth, sm64.TextureHeight))
	copy(img.Pix, buf)
	return img
}
