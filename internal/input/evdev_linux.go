//go:build linux

package input

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// Linux input event constants (linux/input-event-codes.h).
const (
	evKey = 0x01
	evAbs = 0x03

	absX = 0x00
	absY = 0x01

	btnSouth = 304 // A
	btnNorth = 307 // B
	btnTL    = 310 // Z
)

const eventSize = int(unsafe.Sizeof(unix.InputEvent{}))

// Evdev reads raw gamepad events from a /dev/input/event* device on a
// background goroutine. The reader blocks in read(2); Stop closes the
// file descriptor to force it out, so shutdown latency is bounded by
// the kernel, not by new input arriving. Start, Stop, and Sample belong
// to the tick goroutine; only the read loop runs elsewhere.
type Evdev struct {
	path string

	fd      int
	events  chan unix.InputEvent
	stopped atomic.Bool
	dead    atomic.Bool
	started bool

	// Axes reporting a 0..255 span (old HID pads) are recentered and
	// normalized with DivisorByte instead of DivisorShort.
	byteX bool
	byteY bool

	held sm64.MarioInputs
}

// NewEvdev opens the given device path, or scans for the first event
// device when path is empty.
func NewEvdev(path string) *Evdev {
	return &Evdev{path: path, fd: -1}
}

// Start opens the device and launches the reader goroutine.
func (e *Evdev) Start() error {
	if e.started {
		return nil
	}

	fd, path, err := openDevice(e.path)
	if err != nil {
		return err
	}
	e.fd = fd
	e.byteX = isByteAxis(fd, absX)
	e.byteY = isByteAxis(fd, absY)
	e.events = make(chan unix.InputEvent, 64)
	e.stopped.Store(false)
	e.dead.Store(false)
	e.started = true

	logger.Info("evdev device opened",
		zap.String("path", path),
		zap.Bool("byte_axes", e.byteX))
	go e.readLoop(fd)
	return nil
}

// Stop signals the reader to exit by closing the descriptor. Idempotent;
// the goroutine is not joined.
func (e *Evdev) Stop() {
	if !e.started {
		return
	}
	e.started = false
	e.stopped.Store(true)
	if e.fd >= 0 {
		_ = unix.Close(e.fd)
		e.fd = -1
	}
}

// Sample drains pending events and applies them to the held state.
// With no new events the previous values stick; a dead device zeroes
// everything.
func (e *Evdev) Sample(in *sm64.MarioInputs) {
	if e.dead.Load() {
		in.Zero()
		return
	}

	for {
		select {
		case ev := <-e.events:
			e.apply(ev)
		default:
			in.StickX = e.held.StickX
			in.StickY = e.held.StickY
			in.ButtonA = e.held.ButtonA
			in.ButtonB = e.held.ButtonB
			in.ButtonZ = e.held.ButtonZ
			return
		}
	}
}

func (e *Evdev) apply(ev unix.InputEvent) {
	switch ev.Type {
	case evAbs:
		switch ev.Code {
		case absX:
			e.held.StickX = normalizeAbs(ev.Value, e.byteX)
		case absY:
			e.held.StickY = normalizeAbs(ev.Value, e.byteY)
		}
	case evKey:
		pressed := ev.Value != 0
		switch ev.Code {
		case btnSouth:
			e.held.ButtonA = pressed
		case btnNorth:
			e.held.ButtonB = pressed
		case btnTL:
			e.held.ButtonZ = pressed
		}
	}
}

// normalizeAbs maps a raw absolute-axis value to [-1, 1]. Byte-span
// axes are recentered to a symmetric -255..255 value first so
// DivisorByte applies.
func normalizeAbs(v int32, byteAxis bool) float32 {
	if byteAxis {
		return NormalizeAxis(float32(2*v-255), DivisorByte)
	}
	return NormalizeAxis(float32(v), DivisorShort)
}

// readLoop blocks on read(2) and forwards whole events. It owns fd for
// reading; Stop closes the same descriptor to force the read out, which
// is the only state shared with the tick goroutine besides the flags.
func (e *Evdev) readLoop(fd int) {
	buf := make([]byte, eventSize*16)
	for {
		n, err := unix.Read(fd, buf)
		if e.stopped.Load() {
			return
		}
		if err != nil || n < eventSize {
			e.dead.Store(true)
			logger.Warn("evdev device lost", zap.Error(err))
			return
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			ev := *(*unix.InputEvent)(unsafe.Pointer(&buf[off]))
			select {
			case e.events <- ev:
			default:
				// Queue full; drop the event.
			}
		}
	}
}

// absInfo mirrors struct input_absinfo (linux/input.h).
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// isByteAxis queries EVIOCGABS for the axis span and reports whether it
// is a 0..255 byte axis. Query failure falls back to the 16-bit span.
func isByteAxis(fd int, code uint16) bool {
	var ai absInfo
	// _IOR('E', 0x40 + code, struct input_absinfo)
	req := uintptr(2)<<30 | unsafe.Sizeof(ai)<<16 | uintptr('E')<<8 | uintptr(0x40+code)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&ai)))
	if errno != 0 {
		return false
	}
	return ai.Minimum >= 0 && ai.Maximum <= 255
}

// openDevice opens path, or the first openable event device when path
// is empty.
func openDevice(path string) (int, string, error) {
	if path != "" {
		fd, err := unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			return -1, "", fmt.Errorf("%w: %s", ErrNoDevice, path)
		}
		return fd, path, nil
	}

	candidates, _ := filepath.Glob("/dev/input/event*")
	sort.Strings(candidates)
	for _, c := range candidates {
		if fd, err := unix.Open(c, unix.O_RDONLY, 0); err == nil {
			return fd, c, nil
		}
	}
	return -1, "", ErrNoDevice
}
