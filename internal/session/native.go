package session

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/softquake/sm64bridge/pkg/sm64"
)

// nativeProcs binds the libsm64 entry points through purego. All struct
// traffic goes through the pkg/sm64 codec into plain byte buffers; this
// file is the only place raw pointers cross the ABI.
//
// The geometry output struct is four C pointers followed by a uint16
// count. It is modeled as a uintptr block, which matches the C layout on
// little-endian targets (the same assumption the wire codec makes).
type nativeProcs struct {
	handle uintptr

	globalInit         func(rom, textureOut, debug uintptr)
	globalTerminate    func()
	staticSurfacesLoad func(surfaces uintptr, count uint32)
	marioCreate        func(x, y, z int16) int32
	marioTick          func(id int32, inputs, state, geo uintptr)
	marioDelete        func(id int32)
}

// loadNative opens the shared library and resolves every entry point.
// Tests swap this out for a fake proc table.
var loadNative = dlopenProcs

func dlopenProcs(path string) (procs, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, err
	}

	p := &nativeProcs{handle: handle}
	binds := []struct {
		fptr any
		name string
	}{
		{&p.globalInit, "sm64_global_init"},
		{&p.globalTerminate, "sm64_global_terminate"},
		{&p.staticSurfacesLoad, "sm64_static_surfaces_load"},
		{&p.marioCreate, "sm64_mario_create"},
		{&p.marioTick, "sm64_mario_tick"},
		{&p.marioDelete, "sm64_mario_delete"},
	}
	for _, b := range binds {
		if err := register(b.fptr, handle, b.name); err != nil {
			_ = closeLibrary(handle)
			return nil, err
		}
	}

	return p, nil
}

// register wraps purego.RegisterLibFunc, which panics on a missing
// symbol, into an error return.
func register(fptr any, handle uintptr, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolving %s: %v", name, r)
		}
	}()
	purego.RegisterLibFunc(fptr, handle, name)
	return nil
}

func (p *nativeProcs) GlobalInit(rom []byte, textureOut []byte) {
	p.globalInit(
		uintptr(unsafe.Pointer(&rom[0])),
		uintptr(unsafe.Pointer(&textureOut[0])),
		0,
	)
	runtime.KeepAlive(rom)
	runtime.KeepAlive(textureOut)
}

func (p *nativeProcs) GlobalTerminate() {
	p.globalTerminate()
}

func (p *nativeProcs) StaticSurfacesLoad(surfaces []sm64.Surface) {
	buf := sm64.EncodeSurfaces(surfaces)
	if len(buf) == 0 {
		p.staticSurfacesLoad(0, 0)
		return
	}
	p.staticSurfacesLoad(uintptr(unsafe.Pointer(&buf[0])), uint32(len(surfaces)))
	runtime.KeepAlive(buf)
}

func (p *nativeProcs) MarioTick(id int32, in *sm64.MarioInputs, out *sm64.MarioState, geo *sm64.GeometryBuffers) error {
	var inBuf [sm64.InputsSize]byte
	if err := sm64.EncodeInputs(inBuf[:], in); err != nil {
		return err
	}
	var stBuf [sm64.StateSize]byte

	// C layout: float *position, *normal, *color, *uv; uint16 numTrianglesUsed.
	var block [5]uintptr
	block[0] = uintptr(unsafe.Pointer(&geo.Position[0]))
	block[1] = uintptr(unsafe.Pointer(&geo.Normal[0]))
	block[2] = uintptr(unsafe.Pointer(&geo.Color[0]))
	block[3] = uintptr(unsafe.Pointer(&geo.UV[0]))
	block[4] = 0

	p.marioTick(id,
		uintptr(unsafe.Pointer(&inBuf[0])),
		uintptr(unsafe.Pointer(&stBuf[0])),
		uintptr(unsafe.Pointer(&block[0])),
	)
	runtime.KeepAlive(geo)

	geo.NumTrianglesUsed = uint16(block[4])
	st, err := sm64.DecodeState(stBuf[:])
	if err != nil {
		return err
	}
	*out = st
	return nil
}

func (p *nativeProcs) MarioCreate(x, y, z int16) int32 {
	return p.marioCreate(x, y, z)
}

func (p *nativeProcs) MarioDelete(id int32) {
	p.marioDelete(id)
}

func (p *nativeProcs) Unload() {
	if p.handle != 0 {
		// Nothing actionable on failure; the process keeps the mapping.
		_ = closeLibrary(p.handle)
		p.handle = 0
	}
}
