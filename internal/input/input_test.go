package input

import (
	"os"
	"testing"

	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

func TestMain(m *testing.M) {
	_ = logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	os.Exit(m.Run())
}

func TestNormalizeAxisDeadzone(t *testing.T) {
	cases := []struct {
		raw     float32
		divisor float32
		want    float32
	}{
		{0, DivisorShort, 0},
		{6553, DivisorShort, 0}, // 0.19998..., inside the deadzone
		{-6553, DivisorShort, 0},
		{32768, DivisorShort, 1}, // exact upper boundary
		{-32768, DivisorShort, -1},
		{51, DivisorByte, 0}, // 51/256 = 0.199...
		{256, DivisorByte, 1},
	}
	for _, c := range cases {
		if got := NormalizeAxis(c.raw, c.divisor); got != c.want {
			t.Errorf("NormalizeAxis(%v, %v) = %v, want %v", c.raw, c.divisor, got, c.want)
		}
	}
}

func TestNormalizeAxisRescalesLinearly(t *testing.T) {
	// Halfway between deadzone edge and full deflection: v = 0.6 maps
	// to (0.6-0.2)/0.8 = 0.5.
	got := NormalizeAxis(0.6*DivisorShort, DivisorShort)
	if got < 0.4999 || got > 0.5001 {
		t.Errorf("NormalizeAxis(0.6 deflection) = %v, want 0.5", got)
	}

	got = NormalizeAxis(-0.6*DivisorShort, DivisorShort)
	if got > -0.4999 || got < -0.5001 {
		t.Errorf("NormalizeAxis(-0.6 deflection) = %v, want -0.5", got)
	}
}

func TestNeutralZeroes(t *testing.T) {
	in := sm64.MarioInputs{StickX: 1, ButtonA: true}
	Neutral{}.Sample(&in)
	if in.StickX != 0 || in.ButtonA {
		t.Errorf("Neutral did not zero inputs: %+v", in)
	}
}

func TestKeyboardDigitalStick(t *testing.T) {
	keys := Keys{}
	kb := NewKeyboard(func() Keys { return keys })

	var in sm64.MarioInputs

	keys = Keys{Up: true, Right: true, Jump: true}
	kb.Sample(&in)
	if in.StickX != 1 || in.StickY != 1 || !in.ButtonA {
		t.Errorf("sample = %+v, want stick (1,1) + A", in)
	}

	keys = Keys{Left: true, Right: true}
	kb.Sample(&in)
	if in.StickX != 0 {
		t.Errorf("opposing keys should cancel, stickX = %v", in.StickX)
	}

	keys = Keys{Down: true, Crouch: true}
	kb.Sample(&in)
	if in.StickY != -1 || !in.ButtonZ || in.ButtonA {
		t.Errorf("sample = %+v, want stickY -1 + Z", in)
	}
}

func TestKeyboardStopIdempotent(t *testing.T) {
	kb := NewKeyboard(func() Keys { return Keys{} })
	kb.Stop()
	kb.Stop()
}

func TestReaderParseLine(t *testing.T) {
	r := NewReader("unused")

	r.parseLine("16384 -32768 1 0 1")
	if r.held.StickX <= 0 || r.held.StickY != -1 {
		t.Errorf("held stick = (%v, %v)", r.held.StickX, r.held.StickY)
	}
	if !r.held.ButtonA || r.held.ButtonB || !r.held.ButtonZ {
		t.Errorf("held buttons = %+v", r.held)
	}

	// Short line zeroes everything.
	r.parseLine("1 2 3")
	if r.held != (sm64.MarioInputs{}) {
		t.Errorf("short line should zero held state: %+v", r.held)
	}

	// Garbage zeroes too.
	r.parseLine("not numbers at all here x")
	if r.held != (sm64.MarioInputs{}) {
		t.Errorf("garbage line should zero held state: %+v", r.held)
	}
}

func TestReaderHoldsLastKnownValues(t *testing.T) {
	r := NewReader("unused")
	r.lines = make(chan string, 8)

	r.lines <- "32768 0 1 0 0"
	var in sm64.MarioInputs
	r.Sample(&in)
	if in.StickX != 1 || !in.ButtonA {
		t.Fatalf("sample = %+v, want stickX 1 + A", in)
	}

	// No new data: previous values hold.
	r.Sample(&in)
	if in.StickX != 1 || !in.ButtonA {
		t.Errorf("hold failed: %+v", in)
	}
}

func TestReaderLatestLineWins(t *testing.T) {
	r := NewReader("unused")
	r.lines = make(chan string, 8)
	r.lines <- "32768 0 1 1 1"
	r.lines <- "0 0 0 0 0"

	var in sm64.MarioInputs
	r.Sample(&in)
	if in.StickX != 0 || in.ButtonA {
		t.Errorf("expected freshest line to win: %+v", in)
	}
}

func TestReaderDeadZeroes(t *testing.T) {
	r := NewReader("unused")
	r.lines = make(chan string, 8)
	r.held = sm64.MarioInputs{StickX: 1, ButtonA: true}
	r.dead.Store(true)

	in := sm64.MarioInputs{StickX: 0.5}
	r.Sample(&in)
	if in.StickX != 0 || in.ButtonA {
		t.Errorf("dead reader should zero inputs: %+v", in)
	}
}

func TestReaderStopIdempotent(t *testing.T) {
	r := NewReader("/bin/nonexistent-controller")
	r.Stop()
	r.Stop()

	if err := r.Start(); err == nil {
		r.Stop()
		t.Skip("unexpectedly started a nonexistent executable")
	}
}

func TestReaderStartStopKillsChild(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	// A stand-in child that answers the handshake protocol forever.
	script := "while read _; do echo 0 0 0 0 0; done"
	r := NewReader("/bin/sh", "-c", script)

	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	r.Stop()
	r.Stop() // idempotent
}
