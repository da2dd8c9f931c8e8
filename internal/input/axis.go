package input

// Deadzone is the normalized radius inside which an analog axis reads
// exactly zero.
const Deadzone = 0.2

// Raw-range divisors for the known source kinds.
const (
	// DivisorByte rescales 8-bit absolute axes (0..255 span, as on old
	// HID pads seen through evdev) after recentering to -255..255.
	DivisorByte = 256

	// DivisorShort rescales 16-bit evdev/SDL axis values.
	DivisorShort = 32768
)

// NormalizeAxis maps a raw axis value to [-1, 1]: divide by the source
// range, zero the deadzone, and linearly rescale the remaining
// [Deadzone, 1] band back to [0, 1] (mirrored for negative values).
func NormalizeAxis(raw float32, divisor float32) float32 {
	v := raw / divisor
	if v < Deadzone && v > -Deadzone {
		return 0
	}
	if v > 0 {
		return (v - Deadzone) / (1 - Deadzone)
	}
	return (v + Deadzone) / (1 - Deadzone)
}
