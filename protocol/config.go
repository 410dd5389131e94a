package protocol

import "math"

// ProtocolConfig holds every tunable parameter of the codec. A zero-value
// ProtocolConfig is not valid; build one with DefaultConfig and override
// individual fields, then Validate it before handing it to an Encoder or
// Decoder (NewEncoder/NewDecoder do this for you).
type ProtocolConfig struct {
	// UnitDurationMicros is the width of one time unit, in microseconds.
	UnitDurationMicros int64
	// PreambleMarkUnits is the length, in units, of the preamble-color pulse
	// that opens a frame.
	PreambleMarkUnits int64
	// PreambleSpaceUnits is the length, in units, of the Off period
	// immediately following the preamble mark.
	PreambleSpaceUnits int64
	// SymbolMarkUnits is the length, in units, of each data symbol's colored
	// pulse.
	SymbolMarkUnits int64
	// SeparatorUnits is the length, in units, of the Off period between data
	// symbols.
	SeparatorUnits int64
	// FrameGapUnits is the length, in units, of the Off period the encoder
	// emits after a frame. Zero or negative suppresses the trailing gap.
	FrameGapUnits int64
	// PreambleColor is the LightLevel that marks a preamble; one of Red,
	// Green, Blue, White.
	PreambleColor LightLevel
	// AllowedDriftFraction is the fractional clock-drift tolerance. A floor
	// of 0.01 is always applied regardless of this value.
	AllowedDriftFraction float64
	// MaxPayloadBytes bounds the payload length the codec will encode or
	// accept.
	MaxPayloadBytes int
	// Magic is the frame start word.
	Magic uint16
	// Ender is the frame end word.
	Ender uint16
	// Version is the single version byte asserted immediately after Magic.
	Version uint8
}

// DefaultConfig returns the protocol's default parameters, matching the
// values in the data model: a 600us unit, a 16/8-unit preamble, single-unit
// symbol marks and separators, a 12-unit inter-frame gap, a White preamble,
// 20% drift tolerance, and a 512-byte payload ceiling.
func DefaultConfig() ProtocolConfig {
	return ProtocolConfig{
		UnitDurationMicros:   600,
		PreambleMarkUnits:    16,
		PreambleSpaceUnits:   8,
		SymbolMarkUnits:      1,
		SeparatorUnits:       1,
		FrameGapUnits:        12,
		PreambleColor:        White,
		AllowedDriftFraction: 0.20,
		MaxPayloadBytes:      512,
		Magic:                0xC39A,
		Ender:                0x51AA,
		Version:              1,
	}
}

// minDriftFraction is the effective floor on AllowedDriftFraction: a
// misconfigured (too-tight or zero) drift fraction never makes the decoder
// stricter than this.
const minDriftFraction = 0.01

// DriftLimit returns the effective drift fraction used for both timing
// acceptance (via Tolerance) and quantization-error rejection:
// max(AllowedDriftFraction, 0.01).
func (c ProtocolConfig) DriftLimit() float64 {
	return math.Max(c.AllowedDriftFraction, minDriftFraction)
}

// Tolerance returns the maximum absolute deviation, in units, that a pulse
// measured against expectedUnits may have and still match:
// max(1, ceil(expectedUnits * max(AllowedDriftFraction, 0.01))).
func (c ProtocolConfig) Tolerance(expectedUnits int64) int64 {
	raw := math.Ceil(float64(expectedUnits) * c.DriftLimit())
	tol := int64(raw)
	if tol < 1 {
		tol = 1
	}
	return tol
}

// Validate reports whether every invariant in the data model holds: all
// *Units fields other than FrameGapUnits, and UnitDurationMicros, are
// positive, MaxPayloadBytes is positive, and PreambleColor is one of the
// four colors. FrameGapUnits may be zero or negative.
func (c ProtocolConfig) Validate() error {
	switch {
	case c.UnitDurationMicros <= 0,
		c.PreambleMarkUnits <= 0,
		c.PreambleSpaceUnits <= 0,
		c.SymbolMarkUnits <= 0,
		c.SeparatorUnits <= 0,
		c.MaxPayloadBytes <= 0:
		return ErrConfigInvalid
	}
	switch c.PreambleColor {
	case Red, Green, Blue, White:
	default:
		return ErrConfigInvalid
	}
	return nil
}
