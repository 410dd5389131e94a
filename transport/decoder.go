package transport

import (
	"encoding/binary"
	"math"

	proto "github.com/ystepanoff/chromalink/protocol"
)

// decoderState is the Decoder's synchronization state.
type decoderState int

const (
	stateIdle decoderState = iota
	stateWaitSpace
	stateReadMark
	stateReadSpace
)

// Decoder is a fault-tolerant timing/level state machine: fed one
// SignalChange at a time, it synchronizes to a preamble, demodulates
// symbols under clock drift, enforces header consistency and integrity, and
// invokes a callback exactly once per successfully validated frame.
//
// Feed is the only mutation point; it must not be called concurrently with
// itself or with Reset/SetCallback/Stats on the same Decoder, and the
// callback must not call back into the same Decoder.
type Decoder struct {
	config   proto.ProtocolConfig
	callback func([]byte)
	stats    DecoderStats

	state                 decoderState
	frameBuffer           []byte
	currentByte           byte
	bitsFilled            int
	expectedPayloadLength int
	payloadLengthKnown    bool
	pendingSymbol         proto.Symbol
	frameActive           bool
}

// NewDecoder validates config and returns a Decoder that delivers every
// successfully decoded payload to callback. callback may be nil; use
// SetCallback to attach one later.
func NewDecoder(callback func([]byte), config proto.ProtocolConfig) (*Decoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	d := &Decoder{
		config:      config,
		callback:    callback,
		frameBuffer: make([]byte, 0, proto.FrameOverheadSize+config.MaxPayloadBytes),
	}
	d.resetFrameState()
	return d, nil
}

// Config returns the Decoder's current configuration.
func (d *Decoder) Config() proto.ProtocolConfig { return d.config }

// Configure validates newConfig and, only if it's valid, replaces the
// Decoder's configuration and resets in-flight frame state (but not Stats).
// On failure the Decoder is left exactly as it was.
func (d *Decoder) Configure(newConfig proto.ProtocolConfig) error {
	if err := newConfig.Validate(); err != nil {
		return err
	}
	d.config = newConfig
	d.frameBuffer = make([]byte, 0, proto.FrameOverheadSize+newConfig.MaxPayloadBytes)
	d.resetFrameState()
	return nil
}

// SetCallback replaces the committed-payload sink.
func (d *Decoder) SetCallback(callback func([]byte)) { d.callback = callback }

// Stats returns a snapshot of the Decoder's diagnostic counters.
func (d *Decoder) Stats() DecoderStats { return d.stats }

// Reset clears in-flight decode state (synchronization state, the frame
// buffer, the bit accumulator) without touching Stats — long-lived
// diagnostics survive a Reset by design.
func (d *Decoder) Reset() { d.resetFrameState() }

func (d *Decoder) resetFrameState() {
	d.state = stateIdle
	d.frameBuffer = d.frameBuffer[:0]
	d.currentByte = 0
	d.bitsFilled = 0
	d.expectedPayloadLength = 0
	d.payloadLengthKnown = false
	d.pendingSymbol = 0
	d.frameActive = false
}

// abort increments TruncatedFrames iff a frame was active (i.e. a preamble
// had been consumed and startFrame had run), then clears all decode state.
func (d *Decoder) abort() {
	if d.frameActive {
		d.stats.TruncatedFrames++
	}
	d.resetFrameState()
}

// rearm is abort's companion: the same pulse that caused an abort is
// re-examined as a possible new preamble. resetFrameState (called by abort
// just before this) already leaves state at stateIdle, so this only needs
// to promote to stateWaitSpace when the pulse qualifies.
func (d *Decoder) rearm(change proto.SignalChange, units int64) {
	if change.Level == d.config.PreambleColor && d.matches(units, d.config.PreambleMarkUnits) {
		d.state = stateWaitSpace
	}
}

func (d *Decoder) startFrame() {
	d.frameBuffer = d.frameBuffer[:0]
	d.currentByte = 0
	d.bitsFilled = 0
	d.expectedPayloadLength = 0
	d.payloadLengthKnown = false
	d.pendingSymbol = 0
	d.frameActive = true
	d.state = stateReadMark
}

func (d *Decoder) matches(units, expected int64) bool {
	diff := units - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= d.config.Tolerance(expected)
}

// quantize converts a raw pulse duration into units of the configured
// clock, plus the fractional quantization error against the nearest unit
// count.
func quantize(duration, unitDuration int64) (units int64, errFrac float64) {
	ratio := float64(duration) / float64(unitDuration)
	units = int64(math.Round(ratio))
	errFrac = math.Abs(ratio - float64(units))
	return units, errFrac
}

// Feed consumes one level transition. It never blocks, never allocates
// beyond the pre-sized frame buffer, and never returns an error: rejections
// are visible only through Stats and the absence of a callback. A rejected
// timing, mark, space or frame check bumps its own counter, and aborting a
// frame that had already started also bumps TruncatedFrames.
func (d *Decoder) Feed(change proto.SignalChange) {
	if change.Duration <= 0 {
		return
	}

	units, errFrac := quantize(change.Duration, d.config.UnitDurationMicros)
	if units <= 0 || errFrac > d.config.DriftLimit() {
		d.stats.DurationRejections++
		d.abort()
		d.rearm(change, units)
		return
	}

	switch d.state {
	case stateIdle:
		if change.Level == d.config.PreambleColor && d.matches(units, d.config.PreambleMarkUnits) {
			d.state = stateWaitSpace
		}

	case stateWaitSpace:
		switch {
		case change.Level == proto.Off && d.matches(units, d.config.PreambleSpaceUnits):
			d.startFrame()
		case change.Level == d.config.PreambleColor && d.matches(units, d.config.PreambleMarkUnits):
			d.state = stateWaitSpace
		default:
			d.abort()
			d.rearm(change, units)
		}

	case stateReadMark:
		if change.Level == proto.Off {
			d.stats.MarkRejections++
			d.abort()
			d.rearm(change, units)
			return
		}
		symbol, ok := proto.ColorToSymbol(change.Level)
		if !ok || !d.matches(units, d.config.SymbolMarkUnits) {
			d.stats.MarkRejections++
			d.abort()
			d.rearm(change, units)
			return
		}
		d.pendingSymbol = symbol
		d.state = stateReadSpace

	case stateReadSpace:
		if change.Level != proto.Off {
			d.stats.DurationRejections++
			d.abort()
			d.rearm(change, units)
			return
		}
		// Any off-period at least as long as SeparatorUnits is accepted
		// even beyond tolerance: an over-long gap may simply precede the
		// next preamble and shouldn't poison a frame already in progress.
		if !d.matches(units, d.config.SeparatorUnits) && units < d.config.SeparatorUnits {
			d.stats.DurationRejections++
			d.abort()
			d.rearm(change, units)
			return
		}
		d.handleSymbol(d.pendingSymbol)
		if d.state == stateReadSpace {
			d.state = stateReadMark
		}
	}
}

// handleSymbol accumulates a decoded 2-bit symbol into the current byte,
// most-significant pair first, and on every completed byte checks the
// header invariants that can be known so far.
func (d *Decoder) handleSymbol(symbol proto.Symbol) {
	d.currentByte = (d.currentByte << 2) | byte(symbol&0x03)
	d.bitsFilled += 2
	if d.bitsFilled != 8 {
		return
	}

	if len(d.frameBuffer) == cap(d.frameBuffer) {
		d.abort()
		return
	}
	d.frameBuffer = append(d.frameBuffer, d.currentByte)
	d.currentByte = 0
	d.bitsFilled = 0

	if len(d.frameBuffer) == 5 {
		d.expectedPayloadLength = int(binary.BigEndian.Uint16(d.frameBuffer[3:5]))
		d.payloadLengthKnown = true
		if d.expectedPayloadLength > d.config.MaxPayloadBytes {
			d.stats.LengthViolations++
			d.abort()
			return
		}
	}

	if d.payloadLengthKnown {
		total := proto.FrameOverheadSize + d.expectedPayloadLength
		switch {
		case len(d.frameBuffer) > total:
			// Corruption: the frame grew past its declared size. No
			// specific counter beyond abort's own truncated-frame bump.
			d.abort()
		case len(d.frameBuffer) == total:
			d.finalize()
		}
	}
}

// finalize validates a complete candidate frame and, on success, delivers
// the payload to the callback exactly once.
func (d *Decoder) finalize() {
	payload, reason := proto.ParseFrame(d.frameBuffer, d.config)

	switch reason {
	case proto.RejectHeaderTooShort, proto.RejectVersionMismatch:
		d.stats.HeaderRejects++
		d.abort()
		return
	case proto.RejectMagicMismatch:
		d.stats.MagicMismatches++
		d.abort()
		return
	case proto.RejectLengthViolation:
		d.stats.LengthViolations++
		d.abort()
		return
	case proto.RejectTruncated:
		d.stats.TruncatedFrames++
		d.abort()
		return
	case proto.RejectEnderMismatch:
		d.stats.EnderMismatches++
		d.abort()
		return
	case proto.RejectCRCFailure:
		d.stats.CRCFailures++
		d.abort()
		return
	}

	if d.callback != nil {
		d.callback(payload)
	}
	d.stats.FramesDecoded++
	d.resetFrameState()
}
