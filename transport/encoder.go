// Package transport implements the stateful halves of the codec: the
// Encoder that turns a payload into a pulse sequence, and the Decoder that
// recovers a payload from one. protocol holds the stateless wire format and
// timing types both build on.
package transport

import (
	proto "github.com/ystepanoff/chromalink/protocol"
)

// Encoder turns payloads into SignalChange sequences under a fixed
// ProtocolConfig.
type Encoder struct {
	config proto.ProtocolConfig
}

// NewEncoder validates config and returns an Encoder bound to it.
func NewEncoder(config proto.ProtocolConfig) (*Encoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{config: config}, nil
}

// Config returns the Encoder's current configuration.
func (e *Encoder) Config() proto.ProtocolConfig { return e.config }

// Configure validates newConfig and, only if it's valid, replaces the
// Encoder's configuration. On failure the Encoder is left exactly as it was.
func (e *Encoder) Configure(newConfig proto.ProtocolConfig) error {
	if err := newConfig.Validate(); err != nil {
		return err
	}
	e.config = newConfig
	return nil
}

// Encode builds the wire frame for payload and emits it as a SignalChange
// sequence: preamble mark, preamble space, then for every byte four
// mark/space pulse pairs (MSB symbol first), and finally a trailing
// inter-frame gap (omitted when FrameGapUnits <= 0). It returns
// ErrPayloadTooLarge if len(payload) exceeds the configured
// MaxPayloadBytes.
func (e *Encoder) Encode(payload []byte) ([]proto.SignalChange, error) {
	frame, err := proto.BuildFrame(payload, e.config)
	if err != nil {
		return nil, err
	}

	cfg := e.config
	unit := cfg.UnitDurationMicros

	changes := make([]proto.SignalChange, 0, 2+8*len(frame)+1)

	emit := func(level proto.LightLevel, units int64) {
		if units <= 0 {
			return
		}
		changes = append(changes, proto.SignalChange{
			Level:    level,
			Duration: units * unit,
		})
	}

	emit(cfg.PreambleColor, cfg.PreambleMarkUnits)
	emit(proto.Off, cfg.PreambleSpaceUnits)

	for _, b := range frame {
		for shift := 6; shift >= 0; shift -= 2 {
			symbol := proto.Symbol((b >> shift) & 0x03)
			emit(proto.SymbolToColor(symbol), cfg.SymbolMarkUnits)
			emit(proto.Off, cfg.SeparatorUnits)
		}
	}

	emit(proto.Off, cfg.FrameGapUnits)

	return changes, nil
}
