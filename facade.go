// Package chromalink is a façade over the colored-light link-layer codec:
// protocol holds the stateless wire format and timing types, transport the
// stateful Encoder/Decoder built on top of them.
package chromalink

import (
	proto "github.com/ystepanoff/chromalink/protocol"
	"github.com/ystepanoff/chromalink/transport"
)

// Re-exported types, so callers need only import this package.
type (
	LightLevel     = proto.LightLevel
	SignalChange   = proto.SignalChange
	Symbol         = proto.Symbol
	ProtocolConfig = proto.ProtocolConfig
	Encoder        = transport.Encoder
	Decoder        = transport.Decoder
	DecoderStats   = transport.DecoderStats
	Pipe           = transport.Pipe
)

// Re-exported color constants.
const (
	Off   = proto.Off
	White = proto.White
	Red   = proto.Red
	Green = proto.Green
	Blue  = proto.Blue
)

// Re-exported errors.
var (
	ErrConfigInvalid   = proto.ErrConfigInvalid
	ErrPayloadTooLarge = proto.ErrPayloadTooLarge
)

// DefaultConfig returns the protocol's default tuning parameters.
func DefaultConfig() ProtocolConfig { return proto.DefaultConfig() }

// NewEncoder validates config and returns an Encoder bound to it.
func NewEncoder(config ProtocolConfig) (*Encoder, error) {
	return transport.NewEncoder(config)
}

// NewDecoder validates config and returns a Decoder that delivers every
// successfully decoded payload to callback.
func NewDecoder(callback func([]byte), config ProtocolConfig) (*Decoder, error) {
	return transport.NewDecoder(callback, config)
}

// NewPipe returns an in-memory SignalChange ring buffer of the given
// capacity, useful for wiring an Encoder's output into a Decoder's Feed
// without a physical channel.
func NewPipe(capacity int) *Pipe { return transport.NewPipe(capacity) }
