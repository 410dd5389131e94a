package protocol

import "errors"

var (
	// ErrConfigInvalid is returned when a ProtocolConfig violates one of the
	// invariants in the data model: a non-positive UnitDurationMicros or
	// *Units field (FrameGapUnits excepted), a non-positive MaxPayloadBytes,
	// or a PreambleColor that is not one of the four colors.
	ErrConfigInvalid = errors.New("protocol config invalid")

	// ErrPayloadTooLarge is returned by Encode when the payload exceeds
	// config.MaxPayloadBytes.
	ErrPayloadTooLarge = errors.New("payload exceeds max payload bytes")
)
