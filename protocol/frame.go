package protocol

import "encoding/binary"

// Frame holds the fields of a wire frame: the magic, version, length and
// crc header words, the payload, and the ender. Layout on the wire
// (big-endian throughout):
//
//	Magic(2) | Version(1) | Length(2) | CRC(2) | Payload(0-L) | Ender(2)
//
// Length counts payload bytes only; total frame size is 9+Length.
type Frame struct {
	Magic   uint16
	Version uint8
	Length  uint16
	CRC     uint16
	Payload []byte
	Ender   uint16
}

// BuildFrame assembles the wire bytes for payload under cfg: magic, version,
// big-endian length, CRC-16/CCITT over the payload alone, the payload
// itself, and the ender word. It returns ErrPayloadTooLarge if payload
// exceeds cfg.MaxPayloadBytes.
func BuildFrame(payload []byte, cfg ProtocolConfig) ([]byte, error) {
	if len(payload) > cfg.MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}

	total := FrameOverheadSize + len(payload)
	data := make([]byte, total)

	binary.BigEndian.PutUint16(data[magicOffset:], cfg.Magic)
	data[versionOffset] = cfg.Version
	binary.BigEndian.PutUint16(data[lengthOffset:], uint16(len(payload)))

	crc := CRC16(payload)
	binary.BigEndian.PutUint16(data[crcOffset:], crc)

	copy(data[payloadOffset:], payload)

	enderOffset := payloadOffset + len(payload)
	binary.BigEndian.PutUint16(data[enderOffset:], cfg.Ender)

	return data, nil
}

// FrameRejectReason classifies why ParseFrame rejected a candidate frame.
// The decoder maps each reason to exactly one DecoderStats counter.
type FrameRejectReason int

const (
	RejectNone FrameRejectReason = iota
	RejectHeaderTooShort
	RejectMagicMismatch
	RejectVersionMismatch
	RejectLengthViolation
	RejectTruncated
	RejectEnderMismatch
	RejectCRCFailure
)

// ParseFrame validates a complete candidate frame against cfg, in the exact
// order spec.md's finalize step lists: header length, magic, version,
// declared-length ceiling, actual-vs-declared length, ender, then CRC. On
// success it returns the payload and RejectNone; otherwise a nil payload and
// the first violated check.
func ParseFrame(data []byte, cfg ProtocolConfig) ([]byte, FrameRejectReason) {
	if len(data) < FrameOverheadSize {
		return nil, RejectHeaderTooShort
	}

	magic := binary.BigEndian.Uint16(data[magicOffset:])
	if magic != cfg.Magic {
		return nil, RejectMagicMismatch
	}

	if data[versionOffset] != cfg.Version {
		return nil, RejectVersionMismatch
	}

	length := binary.BigEndian.Uint16(data[lengthOffset:])
	if int(length) > cfg.MaxPayloadBytes {
		return nil, RejectLengthViolation
	}

	if len(data) != FrameOverheadSize+int(length) {
		return nil, RejectTruncated
	}

	crc := binary.BigEndian.Uint16(data[crcOffset:])
	payload := data[payloadOffset : payloadOffset+int(length)]

	enderOffset := payloadOffset + int(length)
	ender := binary.BigEndian.Uint16(data[enderOffset:])
	if ender != cfg.Ender {
		return nil, RejectEnderMismatch
	}

	if CRC16(payload) != crc {
		return nil, RejectCRCFailure
	}

	out := make([]byte, length)
	copy(out, payload)
	return out, RejectNone
}
