package protocol

// Wire frame sizing (platform independent). Higher layers depend on this
// file rather than recomputing offsets.
//
// Layout (all multi-byte integers big-endian):
//
//	Magic (2) | Version (1) | Length (2) | CRC (2) | Payload (0-L) | Ender (2)
//
// FrameOverheadSize is everything except the payload, i.e. total frame size
// minus payload length.
const (
	MagicSize   = 2
	VersionSize = 1
	LengthSize  = 2
	CRCSize     = 2
	EnderSize   = 2

	// FrameOverheadSize is the number of header+trailer bytes surrounding
	// the payload: 9 bytes total (2+1+2+2+2).
	FrameOverheadSize = MagicSize + VersionSize + LengthSize + CRCSize + EnderSize

	// Offsets into an assembled frame.
	magicOffset   = 0
	versionOffset = magicOffset + MagicSize
	lengthOffset  = versionOffset + VersionSize
	crcOffset     = lengthOffset + LengthSize
	payloadOffset = crcOffset + CRCSize
)
