package transport

// DecoderStats is a read-only snapshot of a Decoder's diagnostic counters.
// Every counter starts at zero and is monotonic for the lifetime of the
// Decoder: Reset clears decode state but never these counters, matching the
// original source's "reset preserves stats, by design" behavior.
type DecoderStats struct {
	FramesDecoded      uint64
	MagicMismatches    uint64
	HeaderRejects      uint64
	LengthViolations   uint64
	CRCFailures        uint64
	EnderMismatches    uint64
	DurationRejections uint64
	MarkRejections     uint64
	TruncatedFrames    uint64
}
