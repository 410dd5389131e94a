package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBuildFrameSize(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty payload", []byte{}},
		{"small payload", []byte{1, 2, 3, 4, 5}},
		{"max payload", bytes.Repeat([]byte{0xAA}, cfg.MaxPayloadBytes)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := BuildFrame(tt.payload, cfg)
			if err != nil {
				t.Fatalf("BuildFrame() error = %v", err)
			}

			wantLen := FrameOverheadSize + len(tt.payload)
			if len(data) != wantLen {
				t.Errorf("len(data) = %d, want %d", len(data), wantLen)
			}

			if got := binary.BigEndian.Uint16(data[magicOffset:]); got != cfg.Magic {
				t.Errorf("magic = %#04x, want %#04x", got, cfg.Magic)
			}
			if data[versionOffset] != cfg.Version {
				t.Errorf("version = %d, want %d", data[versionOffset], cfg.Version)
			}
			if got := binary.BigEndian.Uint16(data[lengthOffset:]); int(got) != len(tt.payload) {
				t.Errorf("length = %d, want %d", got, len(tt.payload))
			}

			enderOff := payloadOffset + len(tt.payload)
			if got := binary.BigEndian.Uint16(data[enderOff:]); got != cfg.Ender {
				t.Errorf("ender = %#04x, want %#04x", got, cfg.Ender)
			}

			gotCRC := binary.BigEndian.Uint16(data[crcOffset:])
			wantCRC := CRC16(tt.payload)
			if gotCRC != wantCRC {
				t.Errorf("crc = %#04x, want %#04x", gotCRC, wantCRC)
			}
		})
	}
}

func TestBuildFramePayloadTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPayloadBytes = 4

	_, err := BuildFrame(bytes.Repeat([]byte{0x01}, 5), cfg)
	if err != ErrPayloadTooLarge {
		t.Errorf("BuildFrame() error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	cfg := DefaultConfig()

	tests := [][]byte{
		{},
		[]byte("Hello"),
		bytes.Repeat([]byte{0xAA}, cfg.MaxPayloadBytes),
	}

	for _, payload := range tests {
		data, err := BuildFrame(payload, cfg)
		if err != nil {
			t.Fatalf("BuildFrame() error = %v", err)
		}

		got, reason := ParseFrame(data, cfg)
		if reason != RejectNone {
			t.Fatalf("ParseFrame() reason = %v, want RejectNone", reason)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("ParseFrame() payload = %v, want %v", got, payload)
		}
	}
}

func TestParseFrameRejections(t *testing.T) {
	cfg := DefaultConfig()

	validFrame := func(payload []byte) []byte {
		data, err := BuildFrame(payload, cfg)
		if err != nil {
			t.Fatalf("BuildFrame() error = %v", err)
		}
		return data
	}

	tests := []struct {
		name string
		data []byte
		want FrameRejectReason
	}{
		{
			name: "too short",
			data: []byte{0x01, 0x02},
			want: RejectHeaderTooShort,
		},
		{
			name: "bad magic",
			data: func() []byte {
				d := validFrame([]byte("abc"))
				d[0] ^= 0xFF
				return d
			}(),
			want: RejectMagicMismatch,
		},
		{
			name: "bad version",
			data: func() []byte {
				d := validFrame([]byte("abc"))
				d[versionOffset] = cfg.Version + 1
				return d
			}(),
			want: RejectVersionMismatch,
		},
		{
			name: "declared length exceeds max",
			data: func() []byte {
				d := validFrame([]byte("abc"))
				binary.BigEndian.PutUint16(d[lengthOffset:], uint16(cfg.MaxPayloadBytes+1))
				return d
			}(),
			want: RejectLengthViolation,
		},
		{
			name: "truncated payload",
			data: func() []byte {
				d := validFrame([]byte("abcdef"))
				return d[:len(d)-2]
			}(),
			want: RejectTruncated,
		},
		{
			name: "bad ender",
			data: func() []byte {
				d := validFrame([]byte("xy"))
				d[len(d)-1] ^= 0xFF
				return d
			}(),
			want: RejectEnderMismatch,
		},
		{
			name: "corrupt crc",
			data: func() []byte {
				d := validFrame([]byte("abc"))
				d[crcOffset] ^= 0xFF
				return d
			}(),
			want: RejectCRCFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := ParseFrame(tt.data, cfg)
			if got != tt.want {
				t.Errorf("ParseFrame() reason = %v, want %v", got, tt.want)
			}
		})
	}
}
