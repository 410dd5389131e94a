package protocol

// LightLevel is a tagged variant of the five levels a transmitter can hold a
// channel at. Off carries no data symbol; the four colors each carry one of
// the two-bit quaternary symbols.
type LightLevel uint8

const (
	Off LightLevel = iota
	White
	Red
	Green
	Blue
)

func (l LightLevel) String() string {
	switch l {
	case Off:
		return "Off"
	case White:
		return "White"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// SignalChange is one observed (or emitted) level transition: a level held
// for duration microseconds. Non-positive durations carry no information and
// are discarded by the decoder on input.
type SignalChange struct {
	Level    LightLevel
	Duration int64
}

// Symbol is a two-bit datum carried by one colored pulse. Four symbols encode
// one byte, most-significant pair first.
type Symbol uint8

// symbolToColor maps a 2-bit symbol to the color pulse that carries it.
var symbolToColor = [4]LightLevel{Red, Green, Blue, White}

// SymbolToColor returns the LightLevel that carries symbol s. s is masked to
// its low two bits, so the function is total over byte input.
func SymbolToColor(s Symbol) LightLevel {
	return symbolToColor[s&0x03]
}

// ColorToSymbol is the inverse of SymbolToColor. Off, and any level outside
// the four colors, has no symbol: ok is false.
func ColorToSymbol(level LightLevel) (symbol Symbol, ok bool) {
	switch level {
	case Red:
		return 0, true
	case Green:
		return 1, true
	case Blue:
		return 2, true
	case White:
		return 3, true
	default:
		return 0, false
	}
}
