package protocol

import "testing"

func TestSymbolToColorMapping(t *testing.T) {
	tests := []struct {
		symbol Symbol
		want   LightLevel
	}{
		{0, Red},
		{1, Green},
		{2, Blue},
		{3, White},
	}
	for _, tt := range tests {
		if got := SymbolToColor(tt.symbol); got != tt.want {
			t.Errorf("SymbolToColor(%d) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}

func TestColorToSymbolRoundTrip(t *testing.T) {
	for s := Symbol(0); s < 4; s++ {
		color := SymbolToColor(s)
		got, ok := ColorToSymbol(color)
		if !ok {
			t.Fatalf("ColorToSymbol(%v) reported no symbol, want %d", color, s)
		}
		if got != s {
			t.Errorf("ColorToSymbol(SymbolToColor(%d)) = %d, want %d", s, got, s)
		}
	}
}

func TestColorToSymbolRejectsOff(t *testing.T) {
	if _, ok := ColorToSymbol(Off); ok {
		t.Error("ColorToSymbol(Off) reported a symbol, want none")
	}
}
