package palette

import (
	"slices"
	"testing"
)

func containsColor(pal []RGB, c RGB) bool {
	return slices.Contains(pal, c)
}

func TestLineColors_Uniform(t *testing.T) {
	pal, _ := Palette(Vibrant)

	colors := LineColors("abc", ModeUniform, Vibrant, nil, testRand(1))
	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	for i, c := range colors {
		if c != colors[0] {
			t.Errorf("colors[%d] = %v differs from colors[0] = %v in uniform mode",
				i, c, colors[0])
		}
	}
	if !containsColor(pal, colors[0]) {
		t.Errorf("uniform color %v not drawn from the vibrant palette", colors[0])
	}
}

func TestLineColors_PerGlyphDrawsFromPalette(t *testing.T) {
	pal, _ := Palette(Pastel)

	colors := LineColors("abcdefghij", ModePerGlyph, Pastel, nil, testRand(2))
	if len(colors) != 10 {
		t.Fatalf("len = %d, want 10", len(colors))
	}
	for i, c := range colors {
		if !containsColor(pal, c) {
			t.Errorf("colors[%d] = %v not in pastel palette", i, c)
		}
	}
}

func TestLineColors_Gradient(t *testing.T) {
	custom := []RGB{{0, 0, 0}, {200, 100, 50}}

	colors := LineColors("abcde", ModeGradient, "", custom, testRand(3))
	if len(colors) != 5 {
		t.Fatalf("len = %d, want 5", len(colors))
	}
	if colors[0] != custom[0] {
		t.Errorf("first = %v, want palette[0] %v", colors[0], custom[0])
	}
	if colors[4] != custom[1] {
		t.Errorf("last = %v, want palette[1] %v", colors[4], custom[1])
	}
	// Midpoint interpolates componentwise.
	if mid := colors[2]; mid != (RGB{100, 50, 25}) {
		t.Errorf("midpoint = %v, want {100 50 25}", mid)
	}
	// Monotone in each component for this pair.
	for i := 1; i < len(colors); i++ {
		if colors[i].R < colors[i-1].R {
			t.Errorf("gradient not monotone at %d: %v < %v", i, colors[i].R, colors[i-1].R)
		}
	}
}

func TestLineColors_GradientDegeneratesWithOneColor(t *testing.T) {
	custom := []RGB{{10, 20, 30}}

	colors := LineColors("abcd", ModeGradient, "", custom, testRand(4))
	for i, c := range colors {
		if c != custom[0] {
			t.Errorf("colors[%d] = %v, want %v (uniform fallback)", i, c, custom[0])
		}
	}
}

func TestLineColors_RandomResolvesToUniformOrPerGlyph(t *testing.T) {
	// With one custom color both sub-modes collapse to the same output,
	// so check only shape; with many draws both branches get exercised.
	for seed := uint64(0); seed < 8; seed++ {
		colors := LineColors("xyz", ModeRandom, Vibrant, nil, testRand(seed))
		if len(colors) != 3 {
			t.Fatalf("seed %d: len = %d, want 3", seed, len(colors))
		}
	}
}

func TestLineColors_UnrecognizedModeFallsBackToUniform(t *testing.T) {
	colors := LineColors("abc", Mode("sparkly"), Vibrant, nil, testRand(5))
	for i, c := range colors {
		if c != colors[0] {
			t.Errorf("colors[%d] = %v, want uniform fallback", i, c)
		}
	}
}

func TestLineColors_CustomOverridesNamedPalette(t *testing.T) {
	custom := []RGB{{9, 9, 9}}
	colors := LineColors("ab", ModeUniform, Vibrant, custom, testRand(6))
	for _, c := range colors {
		if c != custom[0] {
			t.Errorf("color = %v, want custom %v", c, custom[0])
		}
	}
}

func TestLineColors_EmptyText(t *testing.T) {
	if got := LineColors("", ModeUniform, Vibrant, nil, testRand(7)); got != nil {
		t.Errorf("LineColors(\"\") = %v, want nil", got)
	}
}

func TestLineColors_CountsRunesNotBytes(t *testing.T) {
	colors := LineColors("héllo", ModeUniform, Vibrant, nil, testRand(8))
	if len(colors) != 5 {
		t.Errorf("len = %d for 5-rune text, want 5", len(colors))
	}
}

func TestBackgroundFor(t *testing.T) {
	tests := []struct {
		name      string
		textColor RGB
		requested string
		want      RGB
	}{
		{name: "auto dark text gets white", textColor: RGB{20, 20, 20}, requested: Auto, want: White},
		{name: "auto light text gets black", textColor: RGB{240, 240, 240}, requested: Auto, want: Black},
		{name: "explicit hex", textColor: Black, requested: "#ff8000", want: RGB{255, 128, 0}},
		{name: "short hex", textColor: Black, requested: "0f0", want: RGB{0, 255, 0}},
		{name: "garbage falls back to white", textColor: Black, requested: "chartreuse??", want: White},
		{name: "empty falls back to white", textColor: Black, requested: "", want: White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BackgroundFor(tt.textColor, tt.requested); got != tt.want {
				t.Errorf("BackgroundFor(%v, %q) = %v, want %v",
					tt.textColor, tt.requested, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   RGB
		wantOK bool
	}{
		{in: "#102030", want: RGB{16, 32, 48}, wantOK: true},
		{in: "102030", want: RGB{16, 32, 48}, wantOK: true},
		{in: "#abc", want: RGB{170, 187, 204}, wantOK: true},
		{in: "ABC", want: RGB{170, 187, 204}, wantOK: true},
		{in: "", want: White, wantOK: false},
		{in: "#12", want: White, wantOK: false},
		{in: "zzzzzz", want: White, wantOK: false},
		{in: "#1020zz", want: White, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)",
					tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
