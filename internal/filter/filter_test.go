package filter

import (
	"image"
	"math"
	"testing"
)

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{name: "identity for zero radius", radius: 0},
		{name: "identity for negative radius", radius: -2},
		{name: "small radius", radius: 0.5},
		{name: "large radius", radius: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := GaussianKernel(tt.radius)
			if tt.radius <= 0 {
				if len(k) != 1 || k[0] != 1.0 {
					t.Fatalf("kernel = %v, want [1.0]", k)
				}
				return
			}
			if len(k)%2 != 1 {
				t.Errorf("kernel length = %d, want odd", len(k))
			}
			sum := 0.0
			for _, v := range k {
				sum += v
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("kernel sum = %v, want 1.0", sum)
			}
			// Symmetric around the center.
			for i := 0; i < len(k)/2; i++ {
				if math.Abs(k[i]-k[len(k)-1-i]) > 1e-12 {
					t.Errorf("kernel not symmetric at %d: %v vs %v",
						i, k[i], k[len(k)-1-i])
				}
			}
		})
	}
}

func TestCachedGaussianKernel_SharesInstances(t *testing.T) {
	k1 := CachedGaussianKernel(0.75)
	k2 := CachedGaussianKernel(0.75)
	if &k1[0] != &k2[0] {
		t.Error("same radius returned different kernel instances")
	}
}

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestBlur_ZeroRadiusIsCopy(t *testing.T) {
	src := uniformGray(8, 8, 200)
	src.Pix[3*src.Stride+3] = 10

	out := Blur(src, 0)
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d (zero radius must copy)",
				i, out.Pix[i], src.Pix[i])
		}
	}
	// And it must be a copy, not an alias.
	out.Pix[0] = 0
	if src.Pix[0] == 0 {
		t.Error("Blur aliased the source buffer")
	}
}

func TestBlur_PreservesUniformImages(t *testing.T) {
	src := uniformGray(16, 16, 100)
	out := Blur(src, 1.5)
	for i, v := range out.Pix {
		if v != 100 {
			t.Fatalf("pixel %d = %d, want 100 (blur of uniform is uniform)", i, v)
		}
	}
}

func TestBlur_SmoothsAnImpulse(t *testing.T) {
	src := uniformGray(11, 11, 0)
	src.Pix[5*src.Stride+5] = 255

	out := Blur(src, 1)

	center := out.Pix[5*out.Stride+5]
	if center >= 255 {
		t.Errorf("center = %d, want < 255 after blur", center)
	}
	neighbor := out.Pix[5*out.Stride+6]
	if neighbor == 0 {
		t.Error("neighbor = 0, want energy spread from impulse")
	}
	if neighbor >= center {
		t.Errorf("neighbor %d >= center %d, want monotone falloff", neighbor, center)
	}
}

func TestDilateDark_GrowsInk(t *testing.T) {
	src := uniformGray(9, 9, 255)
	src.Pix[4*src.Stride+4] = 0

	out := DilateDark(src)

	// The dark pixel spreads to its full 3x3 neighborhood.
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if v := out.Pix[(4+dy)*out.Stride+(4+dx)]; v != 0 {
				t.Errorf("pixel (%d,%d) = %d, want 0 after dilation", 4+dx, 4+dy, v)
			}
		}
	}
	// Pixels outside the neighborhood stay white.
	if v := out.Pix[1*out.Stride+1]; v != 255 {
		t.Errorf("far pixel = %d, want 255", v)
	}
}
