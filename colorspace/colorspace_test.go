package colorspace

import (
	"math"
	"testing"

	"github.com/pictor-go/pictor"
)

func rgbImage(t *testing.T, pixels ...uint8) *pictor.Image[uint8] {
	t.Helper()
	img, err := pictor.New[uint8](uint32(len(pixels)/3), 1, 3, false, pixels)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return img
}

func TestGrayscale(t *testing.T) {
	img := rgbImage(t, 30, 60, 90)
	out := Grayscale(img)
	if got := out.Info().Channels; got != 1 {
		t.Fatalf("Channels = %d, want 1", got)
	}
	if got := out.Data()[0]; got != 60 {
		t.Errorf("gray of (30, 60, 90) = %d, want 60", got)
	}
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	img, err := pictor.New[uint8](1, 1, 4, true, []uint8{30, 60, 90, 128})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	out := Grayscale(img)
	if got := out.Info().Channels; got != 2 {
		t.Fatalf("Channels = %d, want 2 (gray + alpha)", got)
	}
	if got := out.Data()[1]; got != 128 {
		t.Errorf("alpha = %d, want 128", got)
	}
}

func TestLinearizeRoundTrip(t *testing.T) {
	// Every uint8 value must survive linearize -> unlinearize exactly.
	data := make([]uint8, 256)
	for i := range data {
		data[i] = uint8(i)
	}
	img, err := pictor.New[uint8](256, 1, 1, false, data)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	back := UnlinearizeSRGB(LinearizeSRGB(img))
	for i, v := range back.Data() {
		if int(v) != i {
			t.Errorf("round trip of %d = %d", i, v)
		}
	}
}

func TestLinearizeRange(t *testing.T) {
	img := rgbImage(t, 0, 128, 255)
	out := LinearizeSRGB(img)
	got := out.Data()
	if got[0] != 0 {
		t.Errorf("linear(0) = %g, want 0", got[0])
	}
	if math.Abs(got[2]-1) > 1e-3 {
		t.Errorf("linear(255) = %g, want ~1", got[2])
	}
	if got[1] <= 0 || got[1] >= 1 {
		t.Errorf("linear(128) = %g, want inside (0, 1)", got[1])
	}
}

func TestWhiteTristimulus(t *testing.T) {
	x, y, z := D65.Tristimulus()
	if math.Abs(x-95.0489) > 1e-4 || y != 100 || math.Abs(z-108.8840) > 1e-4 {
		t.Errorf("D65.Tristimulus() = (%g, %g, %g)", x, y, z)
	}
	x, y, z = D50.Tristimulus()
	if math.Abs(x-96.4212) > 1e-4 || y != 100 || math.Abs(z-82.5188) > 1e-4 {
		t.Errorf("D50.Tristimulus() = (%g, %g, %g)", x, y, z)
	}
}

func TestLabWhitePoint(t *testing.T) {
	// sRGB white is defined against D65, so under that reference it maps
	// to L* ~ 100 with a* and b* ~ 0.
	lab := SRGBToLab(rgbImage(t, 255, 255, 255), D65)
	got := lab.Data()
	if math.Abs(got[0]-100) > 0.2 {
		t.Errorf("white L* = %g, want ~100", got[0])
	}
	if math.Abs(got[1]) > 0.5 || math.Abs(got[2]) > 0.5 {
		t.Errorf("white a*, b* = %g, %g, want ~0", got[1], got[2])
	}
}

func TestLabBlack(t *testing.T) {
	lab := SRGBToLab(rgbImage(t, 0, 0, 0), D65)
	got := lab.Data()
	if math.Abs(got[0]) > 1e-6 {
		t.Errorf("black L* = %g, want 0", got[0])
	}
}

func TestSRGBLabRoundTrip(t *testing.T) {
	colors := []uint8{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
		17, 130, 240,
		200, 200, 200,
	}
	img := rgbImage(t, colors...)
	for _, w := range []White{D50, D65} {
		back := LabToSRGB(SRGBToLab(img, w), w)
		for i, v := range back.Data() {
			if d := int(v) - int(colors[i]); d < -1 || d > 1 {
				t.Errorf("white %d: sample %d = %d, want %d +/- 1", w, i, v, colors[i])
			}
		}
	}
}

func TestXYZRoundTrip(t *testing.T) {
	img := rgbImage(t, 40, 90, 220)
	back := XYZToSRGB(SRGBToXYZ(img))
	for i, v := range back.Data() {
		if d := int(v) - int(img.Data()[i]); d < -1 || d > 1 {
			t.Errorf("sample %d = %d, want %d +/- 1", i, v, img.Data()[i])
		}
	}
}

func TestRGBToHSVPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		// Expected float HSV.
		h, s, v float64
	}{
		{"red", 255, 0, 0, 0, 1, 1},
		{"green", 0, 255, 0, 1.0 / 3, 1, 1},
		{"blue", 0, 0, 255, 2.0 / 3, 1, 1},
		{"white", 255, 255, 255, 0, 0, 1},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 128, 128, 128, 0, 0, 128.0 / 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RGBToHSVFloat(rgbImage(t, tt.r, tt.g, tt.b))
			got := out.Data()
			if math.Abs(got[0]-tt.h) > 1e-9 || math.Abs(got[1]-tt.s) > 1e-9 || math.Abs(got[2]-tt.v) > 1e-9 {
				t.Errorf("HSV = (%g, %g, %g), want (%g, %g, %g)", got[0], got[1], got[2], tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestHSVRoundTrip(t *testing.T) {
	colors := []uint8{
		255, 0, 0,
		12, 200, 99,
		240, 240, 10,
		1, 2, 3,
	}
	img := rgbImage(t, colors...)
	back := HSVFloatToRGB(RGBToHSVFloat(img))
	for i, v := range back.Data() {
		if v != colors[i] {
			t.Errorf("sample %d = %d, want %d", i, v, colors[i])
		}
	}
}

func TestHSVQuantizedRoundTrip(t *testing.T) {
	// The uint8 HSV representation loses precision; the round trip must
	// still land close to the original.
	colors := []uint8{200, 50, 120}
	back := HSVToRGB(RGBToHSV(rgbImage(t, colors...)))
	for i, v := range back.Data() {
		if d := int(v) - int(colors[i]); d < -6 || d > 6 {
			t.Errorf("sample %d = %d, want %d +/- 6", i, v, colors[i])
		}
	}
}
