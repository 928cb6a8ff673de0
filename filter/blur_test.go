package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/pictor-go/pictor"
)

func constantImage(t *testing.T, w, h uint32, ch uint8, v uint8) *pictor.Image[uint8] {
	t.Helper()
	img := pictor.NewBlank[uint8](pictor.NewImageInfo(w, h, ch, false))
	data := img.Data()
	for i := range data {
		data[i] = v
	}
	return img
}

func TestBoxUnnormalizedSums(t *testing.T) {
	img, err := pictor.New[float64](3, 3, 1, false, []float64{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	out, err := Box(img, 3, Opts{Edge: pictor.EdgeExtend})
	if err != nil {
		t.Fatalf("Box() = %v", err)
	}
	for i, v := range out.Data() {
		if math.Abs(v-9) > 1e-12 {
			t.Errorf("Data()[%d] = %g, want 9", i, v)
		}
	}
}

func TestBoxNormalizedConstantIdentity(t *testing.T) {
	img := constantImage(t, 6, 6, 3, 120)
	out, err := BoxNormalized(img, 3, Opts{})
	if err != nil {
		t.Fatalf("BoxNormalized() = %v", err)
	}
	if !out.Equal(img) {
		t.Error("mean filter changed a constant image")
	}
}

func TestWeightedAvgValidation(t *testing.T) {
	img := constantImage(t, 4, 4, 1, 10)
	if _, err := WeightedAvg(img, 4, 2, Opts{}); !errors.Is(err, pictor.ErrInvalidParam) {
		t.Errorf("WeightedAvg(even size) = %v, want ErrInvalidParam", err)
	}
}

func TestWeightedAvgConstantIdentity(t *testing.T) {
	img := constantImage(t, 5, 5, 1, 77)
	out, err := WeightedAvg(img, 3, 4, Opts{})
	if err != nil {
		t.Fatalf("WeightedAvg() = %v", err)
	}
	if !out.Equal(img) {
		t.Error("weighted average changed a constant image")
	}
}

func TestGaussianConstantIdentity(t *testing.T) {
	img := constantImage(t, 8, 8, 1, 200)
	out, err := Gaussian(img, 5, 1.4, Opts{})
	if err != nil {
		t.Fatalf("Gaussian() = %v", err)
	}
	if !out.Equal(img) {
		t.Error("gaussian blur changed a constant image")
	}
}

func TestMedianValidation(t *testing.T) {
	img := constantImage(t, 4, 4, 1, 10)
	if _, err := Median(img, 2, Opts{}); !errors.Is(err, pictor.ErrInvalidParam) {
		t.Errorf("Median(even size) = %v, want ErrInvalidParam", err)
	}
}

func TestMedianConstantIdentity(t *testing.T) {
	img := constantImage(t, 6, 6, 3, 42)
	out, err := Median(img, 3, Opts{})
	if err != nil {
		t.Fatalf("Median() = %v", err)
	}
	if !out.Equal(img) {
		t.Error("median filter changed a constant image")
	}
}

func TestMedianRemovesOutlier(t *testing.T) {
	// A single hot pixel in a flat region disappears under a 3x3 median.
	img := constantImage(t, 5, 5, 1, 50)
	if err := img.SetPixel(2, 2, []uint8{255}); err != nil {
		t.Fatalf("SetPixel() = %v", err)
	}
	out, err := Median(img, 3, Opts{})
	if err != nil {
		t.Fatalf("Median() = %v", err)
	}
	got, err := out.Pixel(2, 2)
	if err != nil {
		t.Fatalf("Pixel() = %v", err)
	}
	if got[0] != 50 {
		t.Errorf("median at the outlier = %d, want 50", got[0])
	}
}

func TestMedianKnownWindow(t *testing.T) {
	img, err := pictor.New[uint8](3, 3, 1, false, []uint8{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	out, err := Median(img, 3, Opts{})
	if err != nil {
		t.Fatalf("Median() = %v", err)
	}
	got, err := out.Pixel(1, 1)
	if err != nil {
		t.Fatalf("Pixel() = %v", err)
	}
	if got[0] != 4 {
		t.Errorf("median of 0..8 = %d, want 4", got[0])
	}
}

func TestAlphaTrimmedMeanValidation(t *testing.T) {
	img := constantImage(t, 4, 4, 1, 10)
	tests := []struct {
		name       string
		size, trim int
	}{
		{"even size", 2, 0},
		{"negative trim", 3, -1},
		{"trim eats window", 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AlphaTrimmedMean(img, tt.size, tt.trim, Opts{}); !errors.Is(err, pictor.ErrInvalidParam) {
				t.Errorf("AlphaTrimmedMean(%d, %d) = %v, want ErrInvalidParam", tt.size, tt.trim, err)
			}
		})
	}
}

func TestAlphaTrimmedMeanFullTrimIsMedian(t *testing.T) {
	// With trim = (n-1)/2 only the middle value survives.
	img, err := pictor.New[uint8](3, 3, 1, false, []uint8{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	out, err := AlphaTrimmedMean(img, 3, 4, Opts{})
	if err != nil {
		t.Fatalf("AlphaTrimmedMean() = %v", err)
	}
	got, err := out.Pixel(1, 1)
	if err != nil {
		t.Fatalf("Pixel() = %v", err)
	}
	if got[0] != 4 {
		t.Errorf("fully trimmed mean = %d, want 4", got[0])
	}
}

func TestAlphaTrimmedMeanZeroTrimIsMean(t *testing.T) {
	img, err := pictor.New[uint8](3, 3, 1, false, []uint8{
		0, 0, 0,
		0, 9, 0,
		0, 0, 0,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	out, err := AlphaTrimmedMean(img, 3, 0, Opts{Edge: pictor.EdgeZero})
	if err != nil {
		t.Fatalf("AlphaTrimmedMean() = %v", err)
	}
	got, err := out.Pixel(1, 1)
	if err != nil {
		t.Fatalf("Pixel() = %v", err)
	}
	if got[0] != 1 {
		t.Errorf("mean of window = %d, want 1 (9/9)", got[0])
	}
}

func TestBilateralValidation(t *testing.T) {
	img := constantImage(t, 4, 4, 3, 10)
	if _, err := Bilateral(img, 0, 1, Opts{}); !errors.Is(err, pictor.ErrInvalidParam) {
		t.Errorf("Bilateral(range 0) = %v, want ErrInvalidParam", err)
	}
	if _, err := Bilateral(img, 1, 0, Opts{}); !errors.Is(err, pictor.ErrInvalidParam) {
		t.Errorf("Bilateral(spatial 0) = %v, want ErrInvalidParam", err)
	}
}

func TestBilateralConstantStable(t *testing.T) {
	img := constantImage(t, 6, 6, 3, 100)
	out, err := Bilateral(img, 10, 1, Opts{})
	if err != nil {
		t.Fatalf("Bilateral() = %v", err)
	}
	// Constant input must survive up to color conversion rounding.
	for i, v := range out.Data() {
		if int(v) < 99 || int(v) > 101 {
			t.Errorf("Data()[%d] = %d, want 100 +/- 1", i, v)
		}
	}
}
