// Package tone adjusts the tonal response of uint8 images: brightness,
// contrast, saturation, gamma and histogram equalization. The uint8
// paths are lookup-table driven; the Lab variants operate on the L*
// channel in CIELAB for perceptually uniform adjustments.
package tone

import (
	"math"
	"sort"

	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/colorspace"
)

// Brightness adds bias to every RGB sample, saturating to [0, 255].
// bias must lie in [-255, 255].
func Brightness(input *pictor.Image[uint8], bias int) (*pictor.Image[uint8], error) {
	if bias < -255 || bias > 255 {
		return nil, pictor.InvalidParamf("brightness bias %d outside [-255, 255]", bias)
	}
	var lut [256]uint8
	for i := range lut {
		lut[i] = pictor.ClampSample[uint8](float64(i + bias))
	}
	return pictor.MapChannelsWithAlpha(input,
		func(v uint8) uint8 { return lut[v] },
		func(a uint8) uint8 { return a }), nil
}

// BrightnessLab adds bias (scaled into L* units) to the L* channel in
// CIELAB. bias must lie in [-255, 255].
func BrightnessLab(input *pictor.Image[uint8], bias int) (*pictor.Image[uint8], error) {
	if bias < -255 || bias > 255 {
		return nil, pictor.InvalidParamf("brightness bias %d outside [-255, 255]", bias)
	}
	lab := colorspace.SRGBToLab(input, colorspace.D50)
	delta := float64(bias) / 255 * 100
	if err := lab.EditChannel(0, func(v float64) float64 { return v + delta }); err != nil {
		return nil, err
	}
	return colorspace.LabToSRGB(lab, colorspace.D50), nil
}

// Contrast multiplies every RGB sample by gain, saturating to [0, 255].
// gain must be non-negative.
func Contrast(input *pictor.Image[uint8], gain float64) (*pictor.Image[uint8], error) {
	if gain < 0 || math.IsNaN(gain) {
		return nil, pictor.InvalidParamf("contrast gain %g is negative", gain)
	}
	var lut [256]uint8
	for i := range lut {
		lut[i] = pictor.ClampSample[uint8](float64(i) * gain)
	}
	return pictor.MapChannelsWithAlpha(input,
		func(v uint8) uint8 { return lut[v] },
		func(a uint8) uint8 { return a }), nil
}

// ContrastLab multiplies the L* channel in CIELAB by gain. gain must be
// non-negative.
func ContrastLab(input *pictor.Image[uint8], gain float64) (*pictor.Image[uint8], error) {
	if gain < 0 || math.IsNaN(gain) {
		return nil, pictor.InvalidParamf("contrast gain %g is negative", gain)
	}
	lab := colorspace.SRGBToLab(input, colorspace.D50)
	if err := lab.EditChannel(0, func(v float64) float64 { return v * gain }); err != nil {
		return nil, err
	}
	return colorspace.LabToSRGB(lab, colorspace.D50), nil
}

// Saturation adds bias to the saturation channel in HSV, saturating to
// [0, 255]. bias must lie in [-255, 255].
func Saturation(input *pictor.Image[uint8], bias int) (*pictor.Image[uint8], error) {
	if bias < -255 || bias > 255 {
		return nil, pictor.InvalidParamf("saturation bias %d outside [-255, 255]", bias)
	}
	hsv := colorspace.RGBToHSV(input)
	if err := hsv.EditChannel(1, func(v uint8) uint8 {
		return pictor.ClampSample[uint8](float64(int(v) + bias))
	}); err != nil {
		return nil, err
	}
	return colorspace.HSVToRGB(hsv), nil
}

// Gamma applies the power-law correction v' = (v/max)^gamma * max to
// every RGB sample. gamma must be non-negative; max is the image's full
// intensity, normally 255.
func Gamma(input *pictor.Image[uint8], gamma float64, max uint8) (*pictor.Image[uint8], error) {
	if gamma < 0 || math.IsNaN(gamma) {
		return nil, pictor.InvalidParamf("gamma %g is negative", gamma)
	}
	if max == 0 {
		return nil, pictor.InvalidParamf("gamma max intensity is zero")
	}
	var lut [256]uint8
	for i := range lut {
		lut[i] = pictor.ClampSample[uint8](math.Pow(float64(i)/float64(max), gamma) * float64(max))
	}
	return pictor.MapChannelsWithAlpha(input,
		func(v uint8) uint8 { return lut[v] },
		func(a uint8) uint8 { return a }), nil
}

// HistogramEqualization spreads the L* histogram in CIELAB. alpha in
// [0, 1] blends between no equalization (0) and full equalization (1);
// precision controls the histogram bin resolution and must be positive.
func HistogramEqualization(input *pictor.Image[uint8], alpha float64, white colorspace.White, precision float64) (*pictor.Image[uint8], error) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return nil, pictor.InvalidParamf("equalization alpha %g outside [0, 1]", alpha)
	}
	if precision <= 0 || math.IsNaN(precision) {
		return nil, pictor.InvalidParamf("equalization precision %g is not positive", precision)
	}

	lab := colorspace.SRGBToLab(input, white)
	percentiles := lightnessPercentiles(lab, precision)

	if err := lab.EditChannel(0, func(v float64) float64 {
		key := int(math.Round(v * precision))
		return alpha*percentiles[key]*100 + (1-alpha)*v
	}); err != nil {
		return nil, err
	}
	return colorspace.LabToSRGB(lab, white), nil
}

// lightnessPercentiles builds the cumulative distribution of the L*
// channel, binned by precision.
func lightnessPercentiles(lab *pictor.Image[float64], precision float64) map[int]float64 {
	histogram := make(map[int]int)
	ch := int(lab.Info().Channels)
	data := lab.Data()
	for i := 0; i < len(data); i += ch {
		histogram[int(math.Round(data[i]*precision))]++
	}

	keys := make([]int, 0, len(histogram))
	for k := range histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	percentiles := make(map[int]float64, len(keys))
	total := float64(lab.Info().Size())
	sum := 0
	for _, k := range keys {
		sum += histogram[k]
		percentiles[k] = float64(sum) / total
	}
	return percentiles
}
