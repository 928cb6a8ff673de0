// Package colorspace converts images between color representations:
// grayscale, sRGB (gamma and linear), CIE XYZ, CIELAB and HSV.
//
// Conversions follow the alpha-last convention: when the source image
// carries an alpha channel it is passed through unchanged and the color
// channels alone are converted.
package colorspace

import (
	"math"

	"github.com/pictor-go/pictor"
)

// White selects the reference white point for CIELAB conversions.
type White uint8

const (
	// D50 is the horizon-light reference white.
	D50 White = iota

	// D65 is the noon-daylight reference white.
	D65
)

// Tristimulus returns the XYZ tristimulus values of the reference white.
func (w White) Tristimulus() (x, y, z float64) {
	switch w {
	case D65:
		return 95.0489, 100.0, 108.8840
	default:
		return 96.4212, 100.0, 82.5188
	}
}

// gamma is the exponent of the sRGB transfer approximation.
const gamma = 2.2

// srgbToXYZ is the linear-sRGB to CIE XYZ matrix (row-major).
var srgbToXYZ = [9]float64{
	0.4124564, 0.3575761, 0.1804375,
	0.2126729, 0.7151522, 0.0721750,
	0.0193339, 0.1191920, 0.9503041,
}

// xyzToSRGB is the CIE XYZ to linear-sRGB matrix (row-major).
var xyzToSRGB = [9]float64{
	3.2404542, -1.5371385, -0.4985314,
	-0.9692660, 1.8760108, 0.0415560,
	0.0556434, -0.2040259, 1.0572252,
}

// Grayscale converts the color channels to a single luminance channel by
// averaging them. Alpha, when present, is preserved as the last channel.
func Grayscale[T pictor.Sample](input *pictor.Image[T]) *pictor.Image[T] {
	return pictor.MapPixelsWithAlpha(input, 1, func(src []T, dst []T) {
		var sum float64
		for _, v := range src {
			sum += float64(v)
		}
		dst[0] = pictor.ClampSample[T](sum / float64(len(src)))
	}, func(a T) T { return a })
}

// LinearizeSRGB converts a uint8 sRGB image with channels in [0, 255] to
// a linearized float64 image with channels in [0, 1].
func LinearizeSRGB(input *pictor.Image[uint8]) *pictor.Image[float64] {
	var lut [256]float64
	for i := range lut {
		v := float64(i)
		if v <= 10 {
			lut[i] = v / 3294.0
		} else {
			lut[i] = math.Pow((v+14.025)/269.025, gamma)
		}
	}
	return pictor.MapChannelsWithAlpha(input,
		func(v uint8) float64 { return lut[v] },
		func(a uint8) float64 { return float64(a) / 255 })
}

// UnlinearizeSRGB converts a linearized float64 image with channels in
// [0, 1] back to a uint8 sRGB image with channels in [0, 255].
func UnlinearizeSRGB(input *pictor.Image[float64]) *pictor.Image[uint8] {
	return pictor.MapChannelsWithAlpha(input,
		func(v float64) uint8 {
			if v <= 0.0031308 {
				return pictor.ClampSample[uint8](v * 3294.6)
			}
			return pictor.ClampSample[uint8](269.025*math.Pow(v, 1/gamma) - 14.025)
		},
		func(a float64) uint8 { return pictor.ClampSample[uint8](a * 255) })
}

// LinSRGBToXYZ converts a linearized sRGB image to CIE XYZ. Both sides
// use float64 channels in [0, 1].
func LinSRGBToXYZ(input *pictor.Image[float64]) *pictor.Image[float64] {
	return mulPixels(input, &srgbToXYZ)
}

// XYZToLinSRGB converts a CIE XYZ image to linearized sRGB. Both sides
// use float64 channels in [0, 1].
func XYZToLinSRGB(input *pictor.Image[float64]) *pictor.Image[float64] {
	return mulPixels(input, &xyzToSRGB)
}

// XYZToLab converts a CIE XYZ image with channels in [0, 1] to CIELAB
// with L* in [0, 100] and a*, b* in [-128, 127].
func XYZToLab(input *pictor.Image[float64], w White) *pictor.Image[float64] {
	xn, yn, zn := w.Tristimulus()
	ch := input.Info().ChannelsNonAlpha()
	return pictor.MapPixelsWithAlpha(input, ch, func(src, dst []float64) {
		x := xyzToLabFn(src[0] * 100 / xn)
		y := xyzToLabFn(src[1] * 100 / yn)
		z := xyzToLabFn(src[2] * 100 / zn)
		dst[0] = 116*y - 16
		dst[1] = 500 * (x - y)
		dst[2] = 200 * (y - z)
	}, func(a float64) float64 { return a })
}

// LabToXYZ converts a CIELAB image back to CIE XYZ with channels in
// [0, 1].
func LabToXYZ(input *pictor.Image[float64], w White) *pictor.Image[float64] {
	xn, yn, zn := w.Tristimulus()
	ch := input.Info().ChannelsNonAlpha()
	return pictor.MapPixelsWithAlpha(input, ch, func(src, dst []float64) {
		n := (src[0] + 16) / 116
		dst[0] = xn * labToXYZFn(n+src[1]/500) / 100
		dst[1] = yn * labToXYZFn(n) / 100
		dst[2] = zn * labToXYZFn(n-src[2]/200) / 100
	}, func(a float64) float64 { return a })
}

// SRGBToXYZ converts a uint8 sRGB image to CIE XYZ float64 channels in
// [0, 1].
func SRGBToXYZ(input *pictor.Image[uint8]) *pictor.Image[float64] {
	return LinSRGBToXYZ(LinearizeSRGB(input))
}

// XYZToSRGB converts a CIE XYZ image to a uint8 sRGB image.
func XYZToSRGB(input *pictor.Image[float64]) *pictor.Image[uint8] {
	return UnlinearizeSRGB(XYZToLinSRGB(input))
}

// SRGBToLab converts a uint8 sRGB image to CIELAB.
func SRGBToLab(input *pictor.Image[uint8], w White) *pictor.Image[float64] {
	return XYZToLab(SRGBToXYZ(input), w)
}

// LabToSRGB converts a CIELAB image back to a uint8 sRGB image.
func LabToSRGB(input *pictor.Image[float64], w White) *pictor.Image[uint8] {
	return XYZToSRGB(LabToXYZ(input, w))
}

// RGBToHSV converts a uint8 RGB image to HSV with all three channels
// quantized to [0, 255].
func RGBToHSV(input *pictor.Image[uint8]) *pictor.Image[uint8] {
	return pictor.MapPixelsWithAlpha(input, 3, func(src, dst []uint8) {
		h, s, v := rgbToHSV(float64(src[0])/255, float64(src[1])/255, float64(src[2])/255)
		dst[0] = pictor.ClampSample[uint8](h * 255)
		dst[1] = pictor.ClampSample[uint8](s * 255)
		dst[2] = pictor.ClampSample[uint8](v * 255)
	}, func(a uint8) uint8 { return a })
}

// HSVToRGB converts a uint8 HSV image with channels in [0, 255] back to
// RGB.
func HSVToRGB(input *pictor.Image[uint8]) *pictor.Image[uint8] {
	return pictor.MapPixelsWithAlpha(input, 3, func(src, dst []uint8) {
		r, g, b := hsvToRGB(float64(src[0])/255, float64(src[1])/255, float64(src[2])/255)
		dst[0] = pictor.ClampSample[uint8](r * 255)
		dst[1] = pictor.ClampSample[uint8](g * 255)
		dst[2] = pictor.ClampSample[uint8](b * 255)
	}, func(a uint8) uint8 { return a })
}

// RGBToHSVFloat converts a uint8 RGB image to float64 HSV with channels
// in [0, 1].
func RGBToHSVFloat(input *pictor.Image[uint8]) *pictor.Image[float64] {
	return pictor.MapPixelsWithAlpha(input, 3, func(src []uint8, dst []float64) {
		dst[0], dst[1], dst[2] = rgbToHSV(float64(src[0])/255, float64(src[1])/255, float64(src[2])/255)
	}, func(a uint8) float64 { return float64(a) / 255 })
}

// HSVFloatToRGB converts a float64 HSV image with channels in [0, 1]
// back to a uint8 RGB image.
func HSVFloatToRGB(input *pictor.Image[float64]) *pictor.Image[uint8] {
	return pictor.MapPixelsWithAlpha(input, 3, func(src []float64, dst []uint8) {
		r, g, b := hsvToRGB(src[0], src[1], src[2])
		dst[0] = pictor.ClampSample[uint8](r * 255)
		dst[1] = pictor.ClampSample[uint8](g * 255)
		dst[2] = pictor.ClampSample[uint8](b * 255)
	}, func(a float64) uint8 { return pictor.ClampSample[uint8](a * 255) })
}

// rgbToHSV converts one RGB triple in [0, 1] to HSV in [0, 1].
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	v = maxC
	if maxC > 0 {
		s = delta / maxC
	}
	if delta > 0 {
		switch maxC {
		case r:
			h = (g - b) / delta
		case g:
			h = (b-r)/delta + 2
		default:
			h = (r-g)/delta + 4
		}
		h /= 6
		if h < 0 {
			h++
		}
	}
	return h, s, v
}

// hsvToRGB converts one HSV triple in [0, 1] to RGB in [0, 1].
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	h = h - math.Floor(h)
	h *= 6
	sector := int(h)
	f := h - float64(sector)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch sector {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// xyzToLabFn is the forward CIELAB transfer function.
func xyzToLabFn(n float64) float64 {
	const d = 6.0 / 29.0
	if n > d*d*d {
		return math.Cbrt(n)
	}
	return n/(3*d*d) + 4.0/29.0
}

// labToXYZFn is the inverse CIELAB transfer function.
func labToXYZFn(n float64) float64 {
	const d = 6.0 / 29.0
	if n > d {
		return n * n * n
	}
	return 3 * d * d * (n - 4.0/29.0)
}

// mulPixels multiplies every pixel's color channels by a row-major 3x3
// matrix, passing alpha through.
func mulPixels(input *pictor.Image[float64], mat *[9]float64) *pictor.Image[float64] {
	ch := input.Info().ChannelsNonAlpha()
	return pictor.MapPixelsWithAlpha(input, ch, func(src, dst []float64) {
		x := mat[0]*src[0] + mat[1]*src[1] + mat[2]*src[2]
		y := mat[3]*src[0] + mat[4]*src[1] + mat[5]*src[2]
		z := mat[6]*src[0] + mat[7]*src[1] + mat[8]*src[2]
		dst[0], dst[1], dst[2] = x, y, z
	}, func(a float64) float64 { return a })
}
