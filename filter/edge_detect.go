package filter

import (
	"math"

	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/colorspace"
)

// Sobel 1D factor pairs: the 2D operator is the outer product of a
// smoothing vector and a derivative vector.
var (
	sobelSmooth   = []float64{1, 2, 1}
	prewittSmooth = []float64{1, 1, 1}
	derivVec      = []float64{-1, 0, 1}
)

// DerivativeMask converts the image to grayscale, applies the separable
// derivative operator given by its smoothing and derivative vectors in
// both orientations, and returns the gradient magnitude per pixel.
func DerivativeMask[T pictor.Sample](input *pictor.Image[T], smooth, deriv []float64, o Opts) (*pictor.Image[T], error) {
	gray := colorspace.Grayscale(pictor.ConvertSamples[float64](input))

	gx, err := Separable(gray, smooth, deriv, o)
	if err != nil {
		return nil, err
	}
	gy, err := Separable(gray, deriv, smooth, o)
	if err != nil {
		return nil, err
	}

	info := gray.Info()
	out := pictor.NewBlank[float64](info)
	dst, dx, dy := out.Data(), gx.Data(), gy.Data()
	ch := int(info.Channels)
	for i := range dst {
		if info.Alpha && i%ch == ch-1 {
			dst[i] = gray.Data()[i]
			continue
		}
		dst[i] = math.Sqrt(dx[i]*dx[i] + dy[i]*dy[i])
	}
	return pictor.ConvertSamples[T](out), nil
}

// Prewitt applies the Prewitt edge-detection operator.
func Prewitt[T pictor.Sample](input *pictor.Image[T], o Opts) (*pictor.Image[T], error) {
	return DerivativeMask(input, prewittSmooth, derivVec, o)
}

// Sobel applies the Sobel edge-detection operator.
func Sobel[T pictor.Sample](input *pictor.Image[T], o Opts) (*pictor.Image[T], error) {
	return DerivativeMask(input, sobelSmooth, derivVec, o)
}

// SobelWeighted applies a Sobel operator whose smoothing vector carries
// the given center weight.
func SobelWeighted[T pictor.Sample](input *pictor.Image[T], weight uint, o Opts) (*pictor.Image[T], error) {
	return DerivativeMask(input, []float64{1, float64(weight), 1}, derivVec, o)
}
