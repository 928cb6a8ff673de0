package filter

import (
	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/internal/parallel"
)

// Thresh selects the rule applied by Threshold.
type Thresh uint8

const (
	// ThreshBinary sets samples above the threshold to max and the rest
	// to zero.
	ThreshBinary Thresh = iota

	// ThreshBinaryInv sets samples above the threshold to zero and the
	// rest to max.
	ThreshBinaryInv

	// ThreshTrunc caps samples at the threshold and leaves the rest
	// unchanged.
	ThreshTrunc

	// ThreshToZero keeps samples above the threshold and zeroes the
	// rest.
	ThreshToZero

	// ThreshToZeroInv zeroes samples above the threshold and keeps the
	// rest.
	ThreshToZeroInv
)

// Threshold applies a point-wise thresholding rule to a grayscale image.
// Alpha, when present, is passed through. Returns ErrInvalidParam when
// the image is not grayscale or the method is unknown.
//
// Being point-wise, the operation is never tiled beyond simple row
// partitioning.
func Threshold[T pictor.Sample](input *pictor.Image[T], threshold, max float64, method Thresh, o Opts) (*pictor.Image[T], error) {
	if !input.Info().IsGrayscale() {
		return nil, pictor.InvalidParamf("threshold needs a grayscale image, have %d channels", input.Info().Channels)
	}

	var f func(v float64) float64
	switch method {
	case ThreshBinary:
		f = func(v float64) float64 {
			if v > threshold {
				return max
			}
			return 0
		}
	case ThreshBinaryInv:
		f = func(v float64) float64 {
			if v > threshold {
				return 0
			}
			return max
		}
	case ThreshTrunc:
		f = func(v float64) float64 {
			if v > threshold {
				return threshold
			}
			return v
		}
	case ThreshToZero:
		f = func(v float64) float64 {
			if v > threshold {
				return v
			}
			return 0
		}
	case ThreshToZeroInv:
		f = func(v float64) float64 {
			if v > threshold {
				return 0
			}
			return v
		}
	default:
		return nil, pictor.InvalidParamf("unknown threshold method %d", method)
	}

	return pointwise(input, o, f), nil
}

// AdaptiveThreshold binarizes a grayscale image against a moving local
// threshold: a sample becomes max when it exceeds the mean of its
// size x size neighborhood minus bias, and zero otherwise. size must be
// positive odd.
func AdaptiveThreshold[T pictor.Sample](input *pictor.Image[T], size int, bias, max float64, o Opts) (*pictor.Image[T], error) {
	if !input.Info().IsGrayscale() {
		return nil, pictor.InvalidParamf("adaptive threshold needs a grayscale image, have %d channels", input.Info().Channels)
	}
	if size <= 0 || size%2 == 0 {
		return nil, pictor.InvalidParamf("adaptive threshold size %d is not positive odd", size)
	}

	info := input.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	n := size * size
	out := pictor.NewBlank[T](info)
	dst, src := out.Data(), input.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		window := make([]T, n*ch)
		for y := y0; y < y1; y++ {
			for x := range w {
				window = input.Neighborhood2D(x, y, size, o.Edge, window)
				var sum float64
				for i := range n {
					sum += float64(window[i*ch])
				}
				di := (y*w + x) * ch
				if float64(src[di]) > sum/float64(n)-bias {
					dst[di] = pictor.ClampSample[T](max)
				}
				if info.Alpha {
					dst[di+ch-1] = src[di+ch-1]
				}
			}
		}
	})
	return out, nil
}

// Residual returns the point-wise saturated difference a - b of two
// images of identical shape. Returns ErrInvalidParam when the shapes
// differ.
func Residual[T pictor.Sample](a, b *pictor.Image[T], o Opts) (*pictor.Image[T], error) {
	if a.Info() != b.Info() {
		return nil, pictor.InvalidParamf("residual of mismatched shapes %v and %v", a.Info(), b.Info())
	}
	info := a.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	out := pictor.NewBlank[T](info)
	dst, da, db := out.Data(), a.Data(), b.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		for i := y0 * w * ch; i < y1*w*ch; i++ {
			dst[i] = pictor.ClampSample[T](float64(da[i]) - float64(db[i]))
		}
	})
	return out, nil
}

// pointwise applies f to every color sample, passing alpha through, with
// plain row partitioning when parallelism is enabled.
func pointwise[T pictor.Sample](input *pictor.Image[T], o Opts, f func(float64) float64) *pictor.Image[T] {
	info := input.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	out := pictor.NewBlank[T](info)
	dst, src := out.Data(), input.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		for i := y0 * w * ch; i < y1*w*ch; i++ {
			if info.Alpha && i%ch == ch-1 {
				dst[i] = src[i]
				continue
			}
			dst[i] = pictor.ClampSample[T](f(float64(src[i])))
		}
	})
	return out
}
