// Package filter applies linear kernels and non-linear neighborhood
// operators across an image, producing a new image of identical shape.
//
// Linear convolution accumulates in float64 regardless of the sample
// type and writes back with saturation, so integer images never wrap.
// Separable kernels are applied as two 1D passes over the float64
// intermediate, which keeps the result numerically equivalent to the
// full 2D convolution.
package filter

import (
	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/internal/parallel"
)

// Opts configures how a filter runs. The zero value clamps at borders
// (EdgeExtend) and executes sequentially.
type Opts struct {
	// Edge selects the boundary policy for neighborhood windows.
	Edge pictor.Edge

	// Parallel partitions the output into row bands across workers.
	// The result is identical to a sequential run.
	Parallel bool

	// Workers caps the worker count when Parallel is set; 0 means
	// GOMAXPROCS.
	Workers int
}

// Conv1D convolves the image with a 1D kernel vector of odd length,
// vertically when vert is set and horizontally otherwise. Returns
// ErrInvalidParam for an even or empty kernel.
func Conv1D[T pictor.Sample](input *pictor.Image[T], kernel []float64, vert bool, o Opts) (*pictor.Image[T], error) {
	if len(kernel) == 0 || len(kernel)%2 == 0 {
		return nil, pictor.InvalidParamf("1d kernel length %d is not odd", len(kernel))
	}
	src := pictor.ConvertSamples[float64](input)
	out := conv1d(src, kernel, vert, o)
	return pictor.ConvertSamples[T](out), nil
}

// Separable convolves the image with a separable kernel given as its
// vertical and horizontal vectors, applying the vertical pass first.
// Both vectors must have the same odd length.
func Separable[T pictor.Sample](input *pictor.Image[T], vert, horz []float64, o Opts) (*pictor.Image[T], error) {
	if len(vert) == 0 || len(vert)%2 == 0 || len(horz)%2 == 0 {
		return nil, pictor.InvalidParamf("separable kernel lengths %d, %d are not odd", len(vert), len(horz))
	}
	if len(vert) != len(horz) {
		return nil, pictor.InvalidParamf("separable kernel lengths %d, %d differ", len(vert), len(horz))
	}
	src := pictor.ConvertSamples[float64](input)
	out := conv1d(conv1d(src, vert, true, o), horz, false, o)
	return pictor.ConvertSamples[T](out), nil
}

// Conv2D convolves the image with the kernel's full 2D grid, ignoring
// any separable representation.
func Conv2D[T pictor.Sample](input *pictor.Image[T], k *pictor.Kernel, o Opts) (*pictor.Image[T], error) {
	cols, rows := k.Size()
	if cols%2 == 0 || rows%2 == 0 {
		return nil, pictor.InvalidParamf("2d kernel size %dx%d is not odd", cols, rows)
	}
	src := pictor.ConvertSamples[float64](input)
	out := conv2d(src, k, o)
	return pictor.ConvertSamples[T](out), nil
}

// Linear convolves the image with the kernel, using the two-pass
// separable algorithm when the kernel has a separable representation and
// the full 2D pass otherwise.
func Linear[T pictor.Sample](input *pictor.Image[T], k *pictor.Kernel, o Opts) (*pictor.Image[T], error) {
	if vert, horz, ok := k.Separate(); ok && len(vert) == len(horz) && len(vert)%2 == 1 {
		return Separable(input, vert, horz, o)
	}
	return Conv2D(input, k, o)
}

// conv1d applies an odd-length 1D kernel along one axis. The kernel is
// centered; out-of-range taps are resolved by the edge policy.
func conv1d(src *pictor.Image[float64], kernel []float64, vert bool, o Opts) *pictor.Image[float64] {
	info := src.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	out := pictor.NewBlank[float64](info)
	dst := out.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		window := make([]float64, len(kernel)*ch)
		for y := y0; y < y1; y++ {
			for x := range w {
				window = src.Neighborhood1D(x, y, len(kernel), vert, o.Edge, window)
				di := (y*w + x) * ch
				for c := range ch {
					var sum float64
					for i, wt := range kernel {
						sum += wt * window[i*ch+c]
					}
					dst[di+c] = sum
				}
			}
		}
	})
	return out
}

// conv2d applies the kernel's 2D grid with its anchor semantics.
func conv2d(src *pictor.Image[float64], k *pictor.Kernel, o Opts) *pictor.Image[float64] {
	info := src.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	cols, rows := k.Size()
	ax, ay := k.Anchor()
	weights := k.Weights()
	out := pictor.NewBlank[float64](info)
	dst := out.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		window := make([]float64, cols*rows*ch)
		for y := y0; y < y1; y++ {
			for x := range w {
				window = src.Window(x, y, cols, rows, ax, ay, o.Edge, window)
				di := (y*w + x) * ch
				for c := range ch {
					var sum float64
					for i, wt := range weights {
						sum += wt * window[i*ch+c]
					}
					dst[di+c] = sum
				}
			}
		}
	})
	return out
}
