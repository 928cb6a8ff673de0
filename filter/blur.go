package filter

import (
	"slices"

	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/internal/parallel"
)

// Box applies an unnormalized box filter of odd size: every output
// sample is the plain sum of its size x size neighborhood.
func Box[T pictor.Sample](input *pictor.Image[T], size int, o Opts) (*pictor.Image[T], error) {
	if size <= 0 || size%2 == 0 {
		return nil, pictor.InvalidParamf("box size %d is not positive odd", size)
	}
	vec := make([]float64, size)
	for i := range vec {
		vec[i] = 1
	}
	return Separable(input, vec, vec, o)
}

// BoxNormalized applies a mean filter of odd size: every output sample
// is the average of its size x size neighborhood.
func BoxNormalized[T pictor.Sample](input *pictor.Image[T], size int, o Opts) (*pictor.Image[T], error) {
	k, err := pictor.BoxKernel(size)
	if err != nil {
		return nil, err
	}
	return Linear(input, k, o)
}

// WeightedAvg applies an averaging filter of odd size whose center cell
// carries weight and every other cell carries 1, normalized by the total.
func WeightedAvg[T pictor.Sample](input *pictor.Image[T], size int, weight uint, o Opts) (*pictor.Image[T], error) {
	if size <= 0 || size%2 == 0 {
		return nil, pictor.InvalidParamf("weighted avg size %d is not positive odd", size)
	}
	total := float64(size*size-1) + float64(weight)
	w := make([]float64, size*size)
	for i := range w {
		w[i] = 1 / total
	}
	w[(size/2)*size+size/2] = float64(weight) / total
	k, err := pictor.NewSquareKernel(size, w)
	if err != nil {
		return nil, err
	}
	return Conv2D(input, k, o)
}

// Gaussian applies a Gaussian blur of odd size with standard deviation
// sigma, using the separable two-pass algorithm.
func Gaussian[T pictor.Sample](input *pictor.Image[T], size int, sigma float64, o Opts) (*pictor.Image[T], error) {
	k, err := pictor.GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}
	return Linear(input, k, o)
}

// Median replaces every sample with the median of its size x size
// neighborhood, per channel. size must be positive odd.
func Median[T pictor.Sample](input *pictor.Image[T], size int, o Opts) (*pictor.Image[T], error) {
	if size <= 0 || size%2 == 0 {
		return nil, pictor.InvalidParamf("median size %d is not positive odd", size)
	}
	return orderStatistic(input, size, o, func(vals []T) T {
		slices.Sort(vals)
		return medianOf(vals)
	}), nil
}

// AlphaTrimmedMean replaces every sample with the mean of its size x size
// neighborhood after discarding the trim smallest and trim largest
// values, per channel. Fails with ErrInvalidParam unless
// 2*trim < size*size.
func AlphaTrimmedMean[T pictor.Sample](input *pictor.Image[T], size, trim int, o Opts) (*pictor.Image[T], error) {
	if size <= 0 || size%2 == 0 {
		return nil, pictor.InvalidParamf("trimmed mean size %d is not positive odd", size)
	}
	if trim < 0 || 2*trim >= size*size {
		return nil, pictor.InvalidParamf("trim %d with window %d", trim, size*size)
	}
	return orderStatistic(input, size, o, func(vals []T) T {
		slices.Sort(vals)
		kept := vals[trim : len(vals)-trim]
		var sum float64
		for _, v := range kept {
			sum += float64(v)
		}
		return pictor.ClampSample[T](sum / float64(len(kept)))
	}), nil
}

// orderStatistic runs a per-channel reduction over every size x size
// neighborhood. reduce may reorder the values it is handed.
func orderStatistic[T pictor.Sample](input *pictor.Image[T], size int, o Opts, reduce func(vals []T) T) *pictor.Image[T] {
	info := input.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	n := size * size
	out := pictor.NewBlank[T](info)
	dst := out.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		window := make([]T, n*ch)
		vals := make([]T, n)
		for y := y0; y < y1; y++ {
			for x := range w {
				window = input.Neighborhood2D(x, y, size, o.Edge, window)
				di := (y*w + x) * ch
				for c := range ch {
					for i := range n {
						vals[i] = window[i*ch+c]
					}
					dst[di+c] = reduce(vals)
				}
			}
		}
	})
	return out
}

// medianOf returns the middle element of sorted vals, averaging the two
// middle elements when the count is even.
func medianOf[T pictor.Sample](vals []T) T {
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return pictor.ClampSample[T]((float64(vals[n/2-1]) + float64(vals[n/2])) / 2)
}
