package filter

import (
	"math"

	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/colorspace"
	"github.com/pictor-go/pictor/internal/parallel"
)

// Bilateral applies an edge-preserving bilateral filter to a uint8 sRGB
// image. rng controls the intensity falloff and spatial the distance
// falloff; both must be positive. The filter runs in CIELAB so that the
// intensity distance matches perceived color difference.
//
// The window side length is derived from spatial (4 standard deviations,
// rounded up to odd).
func Bilateral(input *pictor.Image[uint8], rng, spatial float64, o Opts) (*pictor.Image[uint8], error) {
	if rng <= 0 {
		return nil, pictor.InvalidParamf("bilateral range %g is not positive", rng)
	}
	if spatial <= 0 {
		return nil, pictor.InvalidParamf("bilateral spatial %g is not positive", spatial)
	}

	size := int(spatial*4) + 1
	if size%2 == 0 {
		size++
	}
	spatialMat := spatialWeights(size, spatial)

	lab := colorspace.SRGBToLab(input, colorspace.D65)
	info := lab.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	color := int(info.ChannelsNonAlpha())
	n := size * size
	out := pictor.NewBlank[float64](info)
	dst, src := out.Data(), lab.Data()

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		window := make([]float64, n*ch)
		for y := y0; y < y1; y++ {
			for x := range w {
				window = lab.Neighborhood2D(x, y, size, o.Edge, window)
				di := (y*w + x) * ch
				center := src[di : di+ch]
				for c := range color {
					var sum, total float64
					for i := range n {
						v := window[i*ch+c]
						wt := spatialMat[i] * gaussianFn(math.Abs(center[c]-v), rng)
						sum += wt * v
						total += wt
					}
					dst[di+c] = sum / total
				}
				if info.Alpha {
					dst[di+ch-1] = center[ch-1]
				}
			}
		}
	})

	return colorspace.LabToSRGB(out, colorspace.D65), nil
}

// spatialWeights builds the size x size grid of Gaussian weights by
// distance from the center cell.
func spatialWeights(size int, sigma float64) []float64 {
	center := size / 2
	mat := make([]float64, size*size)
	for y := range size {
		for x := range size {
			dx, dy := float64(x-center), float64(y-center)
			mat[y*size+x] = gaussianFn(math.Sqrt(dx*dx+dy*dy), sigma)
		}
	}
	return mat
}

// gaussianFn evaluates the 2D Gaussian normal density at distance x.
func gaussianFn(x, sigma float64) float64 {
	s2 := sigma * sigma
	return math.Exp(-x*x/(2*s2)) / (2 * math.Pi * s2)
}
