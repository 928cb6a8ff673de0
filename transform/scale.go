package transform

import (
	"math"

	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/internal/parallel"
)

// ScaleMode selects the resampling rule used by Scale.
type ScaleMode uint8

const (
	// Nearest selects the closest source pixel. Scaling to the source
	// size is the identity.
	Nearest ScaleMode = iota

	// Bilinear interpolates linearly between the four neighboring
	// source pixels.
	Bilinear

	// Bicubic interpolates with a cubic B-spline over a 4x4
	// neighborhood.
	Bicubic
)

// String returns the mode name.
func (s ScaleMode) String() string {
	switch s {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	case Bicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// Scale resamples the image to w x h using the given mode. Returns
// ErrInvalidParam when either target dimension or either source
// dimension is zero.
func Scale[T pictor.Sample](input *pictor.Image[T], w, h uint32, mode ScaleMode, o Opts) (*pictor.Image[T], error) {
	out, fx, fy, err := scaleSetup(input, w, h)
	if err != nil {
		return nil, err
	}

	switch mode {
	case Nearest:
		scaleNearest(input, out, fx, fy, o)
	case Bilinear:
		scaleInterp(input, out, o, func(x, y int, px []float64) {
			interpBilinear(input, fx, fy, x, y, px)
		})
	case Bicubic:
		scaleInterp(input, out, o, func(x, y int, px []float64) {
			interpBicubic(input, fx, fy, x, y, o.Edge, px)
		})
	default:
		return nil, pictor.InvalidParamf("unknown scale mode %d", mode)
	}
	return out, nil
}

// ScaleLanczos resamples the image to w x h with Lanczos-windowed sinc
// interpolation of radius a (typically 2 or 3). Taps outside the source
// extent are resolved by the edge policy; the tap weights are normalized
// so they sum to 1 per destination sample, and output saturates to the
// sample range. Returns ErrInvalidParam for a non-positive radius or
// degenerate dimensions.
func ScaleLanczos[T pictor.Sample](input *pictor.Image[T], w, h uint32, a int, o Opts) (*pictor.Image[T], error) {
	if a <= 0 {
		return nil, pictor.InvalidParamf("lanczos radius %d is not positive", a)
	}
	out, fx, fy, err := scaleSetup(input, w, h)
	if err != nil {
		return nil, err
	}
	scaleInterp(input, out, o, func(x, y int, px []float64) {
		interpLanczos(input, fx, fy, a, x, y, o.Edge, px)
	})
	return out, nil
}

// scaleSetup validates the dimensions and allocates the output buffer.
func scaleSetup[T pictor.Sample](input *pictor.Image[T], w, h uint32) (*pictor.Image[T], float64, float64, error) {
	info := input.Info()
	if info.Width == 0 || info.Height == 0 {
		return nil, 0, 0, pictor.InvalidParamf("scale of empty %dx%d source", info.Width, info.Height)
	}
	if w == 0 || h == 0 {
		return nil, 0, 0, pictor.InvalidParamf("scale target %dx%d", w, h)
	}
	out := pictor.NewBlank[T](pictor.NewImageInfo(w, h, info.Channels, info.Alpha))
	fx := float64(w) / float64(info.Width)
	fy := float64(h) / float64(info.Height)
	return out, fx, fy, nil
}

// scaleNearest copies whole source pixels; no arithmetic, so T roundtrips
// exactly and self-scaling is the identity.
func scaleNearest[T pictor.Sample](src, dst *pictor.Image[T], fx, fy float64, o Opts) {
	info := dst.Info()
	w, ch := int(info.Width), int(info.Channels)
	sw, sh := int(src.Info().Width), int(src.Info().Height)
	d := dst.Data()

	parallel.Rows(int(info.Height), o.Parallel, o.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			sy := clampIdx(int(math.Ceil(float64(y+1)/fy))-1, sh)
			for x := range w {
				sx := clampIdx(int(math.Ceil(float64(x+1)/fx))-1, sw)
				copy(d[(y*w+x)*ch:(y*w+x+1)*ch], src.PixelClamped(sx, sy))
			}
		}
	})
}

// scaleInterp drives a per-destination-pixel interpolator that fills a
// float64 pixel, then saturates into the output sample type.
func scaleInterp[T pictor.Sample](src, dst *pictor.Image[T], o Opts, interp func(x, y int, px []float64)) {
	info := dst.Info()
	w, ch := int(info.Width), int(info.Channels)
	d := dst.Data()

	parallel.Rows(int(info.Height), o.Parallel, o.Workers, func(y0, y1 int) {
		px := make([]float64, ch)
		for y := y0; y < y1; y++ {
			for x := range w {
				interp(x, y, px)
				di := (y*w + x) * ch
				for c := range ch {
					d[di+c] = pictor.ClampSample[T](px[c])
				}
			}
		}
	})
}

// interpBilinear resolves the fractional source coordinate of (x, y)
// with linear weights over the four surrounding pixels.
func interpBilinear[T pictor.Sample](src *pictor.Image[T], fx, fy float64, x, y int, px []float64) {
	info := src.Info()
	xin := float64(x) / fx
	yin := float64(y) / fy
	x1 := int(math.Floor(xin))
	x2 := min(int(math.Ceil(xin)), int(info.Width)-1)
	y1 := int(math.Floor(yin))
	y2 := min(int(math.Ceil(yin)), int(info.Height)-1)
	xw := xin - float64(x1)
	yw := yin - float64(y1)

	p1 := src.PixelClamped(x1, y1)
	p2 := src.PixelClamped(x2, y1)
	p3 := src.PixelClamped(x1, y2)
	p4 := src.PixelClamped(x2, y2)

	for c := range px {
		px[c] = float64(p1[c])*(1-xw)*(1-yw) +
			float64(p2[c])*xw*(1-yw) +
			float64(p3[c])*(1-xw)*yw +
			float64(p4[c])*xw*yw
	}
}

// interpBicubic interpolates with the cubic B-spline weighting function
// over the 4x4 neighborhood around the fractional source coordinate.
func interpBicubic[T pictor.Sample](src *pictor.Image[T], fx, fy float64, x, y int, e pictor.Edge, px []float64) {
	info := src.Info()
	w, h := int(info.Width), int(info.Height)
	xin := float64(x) / fx
	yin := float64(y) / fy
	x0 := int(math.Floor(xin))
	y0 := int(math.Floor(yin))
	dx := xin - float64(x0)
	dy := yin - float64(y0)

	for c := range px {
		px[c] = 0
	}
	for m := -1; m <= 2; m++ {
		cx, okX := e.Resolve(x0+m, w)
		wx := cubicWeight(float64(m) - dx)
		for n := -1; n <= 2; n++ {
			cy, okY := e.Resolve(y0+n, h)
			wt := wx * cubicWeight(dy-float64(n))
			if !okX || !okY {
				continue
			}
			p := src.PixelClamped(cx, cy)
			for c := range px {
				px[c] += float64(p[c]) * wt
			}
		}
	}
}

// interpLanczos interpolates with the Lanczos windowed-sinc kernel of
// radius a. Weights are normalized per destination sample so a constant
// image stays constant.
func interpLanczos[T pictor.Sample](src *pictor.Image[T], fx, fy float64, a, x, y int, e pictor.Edge, px []float64) {
	info := src.Info()
	w, h := int(info.Width), int(info.Height)
	xin := float64(x) / fx
	yin := float64(y) / fy
	x0 := int(math.Floor(xin))
	y0 := int(math.Floor(yin))
	dx := xin - float64(x0)
	dy := yin - float64(y0)

	for c := range px {
		px[c] = 0
	}
	var total float64
	for i := 1 - a; i <= a; i++ {
		cx, okX := e.Resolve(x0+i, w)
		wx := lanczosWeight(dx-float64(i), float64(a))
		for j := 1 - a; j <= a; j++ {
			cy, okY := e.Resolve(y0+j, h)
			wt := wx * lanczosWeight(dy-float64(j), float64(a))
			total += wt
			if !okX || !okY {
				continue
			}
			p := src.PixelClamped(cx, cy)
			for c := range px {
				px[c] += float64(p[c]) * wt
			}
		}
	}
	if total != 0 {
		for c := range px {
			px[c] /= total
		}
	}
}

// cubicWeight is the uniform cubic B-spline weighting function.
func cubicWeight(x float64) float64 {
	cube := func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return v * v * v
	}
	return (cube(x+2) - 4*cube(x+1) + 6*cube(x) - 4*cube(x-1)) / 6
}

// sinc is the normalized sinc function sin(pi x)/(pi x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// lanczosWeight is the Lanczos kernel L(x) = sinc(x) * sinc(x/a) for
// |x| < a and 0 elsewhere.
func lanczosWeight(x, a float64) float64 {
	if x <= -a || x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

// clampIdx clamps i to [0, n).
func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
