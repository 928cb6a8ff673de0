// Package morph implements binary morphological operators on uint8
// images. Pixels are treated as set when they hold 255 and clear when
// they hold 0. Window occupancy is counted through a summed-area table,
// so the cost per pixel is constant regardless of the window size.
package morph

import (
	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/internal/parallel"
)

// Opts configures how a morphological operation runs. Windows are
// clipped at the image border, so no edge policy applies.
type Opts struct {
	// Parallel partitions the output into row bands across workers.
	// The result is identical to a sequential run.
	Parallel bool

	// Workers caps the worker count when Parallel is set; 0 means
	// GOMAXPROCS.
	Workers int
}

// Erode clears every set pixel whose size x size window is not fully
// set. size must be positive and odd.
func Erode(input *pictor.Image[uint8], size int, o Opts) (*pictor.Image[uint8], error) {
	return apply(input, size, o, func(sum uint64, area int) uint8 {
		if sum == uint64(area)*255 {
			return 255
		}
		return 0
	})
}

// Dilate sets every pixel whose size x size window contains at least
// one set pixel. size must be positive and odd.
func Dilate(input *pictor.Image[uint8], size int, o Opts) (*pictor.Image[uint8], error) {
	return apply(input, size, o, func(sum uint64, area int) uint8 {
		if sum > 0 {
			return 255
		}
		return 0
	})
}

// Open erodes and then dilates, removing isolated set pixels smaller
// than the window.
func Open(input *pictor.Image[uint8], size int, o Opts) (*pictor.Image[uint8], error) {
	eroded, err := Erode(input, size, o)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, size, o)
}

// Close dilates and then erodes, filling clear holes smaller than the
// window.
func Close(input *pictor.Image[uint8], size int, o Opts) (*pictor.Image[uint8], error) {
	dilated, err := Dilate(input, size, o)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, size, o)
}

// apply evaluates decide on the clipped window occupancy of every color
// channel; alpha passes through untouched.
func apply(input *pictor.Image[uint8], size int, o Opts, decide func(sum uint64, area int) uint8) (*pictor.Image[uint8], error) {
	if size <= 0 || size%2 == 0 {
		return nil, pictor.InvalidParamf("morphology window size %d is not positive odd", size)
	}

	info := input.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	color := int(info.ChannelsNonAlpha())
	sat := NewSummedAreaTable(input)
	out := pictor.NewBlank[uint8](info)
	dst, src := out.Data(), input.Data()
	r := size / 2

	parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			cy0, cy1 := max(y-r, 0), min(y+r, h-1)
			for x := range w {
				cx0, cx1 := max(x-r, 0), min(x+r, w-1)
				area := (cx1 - cx0 + 1) * (cy1 - cy0 + 1)
				di := (y*w + x) * ch
				for c := range color {
					dst[di+c] = decide(sat.RectSum(cx0, cy0, cx1, cy1, c), area)
				}
				if info.Alpha {
					dst[di+ch-1] = src[di+ch-1]
				}
			}
		}
	})
	return out, nil
}

// SummedAreaTable holds per-channel inclusive prefix sums of a uint8
// image, one extra row and column of zeros at the top and left.
type SummedAreaTable struct {
	w, h, ch int
	sums     []uint64
}

// NewSummedAreaTable computes the table for img in a single pass.
func NewSummedAreaTable(img *pictor.Image[uint8]) *SummedAreaTable {
	info := img.Info()
	w, h, ch := int(info.Width), int(info.Height), int(info.Channels)
	t := &SummedAreaTable{w: w, h: h, ch: ch, sums: make([]uint64, (w+1)*(h+1)*ch)}
	data := img.Data()

	for y := range h {
		for x := range w {
			for c := range ch {
				t.sums[t.at(x+1, y+1, c)] = uint64(data[(y*w+x)*ch+c]) +
					t.sums[t.at(x, y+1, c)] +
					t.sums[t.at(x+1, y, c)] -
					t.sums[t.at(x, y, c)]
			}
		}
	}
	return t
}

// RectSum returns the channel-c sum over the inclusive pixel rectangle
// (x0, y0)-(x1, y1).
func (t *SummedAreaTable) RectSum(x0, y0, x1, y1, c int) uint64 {
	return t.sums[t.at(x1+1, y1+1, c)] -
		t.sums[t.at(x0, y1+1, c)] -
		t.sums[t.at(x1+1, y0, c)] +
		t.sums[t.at(x0, y0, c)]
}

func (t *SummedAreaTable) at(x, y, c int) int {
	return (y*(t.w+1)+x)*t.ch + c
}
