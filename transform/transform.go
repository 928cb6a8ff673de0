// Package transform produces cropped, scaled and rearranged images.
// Every operation reads its source immutably and returns a freshly
// allocated output buffer; source and destination never alias.
package transform

import (
	"github.com/pictor-go/pictor"
	"github.com/pictor-go/pictor/internal/parallel"
)

// Opts configures how a geometric operation runs. The zero value clamps
// at borders (EdgeExtend) and executes sequentially.
type Opts struct {
	// Edge selects the boundary policy for resampling taps that fall
	// outside the source image.
	Edge pictor.Edge

	// Parallel partitions the output into row bands across workers.
	// The result is identical to a sequential run.
	Parallel bool

	// Workers caps the worker count when Parallel is set; 0 means
	// GOMAXPROCS.
	Workers int
}

// Axis selects a reflection axis.
type Axis uint8

const (
	// AxisHorizontal reflects across the horizontal axis (top-bottom).
	AxisHorizontal Axis = iota

	// AxisVertical reflects across the vertical axis (left-right).
	AxisVertical
)

// Crop extracts the w x h sub-rectangle whose upper-left corner is at
// (x, y). Returns ErrOutOfBounds when the rectangle exceeds the source
// and ErrInvalidParam for an empty rectangle.
func Crop[T pictor.Sample](input *pictor.Image[T], x, y int, w, h uint32, o Opts) (*pictor.Image[T], error) {
	info := input.Info()
	if w == 0 || h == 0 {
		return nil, pictor.InvalidParamf("crop size %dx%d", w, h)
	}
	if x < 0 || y < 0 || uint32(x)+w > info.Width || uint32(y)+h > info.Height {
		return nil, pictor.OutOfBoundsf("crop rect (%d, %d, %d, %d) exceeds %dx%d", x, y, w, h, info.Width, info.Height)
	}

	out := pictor.NewBlank[T](pictor.NewImageInfo(w, h, info.Channels, info.Alpha))
	ch := int(info.Channels)
	srcStride := int(info.Width) * ch
	dstStride := int(w) * ch
	src, dst := input.Data(), out.Data()

	parallel.Rows(int(h), o.Parallel, o.Workers, func(y0, y1 int) {
		for j := y0; j < y1; j++ {
			si := (y+j)*srcStride + x*ch
			copy(dst[j*dstStride:(j+1)*dstStride], src[si:si+dstStride])
		}
	})
	return out, nil
}

// Translate shifts the image so its upper-left corner lands on (x, y),
// filling the uncovered area with zero-valued pixels. An offset at or
// past the image edge leaves the output entirely zero-filled. Returns
// ErrInvalidParam for negative offsets.
func Translate[T pictor.Sample](input *pictor.Image[T], x, y int, o Opts) (*pictor.Image[T], error) {
	if x < 0 || y < 0 {
		return nil, pictor.InvalidParamf("translate offset (%d, %d)", x, y)
	}
	info := input.Info()
	out := pictor.NewBlank[T](info)
	ch := int(info.Channels)
	stride := int(info.Width) * ch
	src, dst := input.Data(), out.Data()
	w, h := int(info.Width), int(info.Height)
	if x >= w || y >= h {
		return out, nil
	}

	parallel.Rows(h-y, o.Parallel, o.Workers, func(y0, y1 int) {
		for j := y0; j < y1; j++ {
			n := (w - x) * ch
			di := (j+y)*stride + x*ch
			copy(dst[di:di+n], src[j*stride:j*stride+n])
		}
	})
	return out, nil
}

// Reflect mirrors the image across the given axis.
func Reflect[T pictor.Sample](input *pictor.Image[T], axis Axis, o Opts) (*pictor.Image[T], error) {
	info := input.Info()
	out := pictor.NewBlank[T](info)
	ch := int(info.Channels)
	w, h := int(info.Width), int(info.Height)
	stride := w * ch
	src, dst := input.Data(), out.Data()

	switch axis {
	case AxisHorizontal:
		parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				sy := h - 1 - y
				copy(dst[y*stride:(y+1)*stride], src[sy*stride:(sy+1)*stride])
			}
		})
	case AxisVertical:
		parallel.Rows(h, o.Parallel, o.Workers, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := range w {
					si := y*stride + (w-1-x)*ch
					di := y*stride + x*ch
					copy(dst[di:di+ch], src[si:si+ch])
				}
			}
		})
	default:
		return nil, pictor.InvalidParamf("unknown reflection axis %d", axis)
	}
	return out, nil
}

// Overlay places front onto back with its upper-left corner at (x, y),
// replacing the covered pixels. The part of front that falls outside
// back is clipped; a fully clipped front leaves back unchanged.
// Returns ErrInvalidParam when the channel counts differ.
func Overlay[T pictor.Sample](back, front *pictor.Image[T], x, y int, o Opts) (*pictor.Image[T], error) {
	if back.Info().Channels != front.Info().Channels {
		return nil, pictor.InvalidParamf("overlay channels %d and %d differ", back.Info().Channels, front.Info().Channels)
	}
	if x < 0 || y < 0 {
		return nil, pictor.InvalidParamf("overlay offset (%d, %d)", x, y)
	}

	out := back.Clone()
	info := back.Info()
	if x >= int(info.Width) || y >= int(info.Height) {
		return out, nil
	}
	ch := int(info.Channels)
	stride := int(info.Width) * ch
	fstride := int(front.Info().Width) * ch
	w := min(x+int(front.Info().Width), int(info.Width))
	h := min(y+int(front.Info().Height), int(info.Height))
	src, dst := front.Data(), out.Data()

	parallel.Rows(h-y, o.Parallel, o.Workers, func(y0, y1 int) {
		for j := y0; j < y1; j++ {
			n := (w - x) * ch
			di := (j+y)*stride + x*ch
			copy(dst[di:di+n], src[j*fstride:j*fstride+n])
		}
	})
	return out, nil
}

// Superimpose blends front onto back at (x, y): covered pixels become
// alpha*back + (1-alpha)*front, saturated to the sample range. alpha
// must lie in [0, 1].
func Superimpose[T pictor.Sample](back, front *pictor.Image[T], x, y int, alpha float64, o Opts) (*pictor.Image[T], error) {
	if back.Info().Channels != front.Info().Channels {
		return nil, pictor.InvalidParamf("superimpose channels %d and %d differ", back.Info().Channels, front.Info().Channels)
	}
	if x < 0 || y < 0 {
		return nil, pictor.InvalidParamf("superimpose offset (%d, %d)", x, y)
	}
	if alpha < 0 || alpha > 1 {
		return nil, pictor.InvalidParamf("superimpose alpha %g outside [0, 1]", alpha)
	}

	out := back.Clone()
	info := back.Info()
	if x >= int(info.Width) || y >= int(info.Height) {
		return out, nil
	}
	ch := int(info.Channels)
	stride := int(info.Width) * ch
	fstride := int(front.Info().Width) * ch
	w := min(x+int(front.Info().Width), int(info.Width))
	h := min(y+int(front.Info().Height), int(info.Height))
	src, dst := front.Data(), out.Data()

	parallel.Rows(h-y, o.Parallel, o.Workers, func(y0, y1 int) {
		for j := y0; j < y1; j++ {
			for i := 0; i < (w-x)*ch; i++ {
				di := (j+y)*stride + x*ch + i
				fi := j*fstride + i
				dst[di] = pictor.ClampSample[T](alpha*float64(dst[di]) + (1-alpha)*float64(src[fi]))
			}
		}
	})
	return out, nil
}
