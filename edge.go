package pictor

// Edge selects how neighborhood operations treat coordinates that fall
// outside the source image. The choice is visible in result values at the
// borders, so it is a required parameter of every windowed operation.
type Edge uint8

const (
	// EdgeExtend clamps out-of-range coordinates to the nearest border
	// pixel. This is the default policy everywhere a zero Opts value is
	// used.
	EdgeExtend Edge = iota

	// EdgeWrap treats the image as a torus: coordinates wrap around to
	// the opposite side.
	EdgeWrap

	// EdgeMirror reflects coordinates at the border, border sample
	// included: for a row abc the left extension reads ...cba|abc.
	EdgeMirror

	// EdgeZero pads with zero-valued samples.
	EdgeZero
)

// String returns the policy name.
func (e Edge) String() string {
	switch e {
	case EdgeExtend:
		return "Extend"
	case EdgeWrap:
		return "Wrap"
	case EdgeMirror:
		return "Mirror"
	case EdgeZero:
		return "Zero"
	default:
		return "Unknown"
	}
}

// Resolve maps coordinate i onto [0, n) according to the policy. The
// second return is false only for EdgeZero misses, in which case the
// caller substitutes zero samples.
func (e Edge) Resolve(i, n int) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch e {
	case EdgeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case EdgeMirror:
		// Reflect with period 2n; each period covers one forward and
		// one backward traversal of the row.
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i, true
	case EdgeZero:
		return 0, false
	default: // EdgeExtend
		return clampInt(i, 0, n-1), true
	}
}

// Neighborhood1D writes the row (vert == false) or column (vert == true)
// of length size centered at (x, y) into dst, channel-interleaved, and
// returns it. Out-of-range pixels are resolved by the edge policy. dst
// must have room for size*channels samples; pass nil to allocate.
func (m *Image[T]) Neighborhood1D(x, y, size int, vert bool, e Edge, dst []T) []T {
	ch := int(m.info.Channels)
	need := size * ch
	if cap(dst) < need {
		dst = make([]T, need)
	}
	dst = dst[:need]

	half := size / 2
	for i := range size {
		cx, cy := x, y
		var ok bool
		if vert {
			cy, ok = e.Resolve(y-half+i, int(m.info.Height))
		} else {
			cx, ok = e.Resolve(x-half+i, int(m.info.Width))
		}
		out := dst[i*ch : (i+1)*ch]
		if !ok {
			for j := range out {
				out[j] = 0
			}
			continue
		}
		copy(out, m.pixel(cx, cy))
	}
	return dst
}

// Neighborhood2D writes the size x size window centered at (x, y) into
// dst in row-major order and returns it. Out-of-range pixels are resolved
// by the edge policy. dst must have room for size*size*channels samples;
// pass nil to allocate.
func (m *Image[T]) Neighborhood2D(x, y, size int, e Edge, dst []T) []T {
	return m.Window(x, y, size, size, size/2, size/2, e, dst)
}

// Window writes the ww x wh window whose anchor cell (ax, ay) lands on
// (x, y) into dst in row-major order and returns it. Out-of-range pixels
// are resolved by the edge policy. dst must have room for
// ww*wh*channels samples; pass nil to allocate.
func (m *Image[T]) Window(x, y, ww, wh, ax, ay int, e Edge, dst []T) []T {
	ch := int(m.info.Channels)
	need := ww * wh * ch
	if cap(dst) < need {
		dst = make([]T, need)
	}
	dst = dst[:need]

	w, h := int(m.info.Width), int(m.info.Height)
	k := 0
	for j := range wh {
		cy, okY := e.Resolve(y-ay+j, h)
		for i := range ww {
			cx, okX := e.Resolve(x-ax+i, w)
			out := dst[k : k+ch]
			k += ch
			if !okX || !okY {
				for n := range out {
					out[n] = 0
				}
				continue
			}
			copy(out, m.pixel(cx, cy))
		}
	}
	return dst
}
