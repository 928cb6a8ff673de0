package pictor

import "math"

// sepEps is the relative tolerance used when testing a kernel for
// rank-1 (separable) structure.
const sepEps = 1e-12

// Kernel is a small 2D grid of signed weights applied by convolution
// operations. The anchor is the cell that lands on the output pixel; it
// defaults to the center. A kernel may additionally carry a separable
// representation (a vertical and a horizontal 1D vector whose outer
// product equals the 2D grid), which convolution uses for the cheaper
// two-pass algorithm.
type Kernel struct {
	weights    []float64 // row-major, rows x cols
	cols, rows int
	ax, ay     int
	sepV, sepH []float64 // non-nil only when built or proven separable
}

// NewKernel creates a kernel from row-major weights. Returns
// ErrInvalidParam for non-positive dimensions and ErrShape when
// len(weights) != cols*rows. The anchor defaults to the center cell.
func NewKernel(cols, rows int, weights []float64) (*Kernel, error) {
	if cols <= 0 || rows <= 0 {
		return nil, InvalidParamf("kernel dimensions %dx%d", cols, rows)
	}
	if len(weights) != cols*rows {
		return nil, shapeErr(cols*rows, len(weights))
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Kernel{weights: w, cols: cols, rows: rows, ax: cols / 2, ay: rows / 2}, nil
}

// NewSquareKernel creates a size x size kernel from row-major weights.
func NewSquareKernel(size int, weights []float64) (*Kernel, error) {
	return NewKernel(size, size, weights)
}

// NewSeparableKernel creates a kernel from a vertical and a horizontal 1D
// vector. The 2D grid is their outer product, so the separable invariant
// holds by construction. Returns ErrInvalidParam if either vector is
// empty.
func NewSeparableKernel(vert, horz []float64) (*Kernel, error) {
	if len(vert) == 0 || len(horz) == 0 {
		return nil, InvalidParamf("separable kernel vectors must be non-empty (%d, %d)", len(vert), len(horz))
	}
	rows, cols := len(vert), len(horz)
	w := make([]float64, rows*cols)
	for j, v := range vert {
		for i, h := range horz {
			w[j*cols+i] = v * h
		}
	}
	k := &Kernel{weights: w, cols: cols, rows: rows, ax: cols / 2, ay: rows / 2}
	k.sepV = append([]float64(nil), vert...)
	k.sepH = append([]float64(nil), horz...)
	return k, nil
}

// Size returns the kernel's column and row counts.
func (k *Kernel) Size() (cols, rows int) {
	return k.cols, k.rows
}

// Anchor returns the anchor cell.
func (k *Kernel) Anchor() (x, y int) {
	return k.ax, k.ay
}

// SetAnchor moves the anchor cell. Returns ErrOutOfBounds if the cell is
// outside the kernel grid.
func (k *Kernel) SetAnchor(x, y int) error {
	if x < 0 || y < 0 || x >= k.cols || y >= k.rows {
		return boundsErr(x, y, uint32(k.cols), uint32(k.rows))
	}
	k.ax, k.ay = x, y
	// An off-center anchor invalidates the cached two-pass split, which
	// assumes centered vectors.
	if x != k.cols/2 || y != k.rows/2 {
		k.sepV, k.sepH = nil, nil
	}
	return nil
}

// Weights returns the row-major weight grid.
func (k *Kernel) Weights() []float64 {
	return k.weights
}

// At returns the weight at column x, row y.
func (k *Kernel) At(x, y int) float64 {
	return k.weights[y*k.cols+x]
}

// Sum returns the sum of all weights.
func (k *Kernel) Sum() float64 {
	var s float64
	for _, w := range k.weights {
		s += w
	}
	return s
}

// Normalize rescales the weights in place so they sum to 1. When the sum
// is already zero (edge-detection kernels) normalization is skipped by
// contract rather than dividing by zero.
func (k *Kernel) Normalize() {
	s := k.Sum()
	if s == 0 {
		return
	}
	inv := 1 / s
	for i := range k.weights {
		k.weights[i] *= inv
	}
	// Scale one half of the separable pair so the outer product keeps
	// matching the 2D grid.
	if k.sepH != nil {
		for i := range k.sepH {
			k.sepH[i] *= inv
		}
	}
}

// IsSeparable reports whether an equivalent separable representation
// exists. Kernels built with NewSeparableKernel are separable by
// construction; others are tested for rank-1 structure and the result is
// cached on success.
func (k *Kernel) IsSeparable() bool {
	_, _, ok := k.Separate()
	return ok
}

// Separate returns the vertical and horizontal vectors of the separable
// representation, or ok == false when none exists. The vectors satisfy
// weights[y*cols+x] == vert[y]*horz[x] within floating-point tolerance.
func (k *Kernel) Separate() (vert, horz []float64, ok bool) {
	if k.sepV != nil {
		return k.sepV, k.sepH, true
	}
	if k.ax != k.cols/2 || k.ay != k.rows/2 {
		// Two-pass application assumes a centered anchor.
		return nil, nil, false
	}

	// Rank-1 test: pick the largest-magnitude pivot, derive candidate
	// vectors from its row and column, then verify the outer product
	// reproduces the grid.
	pi, pj, pivot := 0, 0, 0.0
	for j := range k.rows {
		for i := range k.cols {
			if w := math.Abs(k.At(i, j)); w > pivot {
				pivot, pi, pj = w, i, j
			}
		}
	}
	if pivot == 0 {
		return nil, nil, false
	}

	vert = make([]float64, k.rows)
	horz = make([]float64, k.cols)
	p := k.At(pi, pj)
	for j := range k.rows {
		vert[j] = k.At(pi, j)
	}
	for i := range k.cols {
		horz[i] = k.At(i, pj) / p
	}
	for j := range k.rows {
		for i := range k.cols {
			want := k.At(i, j)
			got := vert[j] * horz[i]
			if math.Abs(got-want) > sepEps*math.Max(1, math.Abs(want)) {
				return nil, nil, false
			}
		}
	}
	k.sepV, k.sepH = vert, horz
	return vert, horz, true
}

// GaussianKernel builds a separable Gaussian kernel of odd side length
// size with standard deviation sigma. The weights are normalized to sum
// to 1. Returns ErrInvalidParam for an even or non-positive size or a
// non-positive sigma.
func GaussianKernel(size int, sigma float64) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, InvalidParamf("gaussian size %d is not positive odd", size)
	}
	if sigma <= 0 {
		return nil, InvalidParamf("gaussian sigma %g is not positive", sigma)
	}
	half := size / 2
	vec := make([]float64, size)
	var sum float64
	for i := range size {
		d := float64(i - half)
		vec[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += vec[i]
	}
	for i := range vec {
		vec[i] /= sum
	}
	return NewSeparableKernel(vec, vec)
}

// BoxKernel builds a separable kernel of odd side length size with all
// weights equal to 1/(size*size). Returns ErrInvalidParam for an even or
// non-positive size.
func BoxKernel(size int) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, InvalidParamf("box size %d is not positive odd", size)
	}
	vec := make([]float64, size)
	for i := range vec {
		vec[i] = 1 / float64(size)
	}
	return NewSeparableKernel(vec, vec)
}

// SharpenKernel returns the classic 3x3 sharpening kernel.
func SharpenKernel() *Kernel {
	k, _ := NewSquareKernel(3, []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
	return k
}

// UnsharpMaskingKernel returns the 5x5 unsharp masking kernel.
func UnsharpMaskingKernel() *Kernel {
	w := []float64{
		1, 4, 6, 4, 1,
		4, 16, 24, 16, 4,
		6, 24, -476, 24, 6,
		4, 16, 24, 16, 4,
		1, 4, 6, 4, 1,
	}
	for i := range w {
		w[i] *= -1.0 / 256.0
	}
	k, _ := NewSquareKernel(5, w)
	return k
}
