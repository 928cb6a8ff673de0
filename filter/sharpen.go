package filter

import "github.com/pictor-go/pictor"

// Sharpen applies the classic 3x3 sharpening kernel.
func Sharpen[T pictor.Sample](input *pictor.Image[T], o Opts) (*pictor.Image[T], error) {
	return Conv2D(input, pictor.SharpenKernel(), o)
}

// UnsharpMask sharpens by applying the 5x5 unsharp masking kernel.
func UnsharpMask[T pictor.Sample](input *pictor.Image[T], o Opts) (*pictor.Image[T], error) {
	return Conv2D(input, pictor.UnsharpMaskingKernel(), o)
}
