package pictor

import "math"

// ClampSample rounds and saturates a float64 value into the representable
// range of the sample type T. Float sample types are returned as-is
// (narrowed for float32); integer types round to nearest and clamp.
func ClampSample[T Sample](v float64) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(math.Round(clampFloat(v, 0, 255)))
	case uint16:
		return T(math.Round(clampFloat(v, 0, 65535)))
	default:
		return T(v)
	}
}

// SampleMax returns the maximum value of the sample type's valid range:
// 255 for uint8, 65535 for uint16 and 1.0 for the float types.
func SampleMax[T Sample]() float64 {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 255
	case uint16:
		return 65535
	default:
		return 1
	}
}

// ConvertSamples produces a new image with every sample converted from T
// to S, rounding and saturating into S's range. Values are preserved, not
// rescaled: converting uint8 to float64 yields samples in [0, 255].
func ConvertSamples[S, T Sample](m *Image[T]) *Image[S] {
	out := NewBlank[S](m.info)
	for i, v := range m.data {
		out.data[i] = ClampSample[S](float64(v))
	}
	return out
}

// ToFloat64 converts a uint8 image to float64 samples in [0, 255].
func ToFloat64(m *Image[uint8]) *Image[float64] {
	return ConvertSamples[float64](m)
}

// ToUint8 converts a float64 image to uint8 samples, rounding to nearest
// and saturating to [0, 255].
func ToUint8(m *Image[float64]) *Image[uint8] {
	return ConvertSamples[uint8](m)
}

// MapPixels produces a new image where pixel i is f(pixel i of m), with
// outChannels channels per output pixel. f writes its result into dst.
// The alpha flag carries over from the source; callers changing the
// channel count are responsible for keeping the alpha-last convention.
func MapPixels[S, T Sample](m *Image[T], outChannels uint8, f func(src []T, dst []S)) *Image[S] {
	info := m.info
	info.Channels = outChannels
	out := NewBlank[S](info)
	in, oc := int(m.info.Channels), int(outChannels)
	for i := range int(m.info.Size()) {
		f(m.data[i*in:(i+1)*in], out.data[i*oc:(i+1)*oc])
	}
	return out
}

// MapPixelsWithAlpha is MapPixels with alpha handled separately: f sees
// only the color channels and writes outColor samples, g maps the alpha
// sample. On images without alpha, f is applied to whole pixels and the
// output has outColor channels.
func MapPixelsWithAlpha[S, T Sample](m *Image[T], outColor uint8, f func(src []T, dst []S), g func(a T) S) *Image[S] {
	if !m.info.Alpha {
		return MapPixels(m, outColor, f)
	}
	info := m.info
	info.Channels = outColor + 1
	out := NewBlank[S](info)
	in, oc := int(m.info.Channels), int(info.Channels)
	for i := range int(m.info.Size()) {
		src := m.data[i*in : (i+1)*in]
		dst := out.data[i*oc : (i+1)*oc]
		f(src[:in-1], dst[:oc-1])
		dst[oc-1] = g(src[in-1])
	}
	return out
}

// MapChannels produces a new image where every sample is f(sample),
// including alpha samples; use MapChannelsWithAlpha to treat alpha
// separately.
func MapChannels[S, T Sample](m *Image[T], f func(T) S) *Image[S] {
	out := NewBlank[S](m.info)
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// MapChannelsWithAlpha produces a new image where every color sample is
// f(sample) and every alpha sample is g(sample).
func MapChannelsWithAlpha[S, T Sample](m *Image[T], f func(T) S, g func(T) S) *Image[S] {
	if !m.info.Alpha {
		return MapChannels(m, f)
	}
	out := NewBlank[S](m.info)
	ch := int(m.info.Channels)
	for i, v := range m.data {
		if i%ch == ch-1 {
			out.data[i] = g(v)
		} else {
			out.data[i] = f(v)
		}
	}
	return out
}

// clampFloat clamps v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
