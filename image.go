package pictor

import "fmt"

// Sample is the constraint for valid image sample types. Integer samples
// saturate to their representable range when written back from float
// arithmetic; float samples are stored as computed.
type Sample interface {
	~uint8 | ~uint16 | ~float32 | ~float64
}

// ImageInfo is a value-type snapshot of an image's shape. It is copied
// freely and never aliases the buffer it describes.
type ImageInfo struct {
	Width    uint32
	Height   uint32
	Channels uint8

	// Alpha reports whether the last channel is an alpha channel.
	// When set, channel-wise operations pass alpha through untouched
	// unless the caller opts in via the *WithAlpha variants.
	Alpha bool
}

// NewImageInfo creates an ImageInfo.
func NewImageInfo(width, height uint32, channels uint8, alpha bool) ImageInfo {
	return ImageInfo{Width: width, Height: height, Channels: channels, Alpha: alpha}
}

// WH returns the width and height.
func (n ImageInfo) WH() (uint32, uint32) {
	return n.Width, n.Height
}

// WHC returns the width, height and channel count.
func (n ImageInfo) WHC() (uint32, uint32, uint8) {
	return n.Width, n.Height, n.Channels
}

// WHCA returns the width, height, channel count and alpha flag.
func (n ImageInfo) WHCA() (uint32, uint32, uint8, bool) {
	return n.Width, n.Height, n.Channels, n.Alpha
}

// ChannelsNonAlpha returns the number of color channels, excluding alpha.
func (n ImageInfo) ChannelsNonAlpha() uint8 {
	if n.Alpha {
		return n.Channels - 1
	}
	return n.Channels
}

// IsGrayscale reports whether the image has a single color channel,
// not counting alpha.
func (n ImageInfo) IsGrayscale() bool {
	return n.ChannelsNonAlpha() == 1
}

// Size returns the number of pixels (width * height).
func (n ImageInfo) Size() uint32 {
	return n.Width * n.Height
}

// FullSize returns the number of samples (width * height * channels).
func (n ImageInfo) FullSize() uint32 {
	return n.Width * n.Height * uint32(n.Channels)
}

// String returns a human-readable description of the shape.
func (n ImageInfo) String() string {
	return fmt.Sprintf("%dx%d, %d channels, alpha=%t", n.Width, n.Height, n.Channels, n.Alpha)
}

// Image is a rectangular pixel buffer of samples of type T. Samples are
// stored row-major and channel-interleaved: the pixel at column x, row y
// occupies data[(y*width+x)*channels : (y*width+x+1)*channels].
//
// Transforms never mutate their source; mutation happens only through the
// explicit SetPixel/Apply methods.
type Image[T Sample] struct {
	info ImageInfo
	data []T
}

// New creates an image from an existing sample slice. The data is copied.
// Returns ErrShape if len(data) != width*height*channels.
func New[T Sample](width, height uint32, channels uint8, alpha bool, data []T) (*Image[T], error) {
	info := ImageInfo{Width: width, Height: height, Channels: channels, Alpha: alpha}
	if len(data) != int(info.FullSize()) {
		return nil, shapeErr(int(info.FullSize()), len(data))
	}
	buf := make([]T, len(data))
	copy(buf, data)
	return &Image[T]{info: info, data: buf}, nil
}

// NewBlank creates an image with every sample set to the zero value.
func NewBlank[T Sample](info ImageInfo) *Image[T] {
	return &Image[T]{info: info, data: make([]T, info.FullSize())}
}

// NewEmpty creates an image whose buffer has the full capacity reserved
// but no samples filled in yet. Pixels are appended with AppendPixel until
// the buffer is complete.
func NewEmpty[T Sample](info ImageInfo) *Image[T] {
	return &Image[T]{info: info, data: make([]T, 0, info.FullSize())}
}

// FromRows creates an image from a slice of per-pixel sample slices, in
// row-major order. Returns ErrShape if the totals do not match the shape,
// or ErrChannelMismatch if any pixel has the wrong length.
func FromRows[T Sample](width, height uint32, channels uint8, alpha bool, pixels [][]T) (*Image[T], error) {
	info := ImageInfo{Width: width, Height: height, Channels: channels, Alpha: alpha}
	if len(pixels) != int(info.Size()) {
		return nil, shapeErr(int(info.Size()), len(pixels))
	}
	data := make([]T, 0, info.FullSize())
	for _, px := range pixels {
		if len(px) != int(channels) {
			return nil, channelErr(channels, len(px))
		}
		data = append(data, px...)
	}
	return &Image[T]{info: info, data: data}, nil
}

// Info returns a snapshot of the image's shape.
func (m *Image[T]) Info() ImageInfo {
	return m.info
}

// Data returns the raw sample slice. The layout is row-major and
// channel-interleaved; this is the contract any serializer must honor.
func (m *Image[T]) Data() []T {
	return m.data
}

// Complete reports whether the buffer holds every sample of its shape.
// Images built with NewEmpty are incomplete until fully appended.
func (m *Image[T]) Complete() bool {
	return len(m.data) == int(m.info.FullSize())
}

// AppendPixel appends one pixel to an image created with NewEmpty.
// Returns ErrChannelMismatch for a wrong pixel length and ErrShape when
// the buffer is already full.
func (m *Image[T]) AppendPixel(px []T) error {
	if len(px) != int(m.info.Channels) {
		return channelErr(m.info.Channels, len(px))
	}
	if len(m.data)+len(px) > int(m.info.FullSize()) {
		return shapeErr(int(m.info.FullSize()), len(m.data)+len(px))
	}
	m.data = append(m.data, px...)
	return nil
}

// Index returns the sample offset of the pixel at (x, y). The coordinate
// is not bounds-checked.
func (m *Image[T]) Index(x, y int) int {
	return (y*int(m.info.Width) + x) * int(m.info.Channels)
}

// pixel returns the channel slice at (x, y) without bounds checking.
func (m *Image[T]) pixel(x, y int) []T {
	i := m.Index(x, y)
	return m.data[i : i+int(m.info.Channels)]
}

// Pixel returns a read-only view of the channel slice at (x, y).
// Returns ErrOutOfBounds if the coordinate is outside the image.
func (m *Image[T]) Pixel(x, y int) ([]T, error) {
	if x < 0 || y < 0 || x >= int(m.info.Width) || y >= int(m.info.Height) {
		return nil, boundsErr(x, y, m.info.Width, m.info.Height)
	}
	return m.pixel(x, y), nil
}

// PixelAt returns a read-only view of the channel slice of pixel i in
// row-major order. Returns ErrOutOfBounds if i >= width*height.
func (m *Image[T]) PixelAt(i int) ([]T, error) {
	if i < 0 || i >= int(m.info.Size()) {
		return nil, indexErr(i, m.info.Size())
	}
	start := i * int(m.info.Channels)
	return m.data[start : start+int(m.info.Channels)], nil
}

// PixelClamped returns the channel slice at (x, y) with both coordinates
// clamped to the image extent.
func (m *Image[T]) PixelClamped(x, y int) []T {
	x = clampInt(x, 0, int(m.info.Width)-1)
	y = clampInt(y, 0, int(m.info.Height)-1)
	return m.pixel(x, y)
}

// SetPixel overwrites the channel slice at (x, y). Returns
// ErrChannelMismatch if len(px) differs from the channel count and
// ErrOutOfBounds if the coordinate is outside the image.
func (m *Image[T]) SetPixel(x, y int, px []T) error {
	if len(px) != int(m.info.Channels) {
		return channelErr(m.info.Channels, len(px))
	}
	if x < 0 || y < 0 || x >= int(m.info.Width) || y >= int(m.info.Height) {
		return boundsErr(x, y, m.info.Width, m.info.Height)
	}
	copy(m.pixel(x, y), px)
	return nil
}

// SetPixelAt overwrites the channel slice of pixel i in row-major order.
func (m *Image[T]) SetPixelAt(i int, px []T) error {
	if len(px) != int(m.info.Channels) {
		return channelErr(m.info.Channels, len(px))
	}
	if i < 0 || i >= int(m.info.Size()) {
		return indexErr(i, m.info.Size())
	}
	start := i * int(m.info.Channels)
	copy(m.data[start:start+int(m.info.Channels)], px)
	return nil
}

// setPixelUnchecked overwrites the channel slice of pixel i without any
// validation. Engines use it after pre-validating shapes once.
func (m *Image[T]) setPixelUnchecked(i int, px []T) {
	start := i * int(m.info.Channels)
	copy(m.data[start:start+int(m.info.Channels)], px)
}

// Clone returns a deep copy of the image.
func (m *Image[T]) Clone() *Image[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Image[T]{info: m.info, data: data}
}

// Equal reports whether two images have identical shape and samples.
func (m *Image[T]) Equal(other *Image[T]) bool {
	if m.info != other.info || len(m.data) != len(other.data) {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Map produces a new image of identical shape by replacing every pixel
// with f(pixel). When the image has an alpha channel it is passed to f as
// part of the pixel; use MapWithAlpha to keep alpha untouched. Returns
// ErrChannelMismatch if f changes the pixel length.
func (m *Image[T]) Map(f func(px []T) []T) (*Image[T], error) {
	out := NewBlank[T](m.info)
	ch := int(m.info.Channels)
	for i := range int(m.info.Size()) {
		px := f(m.data[i*ch : (i+1)*ch])
		if len(px) != ch {
			return nil, channelErr(m.info.Channels, len(px))
		}
		out.setPixelUnchecked(i, px)
	}
	return out, nil
}

// MapWithAlpha is Map with the alpha channel handled separately: f sees
// only the color channels and g maps the alpha sample. On images without
// alpha it behaves exactly like Map.
func (m *Image[T]) MapWithAlpha(f func(px []T) []T, g func(a T) T) (*Image[T], error) {
	if !m.info.Alpha {
		return m.Map(f)
	}
	out := NewBlank[T](m.info)
	ch := int(m.info.Channels)
	for i := range int(m.info.Size()) {
		src := m.data[i*ch : (i+1)*ch]
		px := f(src[:ch-1])
		if len(px) != ch-1 {
			return nil, channelErr(m.info.Channels-1, len(px))
		}
		dst := out.data[i*ch : (i+1)*ch]
		copy(dst, px)
		dst[ch-1] = g(src[ch-1])
	}
	return out, nil
}

// Apply mutates the image in place, replacing each pixel with f(pixel).
// f writes its result back into the slice it is handed.
func (m *Image[T]) Apply(f func(px []T)) {
	ch := int(m.info.Channels)
	for i := range int(m.info.Size()) {
		f(m.data[i*ch : (i+1)*ch])
	}
}

// ApplyChannels mutates every sample in place with f. Alpha samples are
// included; use ApplyChannelsWithAlpha to treat them separately.
func (m *Image[T]) ApplyChannels(f func(T) T) {
	for i, v := range m.data {
		m.data[i] = f(v)
	}
}

// ApplyChannelsWithAlpha mutates every color sample with f and every
// alpha sample with g.
func (m *Image[T]) ApplyChannelsWithAlpha(f func(T) T, g func(T) T) {
	if !m.info.Alpha {
		m.ApplyChannels(f)
		return
	}
	ch := int(m.info.Channels)
	for i, v := range m.data {
		if i%ch == ch-1 {
			m.data[i] = g(v)
		} else {
			m.data[i] = f(v)
		}
	}
}

// EditChannel mutates channel c of every pixel in place with f.
// Returns ErrInvalidParam if c is not a valid channel index.
func (m *Image[T]) EditChannel(c int, f func(T) T) error {
	if c < 0 || c >= int(m.info.Channels) {
		return InvalidParamf("channel %d of %d", c, m.info.Channels)
	}
	ch := int(m.info.Channels)
	for i := c; i < len(m.data); i += ch {
		m.data[i] = f(m.data[i])
	}
	return nil
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
