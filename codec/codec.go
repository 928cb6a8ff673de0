// Package codec reads and writes images in common raster formats.
// Decoding produces a uint8 buffer whose channel count reflects the
// source: grayscale becomes one channel, opaque color three, color
// with transparency four (the last channel holding alpha). Encoding
// accepts the same three layouts.
//
// PNG, JPEG, GIF, BMP and TIFF round-trip; WebP is decode only.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pictor-go/pictor"
)

// Format identifies an encoding target.
type Format uint8

const (
	// PNG encodes lossless RGBA.
	PNG Format = iota

	// JPEG encodes lossy RGB at quality 95; alpha is discarded.
	JPEG

	// GIF encodes a 256-color palette image.
	GIF

	// BMP encodes uncompressed RGB.
	BMP

	// TIFF encodes uncompressed RGBA.
	TIFF
)

// String returns the canonical lower-case format name.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// FormatForPath derives the format from a file extension. Returns
// ErrEncode for extensions with no registered encoder.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".gif":
		return GIF, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return 0, fmt.Errorf("%w: no encoder for %q", pictor.ErrEncode, filepath.Ext(path))
	}
}

// Decode reads an image in any registered format from r.
func Decode(r io.Reader) (*pictor.Image[uint8], error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pictor.ErrDecode, err)
	}
	img, err := fromImage(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %s image: %s", pictor.ErrDecode, format, err)
	}
	info := img.Info()
	pictor.Logger().Debug("codec: decoded image", "format", format,
		"width", info.Width, "height", info.Height, "channels", info.Channels, "alpha", info.Alpha)
	return img, nil
}

// DecodeBytes decodes an in-memory encoded image.
func DecodeBytes(data []byte) (*pictor.Image[uint8], error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile decodes the image at path.
func DecodeFile(path string) (*pictor.Image[uint8], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pictor.ErrDecode, err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *pictor.Image[uint8], format Format) error {
	m, err := toImage(img)
	if err != nil {
		return err
	}
	switch format {
	case PNG:
		err = png.Encode(w, m)
	case JPEG:
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	case GIF:
		err = gif.Encode(w, m, nil)
	case BMP:
		err = bmp.Encode(w, m)
	case TIFF:
		err = tiff.Encode(w, m, nil)
	default:
		return fmt.Errorf("%w: unknown format %d", pictor.ErrEncode, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %s", pictor.ErrEncode, format, err)
	}
	return nil
}

// EncodeBytes encodes img into a fresh byte slice.
func EncodeBytes(img *pictor.Image[uint8], format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeFile writes img to path, deriving the format from the
// extension.
func EncodeFile(path string, img *pictor.Image[uint8]) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s", pictor.ErrEncode, err)
	}
	defer f.Close()
	return Encode(f, img, format)
}

// fromImage flattens a decoded image into interleaved samples. Gray
// sources keep a single channel; everything else becomes RGB, plus an
// alpha channel when the source is not fully opaque.
func fromImage(m image.Image) (*pictor.Image[uint8], error) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty %dx%d bounds", w, h)
	}

	if g, ok := m.(*image.Gray); ok {
		img := pictor.NewEmpty[uint8](pictor.NewImageInfo(uint32(w), uint32(h), 1, false))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				img.AppendPixel([]uint8{g.GrayAt(x, y).Y})
			}
		}
		return img, nil
	}

	alpha := !opaque(m)
	var channels uint8 = 3
	if alpha {
		channels = 4
	}
	img := pictor.NewEmpty[uint8](pictor.NewImageInfo(uint32(w), uint32(h), channels, alpha))
	px := make([]uint8, channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			px[0], px[1], px[2] = c.R, c.G, c.B
			if alpha {
				px[3] = c.A
			}
			img.AppendPixel(px)
		}
	}
	return img, nil
}

// toImage builds the stdlib image backing an encode call. One channel
// maps to Gray, two (gray + alpha) and four to NRGBA, three to fully
// opaque NRGBA.
func toImage(img *pictor.Image[uint8]) (image.Image, error) {
	info := img.Info()
	w, h := int(info.Width), int(info.Height)
	data := img.Data()

	switch {
	case info.Channels == 1:
		m := image.NewGray(image.Rect(0, 0, w, h))
		for y := range h {
			copy(m.Pix[y*m.Stride:y*m.Stride+w], data[y*w:(y+1)*w])
		}
		return m, nil
	case info.Channels == 2 && info.Alpha:
		m := image.NewNRGBA(image.Rect(0, 0, w, h))
		for i := range w * h {
			s := data[i*2 : i*2+2]
			d := m.Pix[i*4 : i*4+4]
			d[0], d[1], d[2], d[3] = s[0], s[0], s[0], s[1]
		}
		return m, nil
	case info.Channels == 3 && !info.Alpha:
		m := image.NewNRGBA(image.Rect(0, 0, w, h))
		for i := range w * h {
			s := data[i*3 : i*3+3]
			d := m.Pix[i*4 : i*4+4]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 255
		}
		return m, nil
	case info.Channels == 4 && info.Alpha:
		m := image.NewNRGBA(image.Rect(0, 0, w, h))
		copy(m.Pix, data)
		return m, nil
	default:
		return nil, fmt.Errorf("%w: no layout for %d channels (alpha=%t)", pictor.ErrEncode, info.Channels, info.Alpha)
	}
}

// opaque reports whether every pixel of m has full alpha.
func opaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
