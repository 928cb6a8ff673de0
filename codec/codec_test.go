package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pictor-go/pictor"
)

func TestPNGRoundTripGray(t *testing.T) {
	img, err := pictor.New[uint8](2, 2, 1, false, []uint8{0, 85, 170, 255})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	data, err := EncodeBytes(img, PNG)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	if !back.Equal(img) {
		t.Errorf("gray PNG round trip changed the image: %v -> %v", img.Data(), back.Data())
	}
}

func TestPNGRoundTripRGB(t *testing.T) {
	img, err := pictor.New[uint8](2, 1, 3, false, []uint8{255, 0, 0, 0, 0, 255})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	data, err := EncodeBytes(img, PNG)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	// A fully opaque image decodes back to three channels.
	if back.Info().Channels != 3 || back.Info().Alpha {
		t.Fatalf("decoded info = %v, want 3 channels without alpha", back.Info())
	}
	if !back.Equal(img) {
		t.Errorf("RGB PNG round trip changed the image: %v -> %v", img.Data(), back.Data())
	}
}

func TestPNGRoundTripRGBA(t *testing.T) {
	img, err := pictor.New[uint8](1, 2, 4, true, []uint8{
		200, 100, 50, 128,
		10, 20, 30, 0,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	data, err := EncodeBytes(img, PNG)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	if back.Info().Channels != 4 || !back.Info().Alpha {
		t.Fatalf("decoded info = %v, want 4 channels with alpha", back.Info())
	}
	got := back.Data()
	// The first pixel survives exactly; the fully transparent pixel only
	// guarantees its alpha value.
	for i := range 4 {
		if got[i] != img.Data()[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], img.Data()[i])
		}
	}
	if got[7] != 0 {
		t.Errorf("transparent alpha = %d, want 0", got[7])
	}
}

func TestBMPRoundTrip(t *testing.T) {
	img, err := pictor.New[uint8](2, 2, 3, false, []uint8{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	data, err := EncodeBytes(img, BMP)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	if !back.Equal(img) {
		t.Error("BMP round trip changed the image")
	}
}

func TestTIFFRoundTrip(t *testing.T) {
	img, err := pictor.New[uint8](3, 1, 3, false, []uint8{9, 8, 7, 6, 5, 4, 3, 2, 1})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	data, err := EncodeBytes(img, TIFF)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	if !back.Equal(img) {
		t.Error("TIFF round trip changed the image")
	}
}

func TestJPEGDecodes(t *testing.T) {
	img := pictor.NewBlank[uint8](pictor.NewImageInfo(8, 8, 3, false))
	img.ApplyChannels(func(uint8) uint8 { return 128 })
	data, err := EncodeBytes(img, JPEG)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	w, h, _ := back.Info().WHC()
	if w != 8 || h != 8 {
		t.Errorf("decoded size = %dx%d, want 8x8", w, h)
	}
	// Lossy, but a flat gray stays close.
	for i, v := range back.Data() {
		if d := int(v) - 128; d < -3 || d > 3 {
			t.Errorf("sample %d = %d, want 128 +/- 3", i, v)
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeBytes([]byte("not an image"))
	if !errors.Is(err, pictor.ErrDecode) {
		t.Errorf("DecodeBytes(garbage) = %v, want ErrDecode", err)
	}
}

func TestEncodeUnsupportedLayout(t *testing.T) {
	// Two channels without the alpha flag has no defined pixel meaning.
	img := pictor.NewBlank[uint8](pictor.NewImageInfo(2, 2, 2, false))
	var buf bytes.Buffer
	if err := Encode(&buf, img, PNG); !errors.Is(err, pictor.ErrEncode) {
		t.Errorf("Encode(2 channels, no alpha) = %v, want ErrEncode", err)
	}
}

func TestEncodeGrayAlpha(t *testing.T) {
	img, err := pictor.New[uint8](1, 1, 2, true, []uint8{180, 90})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	data, err := EncodeBytes(img, PNG)
	if err != nil {
		t.Fatalf("EncodeBytes() = %v", err)
	}
	back, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() = %v", err)
	}
	// Gray + alpha widens to RGBA on decode; the values survive.
	got := back.Data()
	if got[0] != 180 || got[len(got)-1] != 90 {
		t.Errorf("decoded samples = %v, want gray 180 with alpha 90", got)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	img := pictor.NewBlank[uint8](pictor.NewImageInfo(2, 2, 3, false))
	var buf bytes.Buffer
	if err := Encode(&buf, img, Format(99)); !errors.Is(err, pictor.ErrEncode) {
		t.Errorf("Encode(unknown format) = %v, want ErrEncode", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.png", PNG, false},
		{"a.jpg", JPEG, false},
		{"a.JPEG", JPEG, false},
		{"a.gif", GIF, false},
		{"a.bmp", BMP, false},
		{"a.tiff", TIFF, false},
		{"a.xyz", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, pictor.ErrEncode) {
				t.Errorf("FormatForPath(%q) = %v, want ErrEncode", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("FormatForPath(%q) = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	img, err := pictor.New[uint8](2, 2, 1, false, []uint8{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	path := t.TempDir() + "/out.png"
	if err := EncodeFile(path, img); err != nil {
		t.Fatalf("EncodeFile() = %v", err)
	}
	back, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() = %v", err)
	}
	if !back.Equal(img) {
		t.Error("file round trip changed the image")
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile(t.TempDir() + "/missing.png"); !errors.Is(err, pictor.ErrDecode) {
		t.Errorf("DecodeFile(missing) = %v, want ErrDecode", err)
	}
}

func TestFormatString(t *testing.T) {
	if got := JPEG.String(); got != "jpeg" {
		t.Errorf("JPEG.String() = %q, want %q", got, "jpeg")
	}
	if got := Format(42).String(); got != "unknown" {
		t.Errorf("Format(42).String() = %q, want %q", got, "unknown")
	}
}
