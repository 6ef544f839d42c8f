package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/media"
)

// encodePNG renders a small image so tests sniff real header bytes, not
// hand-written magic numbers.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat_PNG(t *testing.T) {
	data := encodePNG(t, 40, 30)

	detected := media.DetectFormat(data)
	if detected.Format != media.FormatPNG {
		t.Fatalf("expected png, got %s", detected.Format)
	}
	if detected.Width != 40 || detected.Height != 30 {
		t.Fatalf("expected 40x30, got %dx%d", detected.Width, detected.Height)
	}
	if !detected.HasAlpha {
		t.Fatal("expected NRGBA png to report alpha capability")
	}
}

func TestDetectFormat_JPEG(t *testing.T) {
	data := encodeJPEG(t, 16, 8)

	detected := media.DetectFormat(data)
	if detected.Format != media.FormatJPEG {
		t.Fatalf("expected jpeg, got %s", detected.Format)
	}
	if detected.Width != 16 || detected.Height != 8 {
		t.Fatalf("expected 16x8, got %dx%d", detected.Width, detected.Height)
	}
	if detected.HasAlpha {
		t.Fatal("jpeg must not report alpha")
	}
}

func TestDetectFormat_MagicBytesOnly(t *testing.T) {
	// Headers with valid magic bytes but no decodable body still identify
	// the format; dimensions stay zero.
	tests := []struct {
		name string
		data []byte
		want media.Format
	}{
		{"gif87a", []byte("GIF87a trailing"), media.FormatGIF},
		{"gif89a", []byte("GIF89a trailing"), media.FormatGIF},
		{"webp", append([]byte("RIFF"), []byte{0, 0, 0, 0, 'W', 'E', 'B', 'P'}...), media.FormatWebP},
		{"avif", append([]byte{0, 0, 0, 0x20}, []byte("ftypavif")...), media.FormatAVIF},
		{"avis", append([]byte{0, 0, 0, 0x20}, []byte("ftypavis")...), media.FormatAVIF},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0x00}, media.FormatTIFF},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2A}, media.FormatTIFF},
		{"bmp", []byte("BM      "), media.FormatBMP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detected := media.DetectFormat(tt.data)
			if detected.Format != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, detected.Format)
			}
		})
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("hello, not an image")},
		{"exe", []byte{'M', 'Z', 0x90, 0x00, 0x03}},
		{"ftyp without avif brand", append([]byte{0, 0, 0, 0x20}, []byte("ftypmp42")...)},
		{"truncated png magic", []byte{0x89, 'P', 'N', 'G'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detected := media.DetectFormat(tt.data)
			if detected.Format != media.FormatUnknown {
				t.Fatalf("expected unknown, got %s", detected.Format)
			}
		})
	}
}

func TestDetectedFormat_Supported(t *testing.T) {
	allowed := []media.Format{media.FormatJPEG, media.FormatPNG}

	if !(media.DetectedFormat{Format: media.FormatPNG}).Supported(allowed) {
		t.Fatal("png should be supported")
	}
	if (media.DetectedFormat{Format: media.FormatGIF}).Supported(allowed) {
		t.Fatal("gif should not be supported")
	}
	if (media.DetectedFormat{Format: media.FormatUnknown}).Supported(allowed) {
		t.Fatal("unknown is never supported")
	}
}

func TestFormat_MIMETypeAndExt(t *testing.T) {
	if got := media.FormatAVIF.MIMEType(); got != "image/avif" {
		t.Fatalf("expected image/avif, got %s", got)
	}
	if got := media.FormatJPEG.Ext(); got != "jpg" {
		t.Fatalf("expected jpg, got %s", got)
	}
	if got := media.FormatUnknown.MIMEType(); got != "application/octet-stream" {
		t.Fatalf("expected application/octet-stream, got %s", got)
	}
}

func TestFormat_ColorModelAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 128})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	detected := media.DetectFormat(buf.Bytes())
	if !detected.HasAlpha {
		t.Fatal("expected alpha-capable color model")
	}
}
