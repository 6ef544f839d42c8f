package media

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gen2brain/avif"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Format identifies an image format by its magic bytes, never by a
// client-declared content type.
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatGIF     Format = "gif"
	FormatWebP    Format = "webp"
	FormatAVIF    Format = "avif"
	FormatTIFF    Format = "tiff"
	FormatBMP     Format = "bmp"
	FormatUnknown Format = "unknown"
)

// MIMEType returns the canonical MIME type for the format, or
// application/octet-stream for unknown.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWebP:
		return "image/webp"
	case FormatAVIF:
		return "image/avif"
	case FormatTIFF:
		return "image/tiff"
	case FormatBMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatUnknown {
		return "bin"
	}
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// DetectedFormat is the result of sniffing a byte buffer. Width, Height and
// HasAlpha are populated on a best-effort basis from the image header.
type DetectedFormat struct {
	Format   Format
	Width    int
	Height   int
	HasAlpha bool
}

// Supported reports whether the format is in the given allowed set.
func (d DetectedFormat) Supported(allowed []Format) bool {
	for _, f := range allowed {
		if d.Format == f {
			return true
		}
	}
	return false
}

var configDecoders = map[Format]func(io.Reader) (image.Config, error){
	FormatJPEG: jpeg.DecodeConfig,
	FormatPNG:  png.DecodeConfig,
	FormatGIF:  gif.DecodeConfig,
	FormatWebP: webp.DecodeConfig,
	FormatAVIF: avif.DecodeConfig,
	FormatTIFF: tiff.DecodeConfig,
	FormatBMP:  bmp.DecodeConfig,
}

var decoders = map[Format]func(io.Reader) (image.Image, error){
	FormatJPEG: jpeg.Decode,
	FormatPNG:  png.Decode,
	FormatGIF:  gif.Decode,
	FormatWebP: webp.Decode,
	FormatAVIF: avif.Decode,
	FormatTIFF: tiff.Decode,
	FormatBMP:  bmp.Decode,
}

// DetectFormat sniffs the true image format of data from its magic bytes
// and reads dimensions from the header where possible. It never fails:
// corrupt or non-image input yields FormatUnknown.
func DetectFormat(data []byte) DetectedFormat {
	format := sniff(data)
	if format == FormatUnknown {
		return DetectedFormat{Format: FormatUnknown}
	}

	detected := DetectedFormat{Format: format}

	decodeConfig, ok := configDecoders[format]
	if !ok {
		return detected
	}
	cfg, err := decodeConfig(bytes.NewReader(data))
	if err != nil {
		// Valid magic bytes but an unreadable header; the transcoder will
		// reject it later if the body is corrupt too.
		return detected
	}

	detected.Width = cfg.Width
	detected.Height = cfg.Height
	detected.HasAlpha = alphaCapable(cfg.ColorModel)
	return detected
}

func sniff(data []byte) Format {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return FormatPNG
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return FormatGIF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return FormatWebP
	case len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")) && isAVIFBrand(data[8:12]):
		return FormatAVIF
	case len(data) >= 4 && (bytes.Equal(data[:4], []byte{'I', 'I', 0x2A, 0x00}) || bytes.Equal(data[:4], []byte{'M', 'M', 0x00, 0x2A})):
		return FormatTIFF
	case len(data) >= 2 && bytes.Equal(data[:2], []byte("BM")):
		return FormatBMP
	}
	return FormatUnknown
}

func isAVIFBrand(brand []byte) bool {
	return bytes.Equal(brand, []byte("avif")) || bytes.Equal(brand, []byte("avis"))
}

func alphaCapable(model color.Model) bool {
	switch model {
	case color.NRGBAModel, color.NRGBA64Model, color.RGBAModel, color.RGBA64Model, color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}
