package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
)

// TargetFormat is the compressed format every upload is converted to.
const TargetFormat = FormatAVIF

// Default transcoding policy. Callers override per run via Options.
const (
	DefaultQuality   = 80
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080
	DefaultSpeed     = 4 // 0 = smallest output, 10 = fastest encode
	DefaultTimeout   = 30 * time.Second
)

// Options controls a single transcode run. Zero values fall back to the
// package defaults. Aspect ratio is preserved unless StretchToFit is set.
type Options struct {
	Quality      int
	MaxWidth     int
	MaxHeight    int
	StretchToFit bool // When set, width and height are clamped independently
	Speed        int
	Timeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.MaxHeight == 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	if o.Speed == 0 {
		o.Speed = DefaultSpeed
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// TranscodeResult is the output of a successful transcode.
// ConvertedSize always equals len(Buffer). A ConvertedSize larger than
// OriginalSize is a legitimate outcome for already-well-compressed input.
type TranscodeResult struct {
	Buffer        []byte
	Format        Format
	Quality       int
	OriginalSize  int
	ConvertedSize int
}

// TranscodeError wraps any failure inside the transcode step. Callers are
// expected to recover by storing the original bytes in their original
// format instead of failing the whole upload.
type TranscodeError struct {
	Err error
}

func (e *TranscodeError) Error() string { return fmt.Sprintf("transcode: %v", e.Err) }

func (e *TranscodeError) Unwrap() error { return e.Err }

// EncodeFunc encodes an image at the given quality and speed. It exists as
// a seam so tests can inject failing or slow encoders.
type EncodeFunc func(w io.Writer, img image.Image, quality, speed int) error

// Transcoder decodes an image, shrinks it to fit inside the configured
// bounds (never upscaling), and re-encodes it to TargetFormat.
type Transcoder struct {
	encode EncodeFunc
}

// NewTranscoder returns a Transcoder using the AVIF encoder.
func NewTranscoder() *Transcoder {
	return &Transcoder{encode: encodeAVIF}
}

// NewTranscoderWithEncoder returns a Transcoder using a custom encoder.
func NewTranscoderWithEncoder(encode EncodeFunc) *Transcoder {
	return &Transcoder{encode: encode}
}

// Transcode converts data to TargetFormat. The input must already be a
// supported, decodable image; anything else yields a *TranscodeError.
func (t *Transcoder) Transcode(ctx context.Context, data []byte, opts Options) (*TranscodeResult, error) {
	opts = opts.withDefaults()
	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, &TranscodeError{Err: fmt.Errorf("quality %d out of range [1,100]", opts.Quality)}
	}

	detected := DetectFormat(data)
	decode, ok := decoders[detected.Format]
	if !ok {
		return nil, &TranscodeError{Err: fmt.Errorf("undecodable format %q", detected.Format)}
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, &TranscodeError{Err: fmt.Errorf("decode %s: %w", detected.Format, err)}
	}

	img = shrinkToFit(img, opts)

	buf, err := t.encodeWithTimeout(ctx, img, opts)
	if err != nil {
		return nil, &TranscodeError{Err: err}
	}

	return &TranscodeResult{
		Buffer:        buf,
		Format:        TargetFormat,
		Quality:       opts.Quality,
		OriginalSize:  len(data),
		ConvertedSize: len(buf),
	}, nil
}

// shrinkToFit scales the image down to fit inside MaxWidth x MaxHeight.
// Images already inside the bounds are returned untouched; nothing is
// ever enlarged.
func shrinkToFit(img image.Image, opts Options) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= opts.MaxWidth && h <= opts.MaxHeight {
		return img
	}

	if opts.StretchToFit {
		return imaging.Resize(img, min(w, opts.MaxWidth), min(h, opts.MaxHeight), imaging.Lanczos)
	}
	return imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
}

// encodeWithTimeout runs the encoder in its own goroutine so a pathological
// image cannot stall a batch past opts.Timeout.
func (t *Transcoder) encodeWithTimeout(ctx context.Context, img image.Image, opts Options) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	type encoded struct {
		buf []byte
		err error
	}
	done := make(chan encoded, 1)

	go func() {
		var buf bytes.Buffer
		err := t.encode(&buf, img, opts.Quality, opts.Speed)
		done <- encoded{buf: buf.Bytes(), err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("encode %s: %w", TargetFormat, res.err)
		}
		return res.buf, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("encode %s: %w", TargetFormat, ctx.Err())
	}
}

func encodeAVIF(w io.Writer, img image.Image, quality, speed int) error {
	return avif.Encode(w, img, avif.Options{
		Quality:      quality,
		QualityAlpha: quality,
		Speed:        speed,
	})
}
