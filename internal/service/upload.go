package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/media"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/metrics"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

// maxConcurrentTranscodes bounds per-batch parallelism so one large batch
// cannot monopolize the process.
const maxConcurrentTranscodes = 4

// UploadCandidate is one client-submitted file. The declared attributes
// come from the multipart form and are only trusted after verification.
type UploadCandidate struct {
	Name         string
	DeclaredMIME string
	DeclaredSize int64
	Data         []byte
}

// UploadPolicy is the per-batch admission and storage configuration.
type UploadPolicy struct {
	Bucket           string
	BucketPolicy     domain.BucketPolicy
	AllowedMIMETypes []string
	MaxBytesPerFile  int64
	Transcode        media.Options
}

// ProfileUploadPolicy is the admission policy for profile avatar uploads.
func ProfileUploadPolicy() UploadPolicy {
	return UploadPolicy{
		Bucket:           storage.ProfileBucket,
		BucketPolicy:     storage.ProfileBucketPolicy(),
		AllowedMIMETypes: []string{"image/jpeg", "image/png", "image/webp"},
		MaxBytesPerFile:  5 * 1024 * 1024,
	}
}

// ProjectUploadPolicy is the admission policy for project image uploads.
func ProjectUploadPolicy() UploadPolicy {
	return UploadPolicy{
		Bucket:       storage.ProjectBucket,
		BucketPolicy: storage.ProjectBucketPolicy(),
		AllowedMIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"image/avif", "image/tiff", "image/bmp",
		},
		MaxBytesPerFile: 10 * 1024 * 1024,
	}
}

// ConversionStats aggregates the compression outcome of one batch.
// Totals cover only the files that were actually converted;
// CompressionRatioPercent is nil when nothing was converted.
type ConversionStats struct {
	TotalFiles              int
	ConvertedCount          int
	TotalOriginalSize       int64
	TotalConvertedSize      int64
	CompressionRatioPercent *int
}

// BatchUploadResult is the aggregate of one batch upload. Objects is
// ordered to match the submitted files so callers can correlate results
// positionally.
type BatchUploadResult struct {
	Objects []domain.StoredObject
	Stats   ConversionStats
}

// Transcoder converts image bytes to the pipeline's target format.
// *media.Transcoder is the production implementation; tests inject
// failing ones.
type Transcoder interface {
	Transcode(ctx context.Context, data []byte, opts media.Options) (*media.TranscodeResult, error)
}

// ImageService drives the upload pipeline: admission, transcoding with
// fallback, storage, and deletion by public URL.
type ImageService struct {
	store      domain.ObjectStore
	transcoder Transcoder
	metrics    *metrics.Metrics
}

// NewImageService creates a new ImageService. metrics may be nil.
func NewImageService(store domain.ObjectStore, transcoder Transcoder, m *metrics.Metrics) *ImageService {
	return &ImageService{store: store, transcoder: transcoder, metrics: m}
}

// UploadBatch validates, transcodes, and stores a batch of files.
//
// Admission runs over every file before any expensive work: a disallowed
// declared MIME type, an oversized file, or bytes that do not sniff as a
// supported image reject the whole batch, naming the offending file. After
// admission each file runs through the pipeline independently and
// concurrently; a transcode failure falls back to the original bytes while
// a storage failure fails the batch.
func (s *ImageService) UploadBatch(ctx context.Context, files []UploadCandidate, folder string, policy UploadPolicy) (*BatchUploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files submitted", domain.ErrInvalidInput)
	}

	if err := s.admit(files, policy); err != nil {
		return nil, err
	}

	// One idempotent bucket check per batch, not per file.
	if err := s.store.EnsureBucket(ctx, policy.Bucket, policy.BucketPolicy); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	type fileOutcome struct {
		object    domain.StoredObject
		converted bool
		origSize  int64
		convSize  int64
	}
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTranscodes)

	for i, file := range files {
		g.Go(func() error {
			detected := media.DetectFormat(file.Data)

			data := file.Data
			format := detected.Format
			converted := false

			result, err := s.transcoder.Transcode(gctx, file.Data, policy.Transcode)
			switch {
			case err == nil:
				data = result.Buffer
				format = result.Format
				converted = format != detected.Format
			case isTranscodeError(err):
				// Fall back to the original bytes; the admin's upload still
				// completes, just without compression.
				slog.Warn("transcode failed, storing original",
					"file", file.Name, "format", detected.Format, "error", err)
			default:
				return fmt.Errorf("transcode %s: %w", file.Name, err)
			}

			key := storage.NewObjectKey(folder, format.Ext())
			object, err := s.store.Put(gctx, policy.Bucket, key, data, format.MIMEType())
			if err != nil {
				return fmt.Errorf("store %s: %w", file.Name, err)
			}

			outcomes[i] = fileOutcome{
				object:    object,
				converted: converted,
				origSize:  int64(len(file.Data)),
				convSize:  int64(len(data)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.metrics.RecordFailure()
		return nil, err
	}

	result := &BatchUploadResult{
		Objects: make([]domain.StoredObject, len(files)),
		Stats:   ConversionStats{TotalFiles: len(files)},
	}
	for i, outcome := range outcomes {
		result.Objects[i] = outcome.object
		if !outcome.converted {
			continue
		}
		result.Stats.ConvertedCount++
		result.Stats.TotalOriginalSize += outcome.origSize
		result.Stats.TotalConvertedSize += outcome.convSize
	}
	if result.Stats.ConvertedCount > 0 && result.Stats.TotalOriginalSize > 0 {
		ratio := int(math.Round(float64(result.Stats.TotalOriginalSize-result.Stats.TotalConvertedSize) /
			float64(result.Stats.TotalOriginalSize) * 100))
		result.Stats.CompressionRatioPercent = &ratio
	}

	s.metrics.RecordBatch(len(files), result.Stats.ConvertedCount,
		result.Stats.TotalOriginalSize-result.Stats.TotalConvertedSize)

	return result, nil
}

// admit enforces the per-file policy over the whole batch before any
// transcoding begins. All-or-nothing: the first violation rejects the batch.
func (s *ImageService) admit(files []UploadCandidate, policy UploadPolicy) error {
	for _, file := range files {
		if !mimeAllowed(file.DeclaredMIME, policy.AllowedMIMETypes) {
			return fmt.Errorf("%w: file %q has disallowed type %s", domain.ErrInvalidInput, file.Name, file.DeclaredMIME)
		}
		if policy.MaxBytesPerFile > 0 && file.DeclaredSize > policy.MaxBytesPerFile {
			return fmt.Errorf("%w: file %q exceeds the %d byte limit", domain.ErrInvalidInput, file.Name, policy.MaxBytesPerFile)
		}
	}

	// Sniff after the cheap checks so obviously bad batches never reach the
	// header decoders. A declared MIME type is not trusted: the bytes decide.
	allowed := allowedFormats(policy.AllowedMIMETypes)
	for _, file := range files {
		if detected := media.DetectFormat(file.Data); !detected.Supported(allowed) {
			return fmt.Errorf("%w: file %q is not a supported image", domain.ErrInvalidInput, file.Name)
		}
	}
	return nil
}

// DeleteByPublicURL recovers the object key from a previously issued public
// URL and removes the object. An unextractable URL is a no-op success so a
// delete action never hard-fails on a malformed or legacy URL.
func (s *ImageService) DeleteByPublicURL(ctx context.Context, publicURL, bucket string) error {
	path := storage.ExtractPath(publicURL, bucket)
	if path == "" {
		slog.Debug("no object key recoverable from url, skipping delete", "url", publicURL, "bucket", bucket)
		return nil
	}
	if err := s.store.Remove(ctx, bucket, path); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, path, err)
	}
	return nil
}

func isTranscodeError(err error) bool {
	var te *media.TranscodeError
	return errors.As(err, &te)
}

func mimeAllowed(mime string, allowed []string) bool {
	for _, t := range allowed {
		if t == mime {
			return true
		}
	}
	return false
}

// allowedFormats maps the policy's MIME list onto sniffable formats.
func allowedFormats(mimeTypes []string) []media.Format {
	formats := make([]media.Format, 0, len(mimeTypes))
	for _, t := range mimeTypes {
		switch t {
		case "image/jpeg":
			formats = append(formats, media.FormatJPEG)
		case "image/png":
			formats = append(formats, media.FormatPNG)
		case "image/gif":
			formats = append(formats, media.FormatGIF)
		case "image/webp":
			formats = append(formats, media.FormatWebP)
		case "image/avif":
			formats = append(formats, media.FormatAVIF)
		case "image/tiff":
			formats = append(formats, media.FormatTIFF)
		case "image/bmp":
			formats = append(formats, media.FormatBMP)
		}
	}
	return formats
}
