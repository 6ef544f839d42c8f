// Package storage provides object store backends and the key/URL scheme
// shared between them.
package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// Logical bucket names. Profile and project images carry different
// admission policies, so they live in separate buckets.
const (
	ProfileBucket = "profile-images"
	ProjectBucket = "project-images"
)

// ProfileBucketPolicy limits profile uploads to 5MB of the common web formats.
func ProfileBucketPolicy() domain.BucketPolicy {
	return domain.BucketPolicy{
		Public:           true,
		AllowedMIMETypes: []string{"image/jpeg", "image/png", "image/webp", "image/avif"},
		MaxObjectBytes:   5 * 1024 * 1024,
		CacheControl:     "public, max-age=3600",
	}
}

// ProjectBucketPolicy accepts every format the transcoder understands,
// up to 10MB pre-transcode.
func ProjectBucketPolicy() domain.BucketPolicy {
	return domain.BucketPolicy{
		Public: true,
		AllowedMIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"image/avif", "image/tiff", "image/bmp",
		},
		MaxObjectBytes: 10 * 1024 * 1024,
		CacheControl:   "public, max-age=3600",
	}
}

// NewObjectKey builds a collision-resistant object key of the form
// {folder/}{unix_timestamp}_{random_token}.{ext}. Uniqueness comes from the
// key scheme itself, so no existence round-trip is needed before upload.
func NewObjectKey(folder, ext string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	key := fmt.Sprintf("%d_%s.%s", time.Now().Unix(), token, ext)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

// ExtractPath recovers the bucket-relative object key from a previously
// issued public URL. It returns "" when the URL does not contain the bucket
// segment; callers treat that as "nothing recoverable to delete", not as an
// error.
func ExtractPath(publicURL, bucket string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg != bucket {
			continue
		}
		rest := segments[i+1:]
		if len(rest) == 0 {
			return ""
		}
		path := strings.Join(rest, "/")
		if strings.Trim(path, "/") == "" {
			return ""
		}
		return path
	}
	return ""
}
