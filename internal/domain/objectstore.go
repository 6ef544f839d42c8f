package domain

import "context"

// BucketPolicy describes the admission rules for a bucket. The object store
// enforces allowed MIME types and the size cap on every Put.
type BucketPolicy struct {
	Public           bool
	AllowedMIMETypes []string
	MaxObjectBytes   int64
	CacheControl     string
}

// Allows reports whether contentType is in the policy's allowed set.
// An empty set allows everything.
func (p BucketPolicy) Allows(contentType string) bool {
	if len(p.AllowedMIMETypes) == 0 {
		return true
	}
	for _, t := range p.AllowedMIMETypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// StoredObject is the result of persisting bytes in the object store.
// PublicURL is the client-shareable reference; Path is the bucket-relative
// key used for deletion and is derivable from the URL.
type StoredObject struct {
	PublicURL string
	Path      string
	Bucket    string
}

// ObjectStore abstracts binary object storage with public-URL semantics.
// The initial implementations are a local filesystem store served by the
// app itself and an S3-compatible store; the backend is swappable.
type ObjectStore interface {
	// EnsureBucket creates the bucket with the given policy if it does not
	// exist. It is idempotent and cheap to call once per request.
	EnsureBucket(ctx context.Context, name string, policy BucketPolicy) error

	// Put stores data under the given key. Existing objects are never
	// overwritten; a key collision is an error.
	Put(ctx context.Context, bucket, path string, data []byte, contentType string) (StoredObject, error)

	// PublicURL derives the public URL for an object without a network call.
	PublicURL(bucket, path string) string

	// Remove deletes the object. Removing a nonexistent object is not an
	// error from the caller's perspective.
	Remove(ctx context.Context, bucket, path string) error
}
