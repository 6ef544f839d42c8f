package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// LocalStore implements domain.ObjectStore on the local filesystem.
// Objects are served back by the app itself under /media/{bucket}/{path},
// so PublicURL is derived from the configured base URL.
type LocalStore struct {
	baseDir string
	baseURL string

	mu       sync.RWMutex
	policies map[string]domain.BucketPolicy
}

var _ domain.ObjectStore = (*LocalStore)(nil)

// NewLocalStore creates a filesystem-backed store rooted at baseDir.
func NewLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &LocalStore{
		baseDir:  baseDir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		policies: make(map[string]domain.BucketPolicy),
	}, nil
}

// EnsureBucket creates the bucket directory if needed and records its policy.
func (s *LocalStore) EnsureBucket(ctx context.Context, name string, policy domain.BucketPolicy) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, name), 0o755); err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	s.mu.Lock()
	s.policies[name] = policy
	s.mu.Unlock()
	return nil
}

// Put writes data under bucket/path. Existing objects are never overwritten.
func (s *LocalStore) Put(ctx context.Context, bucket, path string, data []byte, contentType string) (domain.StoredObject, error) {
	policy, err := s.policy(bucket)
	if err != nil {
		return domain.StoredObject{}, err
	}
	if !policy.Allows(contentType) {
		return domain.StoredObject{}, fmt.Errorf("%w: content type %s not allowed in bucket %s", domain.ErrInvalidInput, contentType, bucket)
	}
	if policy.MaxObjectBytes > 0 && int64(len(data)) > policy.MaxObjectBytes {
		return domain.StoredObject{}, fmt.Errorf("%w: object of %d bytes exceeds bucket limit %d", domain.ErrInvalidInput, len(data), policy.MaxObjectBytes)
	}

	full, err := s.resolve(bucket, path)
	if err != nil {
		return domain.StoredObject{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return domain.StoredObject{}, fmt.Errorf("create object directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return domain.StoredObject{}, fmt.Errorf("%w: %s/%s", domain.ErrObjectExists, bucket, path)
		}
		return domain.StoredObject{}, fmt.Errorf("create object file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(full)
		return domain.StoredObject{}, fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return domain.StoredObject{}, fmt.Errorf("close object file: %w", err)
	}

	return domain.StoredObject{
		PublicURL: s.PublicURL(bucket, path),
		Path:      path,
		Bucket:    bucket,
	}, nil
}

// PublicURL derives the public URL for an object without touching the disk.
func (s *LocalStore) PublicURL(bucket, path string) string {
	return s.baseURL + "/media/" + bucket + "/" + strings.TrimLeft(path, "/")
}

// Remove deletes the object. A missing object is not an error.
func (s *LocalStore) Remove(ctx context.Context, bucket, path string) error {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// Open returns the object bytes for serving over HTTP.
func (s *LocalStore) Open(bucket, path string) ([]byte, error) {
	full, err := s.resolve(bucket, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (s *LocalStore) policy(bucket string) (domain.BucketPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policy, ok := s.policies[bucket]
	if !ok {
		return domain.BucketPolicy{}, fmt.Errorf("%w: %s", domain.ErrBucketUnknown, bucket)
	}
	return policy, nil
}

// resolve joins bucket and path under the base directory, rejecting keys
// that would escape it.
func (s *LocalStore) resolve(bucket, path string) (string, error) {
	full := filepath.Join(s.baseDir, bucket, filepath.FromSlash(path))
	base := filepath.Clean(s.baseDir) + string(os.PathSeparator)
	if !strings.HasPrefix(filepath.Clean(full), base) {
		return "", fmt.Errorf("%w: path traversal in key %q", domain.ErrInvalidInput, path)
	}
	return full, nil
}
