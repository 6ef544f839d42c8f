package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// S3Store implements domain.ObjectStore against any S3-compatible service
// (MinIO, AWS S3, ...). Public buckets get an anonymous-read bucket policy
// so PublicURL stays a pure derivation.
type S3Store struct {
	client *minio.Client

	mu       sync.RWMutex
	policies map[string]domain.BucketPolicy
}

var _ domain.ObjectStore = (*S3Store)(nil)

// S3Config holds the connection parameters for an S3-compatible endpoint.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewS3Store connects to the configured S3-compatible endpoint.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &S3Store{
		client:   client,
		policies: make(map[string]domain.BucketPolicy),
	}, nil
}

// EnsureBucket creates the bucket if absent and applies the public-read
// policy when requested. It is idempotent.
func (s *S3Store) EnsureBucket(ctx context.Context, name string, policy domain.BucketPolicy) error {
	exists, err := s.client.BucketExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", name, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, name, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", name, err)
		}
		if policy.Public {
			if err := s.client.SetBucketPolicy(ctx, name, publicReadPolicy(name)); err != nil {
				return fmt.Errorf("set bucket policy %s: %w", name, err)
			}
		}
	}

	s.mu.Lock()
	s.policies[name] = policy
	s.mu.Unlock()
	return nil
}

// Put uploads data under bucket/path. A key collision is a hard failure
// rather than a silent overwrite.
func (s *S3Store) Put(ctx context.Context, bucket, path string, data []byte, contentType string) (domain.StoredObject, error) {
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

	// S3 PUT overwrites silently, so refuse keys that already exist.
	if _, err := s.client.StatObject(ctx, bucket, path, minio.StatObjectOptions{}); err == nil {
		return domain.StoredObject{}, fmt.Errorf("%w: %s/%s", domain.ErrObjectExists, bucket, path)
	}

	_, err = s.client.PutObject(ctx, bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: policy.CacheControl,
	})
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("put object %s/%s: %w", bucket, path, err)
	}

	return domain.StoredObject{
		PublicURL: s.PublicURL(bucket, path),
		Path:      path,
		Bucket:    bucket,
	}, nil
}

// PublicURL derives the public URL for an object without a network call.
func (s *S3Store) PublicURL(bucket, path string) string {
	endpoint := strings.TrimRight(s.client.EndpointURL().String(), "/")
	return endpoint + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}

// Remove deletes the object. Deleting a nonexistent key succeeds.
func (s *S3Store) Remove(ctx context.Context, bucket, path string) error {
	if err := s.client.RemoveObject(ctx, bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s/%s: %w", bucket, path, err)
	}
	return nil
}

func (s *S3Store) policy(bucket string) (domain.BucketPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policy, ok := s.policies[bucket]
	if !ok {
		return domain.BucketPolicy{}, fmt.Errorf("%w: %s", domain.ErrBucketUnknown, bucket)
	}
	return policy, nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, bucket)
}
