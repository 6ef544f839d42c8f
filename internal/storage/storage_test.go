package storage_test

import (
	"strings"
	"testing"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

func TestNewObjectKey(t *testing.T) {
	key := storage.NewObjectKey("", "avif")

	if !strings.HasSuffix(key, ".avif") {
		t.Fatalf("expected .avif suffix, got %s", key)
	}
	if strings.Contains(key, "/") {
		t.Fatalf("key without folder must not contain a slash, got %s", key)
	}
	parts := strings.SplitN(strings.TrimSuffix(key, ".avif"), "_", 2)
	if len(parts) != 2 {
		t.Fatalf("expected timestamp_token form, got %s", key)
	}
	if len(parts[1]) != 32 {
		t.Fatalf("expected 32 hex chars of token, got %d in %s", len(parts[1]), key)
	}
}

func TestNewObjectKey_Folder(t *testing.T) {
	key := storage.NewObjectKey("gallery", "jpg")
	if !strings.HasPrefix(key, "gallery/") {
		t.Fatalf("expected gallery/ prefix, got %s", key)
	}

	// Surrounding slashes in the folder are trimmed, not doubled.
	key = storage.NewObjectKey("/gallery/", "jpg")
	if !strings.HasPrefix(key, "gallery/") || strings.Contains(key, "//") {
		t.Fatalf("expected clean gallery/ prefix, got %s", key)
	}
}

func TestNewObjectKey_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		key := storage.NewObjectKey("", "png")
		if seen[key] {
			t.Fatalf("duplicate key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestExtractPath(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		bucket string
		want   string
	}{
		{
			"local style url",
			"http://localhost:8080/media/project-images/123_abc.avif",
			"project-images",
			"123_abc.avif",
		},
		{
			"s3 style url",
			"https://s3.example.com/project-images/gallery/123_abc.avif",
			"project-images",
			"gallery/123_abc.avif",
		},
		{
			"nested folder survives",
			"http://localhost:8080/media/profile-images/a/b/c.avif",
			"profile-images",
			"a/b/c.avif",
		},
		{
			"bucket segment missing",
			"http://localhost:8080/media/other-bucket/123.avif",
			"project-images",
			"",
		},
		{
			"bucket with nothing after it",
			"http://localhost:8080/media/project-images/",
			"project-images",
			"",
		},
		{
			"external url",
			"https://example.org/some/unrelated/path.png",
			"project-images",
			"",
		},
		{
			"empty url",
			"",
			"project-images",
			"",
		},
		{
			"unparseable url",
			"http://bad url with spaces/project-images/x.avif",
			"project-images",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.ExtractPath(tt.url, tt.bucket)
			if got != tt.want {
				t.Fatalf("ExtractPath(%q, %q) = %q, want %q", tt.url, tt.bucket, got, tt.want)
			}
		})
	}
}

func TestBucketPolicies(t *testing.T) {
	profile := storage.ProfileBucketPolicy()
	if !profile.Allows("image/png") {
		t.Fatal("profile bucket must allow png")
	}
	if profile.Allows("image/tiff") {
		t.Fatal("profile bucket must not allow tiff")
	}

	project := storage.ProjectBucketPolicy()
	if !project.Allows("image/tiff") {
		t.Fatal("project bucket must allow tiff")
	}
	if project.Allows("application/pdf") {
		t.Fatal("project bucket must not allow pdf")
	}
}
