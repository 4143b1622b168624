package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Buckets mirror the original media groupings.
const (
	BucketProjectImages = "project-images"
	BucketAvatars       = "avatars"
	BucketResumes       = "resumes"
)

// Store is the blob-storage collaborator: upload a blob, get back a public
// URL. An upload failure must abort whatever database write depends on it.
type Store interface {
	Upload(bucket, ext string, r io.Reader) (string, error)
}

// LocalStore keeps blobs on local disk under root/<bucket>/<uuid>.<ext> and
// serves them under baseURL/uploads/.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates the bucket directories and returns the store.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	for _, bucket := range []string{BucketProjectImages, BucketAvatars, BucketResumes} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the on-disk root, for mounting the static file route.
func (s *LocalStore) Root() string {
	return s.root
}

// Upload writes the blob under a random object name and returns its public
// URL.
func (s *LocalStore) Upload(bucket, ext string, r io.Reader) (string, error) {
	name := uuid.New().String()
	if ext != "" {
		name = name + "." + ext
	}

	path := filepath.Join(s.root, bucket, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, name), nil
}
