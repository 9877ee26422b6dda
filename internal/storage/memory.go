package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Memory is a BlobStore fake for tests and local development. Every generated
// target is recorded so tests can assert which file ids were handed out.
type Memory struct {
	bucket  string
	Targets []UploadTarget
}

// NewMemory returns an in-memory blob store using the given bucket name in
// the URLs it fabricates.
func NewMemory(bucket string) *Memory {
	return &Memory{bucket: bucket}
}

func (m *Memory) GenerateUploadTarget(ctx context.Context) (*UploadTarget, error) {
	fileID := uuid.NewString()
	target := UploadTarget{
		URL:    fmt.Sprintf("memory://%s/%s?upload", m.bucket, fileID),
		FileID: fileID,
	}
	m.Targets = append(m.Targets, target)
	return &target, nil
}

func (m *Memory) ResolveURL(ctx context.Context, fileID string) (string, error) {
	return fmt.Sprintf("memory://%s/%s", m.bucket, fileID), nil
}
