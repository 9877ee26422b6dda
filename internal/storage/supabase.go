package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	supa "github.com/supabase-community/supabase-go"
)

// Supabase issues signed upload URLs against a Supabase Storage bucket and
// resolves object ids to public URLs.
type Supabase struct {
	client  *supa.Client
	baseURL string
	bucket  string
}

// NewSupabase returns a BlobStore backed by the given bucket. baseURL is the
// project URL, used to absolutize the relative URLs the storage API returns.
func NewSupabase(client *supa.Client, baseURL, bucket string) *Supabase {
	return &Supabase{client: client, baseURL: strings.TrimRight(baseURL, "/"), bucket: bucket}
}

func (s *Supabase) GenerateUploadTarget(ctx context.Context) (*UploadTarget, error) {
	fileID := uuid.NewString()
	resp, err := s.client.Storage.CreateSignedUploadUrl(s.bucket, fileID)
	if err != nil {
		return nil, fmt.Errorf("creating signed upload URL for %s: %w", fileID, err)
	}

	uploadURL := resp.Url
	if !strings.HasPrefix(uploadURL, "http") {
		// The storage API may return a URL relative to the project root.
		if !strings.HasPrefix(uploadURL, "/") {
			uploadURL = "/" + uploadURL
		}
		uploadURL = s.baseURL + uploadURL
	}

	return &UploadTarget{URL: uploadURL, FileID: fileID}, nil
}

func (s *Supabase) ResolveURL(ctx context.Context, fileID string) (string, error) {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, fileID), nil
}
