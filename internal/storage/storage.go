// Package storage defines the blob store boundary: issuing upload
// capabilities and resolving asset references to fetchable URLs. Content type
// and size are caller-reported and not verified here.
package storage

import "context"

// UploadTarget is a single-use capability for a client-side binary upload.
// FileID is the asset reference a client passes back when attaching the
// uploaded file to a record; an uploaded-but-never-referenced asset is normal
// garbage and needs no cleanup.
type UploadTarget struct {
	URL    string `json:"url"`
	Token  string `json:"token,omitempty"`
	FileID string `json:"file_id"`
}

// BlobStore is the external blob store collaborator.
type BlobStore interface {
	GenerateUploadTarget(ctx context.Context) (*UploadTarget, error)
	ResolveURL(ctx context.Context, fileID string) (string, error)
}
