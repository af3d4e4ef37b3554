package services

import "context"

// MediaStore uploads a local file to external media hosting and returns its
// public URL.
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
