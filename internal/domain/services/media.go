package services

import (
	"context"
	"io"
)

// UploadedFile describes a file received from an admin form
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService stores admin-uploaded images and returns their public URL
type MediaService interface {
	Upload(ctx context.Context, collection string, file *UploadedFile) (string, error)
}
