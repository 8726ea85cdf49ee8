package ports

import (
	"context"
	"io"
	"time"
)

// UploadTicket URL de subida de un solo uso.
type UploadTicket struct {
	URL       string
	ExpiresAt time.Time
}

// BlobStore puerto de salida para fotos de inspección. La referencia devuelta por
// Upload se guarda tal cual en Inspection.Photos.
type BlobStore interface {
	GenerateUploadURL(ctx context.Context) (*UploadTicket, error)
	Upload(ctx context.Context, token, contentType string, body io.Reader) (storageID string, err error)
	Open(ctx context.Context, storageID string) (io.ReadCloser, string, error)
}
