// Package storage guarda las fotos de inspección en disco local detrás de URLs de
// subida de un solo uso.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/domain"
)

var _ ports.BlobStore = (*LocalStore)(nil)

// MaxUploadBytes tamaño máximo de un archivo subido.
const MaxUploadBytes = 10 << 20

// LocalStore BlobStore sobre un directorio. Los tokens viven en memoria: un reinicio
// invalida las URLs emitidas y no los archivos ya guardados.
type LocalStore struct {
	dir       string
	publicURL string
	ttl       time.Duration
	clock     ports.Clock

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewLocalStore crea dir si no existe.
func NewLocalStore(dir, publicURL string, ttl time.Duration, clock ports.Clock) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalStore{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		ttl:       ttl,
		clock:     clock,
		tokens:    make(map[string]time.Time),
	}, nil
}

// GenerateUploadURL emite {publicURL}/api/uploads/{token}, válido por ttl y un solo uso.
func (s *LocalStore) GenerateUploadURL(_ context.Context) (*ports.UploadTicket, error) {
	now := s.clock.Now()
	token := uuid.New().String()
	expires := now.Add(s.ttl)

	s.mu.Lock()
	for t, exp := range s.tokens {
		if now.After(exp) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = expires
	s.mu.Unlock()

	return &ports.UploadTicket{URL: s.publicURL + "/api/uploads/" + token, ExpiresAt: expires}, nil
}

// consume invalida el token y dice si era vigente.
func (s *LocalStore) consume(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	if !ok {
		return false
	}
	delete(s.tokens, token)
	return !s.clock.Now().After(exp)
}

// Upload guarda body y devuelve el storageID que se referencia desde Inspection.Photos.
func (s *LocalStore) Upload(ctx context.Context, token, contentType string, body io.Reader) (string, error) {
	if !s.consume(token) {
		return "", domain.NotFound("token de subida")
	}
	ext := ".bin"
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	storageID := uuid.New().String() + ext
	path := filepath.Join(s.dir, storageID)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(body, MaxUploadBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxUploadBytes {
		err = domain.Invalid("archivo supera el tamaño máximo")
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return storageID, nil
}

// Open abre un archivo guardado y devuelve su content type.
func (s *LocalStore) Open(_ context.Context, storageID string) (io.ReadCloser, string, error) {
	if storageID == "" || storageID != filepath.Base(storageID) || strings.HasPrefix(storageID, ".") {
		return nil, "", domain.NotFound("archivo")
	}
	f, err := os.Open(filepath.Join(s.dir, storageID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", domain.NotFound("archivo")
		}
		return nil, "", fmt.Errorf("storage: abrir %s: %w", storageID, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(storageID))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}
