package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/storage"
)

func TestLocalStore_SubirYAbrir(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080/", 15*time.Minute, func() time.Time { return now })
	require.NoError(t, err)
	ctx := context.Background()

	ticket, err := store.GenerateUploadURL(ctx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ticket.URL, "http://localhost:8080/api/uploads/"))
	assert.True(t, ticket.ExpiresAt.Equal(now.Add(15*time.Minute)))
	token := strings.TrimPrefix(ticket.URL, "http://localhost:8080/api/uploads/")

	id, err := store.Upload(ctx, token, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, ".png"))

	_, err = store.Upload(ctx, token, "image/png", strings.NewReader("otra vez"))
	assert.ErrorIs(t, err, domain.ErrNotFound, "el token es de un solo uso")

	rc, contentType, err := store.Open(ctx, id)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", contentType)

	_, _, err = store.Open(ctx, "../secreto")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStore_TokenVencido(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	current := now
	store, err := storage.NewLocalStore(t.TempDir(), "http://files", time.Minute, func() time.Time { return current })
	require.NoError(t, err)

	ticket, err := store.GenerateUploadURL(context.Background())
	require.NoError(t, err)
	current = now.Add(2 * time.Minute)

	_, err = store.Upload(context.Background(), strings.TrimPrefix(ticket.URL, "http://files/api/uploads/"), "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
