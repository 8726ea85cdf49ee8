package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
)

// UploadHandler recibe y sirve las fotos de inspección del blob store.
type UploadHandler struct {
	blobs ports.BlobStore
}

func NewUploadHandler(blobs ports.BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// Upload POST /api/uploads/:token. El token es la credencial; no requiere Bearer.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	id, err := h.blobs.Upload(c.UserContext(), c.Params("token"), contentType, bytes.NewReader(c.Body()))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{StorageID: id})
}

// File GET /api/files/:storageId
func (h *UploadHandler) File(c *fiber.Ctx) error {
	rc, contentType, err := h.blobs.Open(c.UserContext(), c.Params("storageId"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(rc)
}
