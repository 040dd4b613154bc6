package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/card-inventory/backend/internal/metrics"
	"github.com/codyseavey/card-inventory/backend/internal/services"
)

// multipartOverhead is the allowance for multipart headers and boundaries on
// top of the file size limit.
const multipartOverhead = 64 << 10

type Importer interface {
	Import(ctx context.Context, filename string, r io.Reader) (*services.BulkImportResult, error)
}

type BulkUploadHandler struct {
	importer Importer
	maxBytes int64
}

// NewBulkUploadHandler rejects uploads larger than maxBytes. Zero or less
// means no limit.
func NewBulkUploadHandler(importer Importer, maxBytes int64) *BulkUploadHandler {
	return &BulkUploadHandler{importer: importer, maxBytes: maxBytes}
}

// Upload creates cards from the CSV in the multipart field "file". Rows that
// fail are listed in the response; the request itself still succeeds.
func (h *BulkUploadHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		badRequest(c, "file is required")
		return
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		h.tooLarge(c)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	result, err := h.importer.Import(c.Request.Context(), fh.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.CardsCreatedTotal.Add(float64(result.CreatedCount))
	c.JSON(http.StatusOK, result)
}

func (h *BulkUploadHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": fmt.Sprintf("file exceeds %d bytes", h.maxBytes),
	})
}
