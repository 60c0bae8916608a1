package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
)

// ImportHandler drives the roster CSV import wizard.
type ImportHandler struct {
	importService       *service.ImportService
	notificationService *service.NotificationService
	maxImportBytes      int64
	log                 zerolog.Logger
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(
	importService *service.ImportService,
	notificationService *service.NotificationService,
	maxImportBytes int64,
	log zerolog.Logger,
) *ImportHandler {
	return &ImportHandler{
		importService:       importService,
		notificationService: notificationService,
		maxImportBytes:      maxImportBytes,
		log:                 log.With().Str("component", "import_handler").Logger(),
	}
}

// Upload godoc
// POST /api/v1/admin/import
// Accepts a multipart CSV, stages a validated batch, returns the preview.
func (h *ImportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if fileHeader.Size > h.maxImportBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".csv" && ext != ".txt" {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	batch, err := h.importService.Upload(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedCSV):
			response.Fail(c, http.StatusBadRequest, response.ErrCSVParseFailed)
		case errors.Is(err, service.ErrBatchEmpty):
			response.Fail(c, http.StatusBadRequest, response.ErrImportEmpty)
		default:
			h.log.Error().Err(err).Msg("import upload failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"batch": batch})
}

// GetBatch godoc
// GET /api/v1/admin/import/:batch_id
// Returns the staged batch for preview.
func (h *ImportHandler) GetBatch(c *gin.Context) {
	batch, err := h.importService.GetBatch(c.Request.Context(), c.Param("batch_id"))
	if err != nil {
		if errors.Is(err, service.ErrBatchNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrImportBatchMissing)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"batch": batch})
}

// Commit godoc
// POST /api/v1/admin/import/:batch_id/commit
// Inserts the batch's importable rows as students.
func (h *ImportHandler) Commit(c *gin.Context) {
	batch, err := h.importService.Commit(c.Request.Context(), c.Param("batch_id"), queryYear(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrImportBatchMissing)
		case errors.Is(err, service.ErrBatchHasErrors):
			response.Fail(c, http.StatusConflict, response.ErrImportHasErrors)
		case errors.Is(err, service.ErrBatchInvalidState):
			response.Fail(c, http.StatusConflict, response.ErrImportWrongState)
		default:
			h.log.Error().Err(err).Str("batch_id", c.Param("batch_id")).Msg("import commit failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	h.notificationService.Publish(c.Request.Context(), "success",
		"Impor data selesai",
		fmt.Sprintf("Impor data siswa berhasil, %d siswa ditambahkan.", batch.ImportedCount),
		"Lihat rekap", "/rekap")

	response.Success(c, http.StatusOK, gin.H{"batch": batch})
}

// Reset godoc
// DELETE /api/v1/admin/import/:batch_id
// Discards a staged batch, returning the wizard to the upload step.
func (h *ImportHandler) Reset(c *gin.Context) {
	if err := h.importService.Reset(c.Request.Context(), c.Param("batch_id")); err != nil {
		if errors.Is(err, service.ErrBatchNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrImportBatchMissing)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "batch impor dibatalkan"})
}

// Template godoc
// GET /api/v1/admin/import/template
// Downloads a CSV template matching the active fee schedule.
func (h *ImportHandler) Template(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="template-import-siswa.csv"`)

	if err := h.importService.WriteTemplate(c.Request.Context(), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("template download failed")
	}
}
