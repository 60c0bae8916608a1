package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/recap"
	"github.com/sppku/sppku-backend/internal/response"
	"github.com/sppku/sppku-backend/internal/service"
)

// RecapHandler serves the payment recap grid and its CSV export.
type RecapHandler struct {
	recapService *service.RecapService
	log          zerolog.Logger
}

// NewRecapHandler creates a new RecapHandler.
func NewRecapHandler(recapService *service.RecapService, log zerolog.Logger) *RecapHandler {
	return &RecapHandler{
		recapService: recapService,
		log:          log.With().Str("component", "recap_handler").Logger(),
	}
}

// queryFilter reads the grid filter from query params:
// ?q= text, ?classes= comma-separated names, ?category= Menetap|Sekolah.
func queryFilter(c *gin.Context) recap.Filter {
	filter := recap.Filter{Query: c.Query("q")}
	if raw := c.Query("classes"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Classes = append(filter.Classes, name)
			}
		}
	}
	switch c.Query("category") {
	case string(model.CategoryMenetap):
		filter.Category = model.CategoryMenetap
	case string(model.CategorySekolah):
		filter.Category = model.CategorySekolah
	}
	return filter
}

// GetRecap godoc
// GET /api/v1/admin/rekap
// Returns the recap grid for the (optionally filtered) roster.
func (h *RecapHandler) GetRecap(c *gin.Context) {
	year := queryYear(c)

	grid, err := h.recapService.GetGrid(c.Request.Context(), year, queryFilter(c))
	if err != nil {
		var integrity *recap.IntegrityError
		if errors.As(err, &integrity) {
			h.log.Error().Int("student_id", integrity.StudentID).Str("reason", integrity.Reason).Msg("roster data integrity failure")
			response.Fail(c, http.StatusInternalServerError, response.ErrDataIntegrity)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"year": year, "grid": grid})
}

// ExportRecap godoc
// GET /api/v1/admin/rekap/export
// Streams the filtered recap as a CSV download.
func (h *RecapHandler) ExportRecap(c *gin.Context) {
	year := queryYear(c)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.CSVFilename(year)))

	if err := h.recapService.WriteCSV(c.Request.Context(), c.Writer, year, queryFilter(c)); err != nil {
		// Headers may already be out; log instead of switching to JSON.
		h.log.Error().Err(err).Int("year", year).Msg("recap export failed")
	}
}
