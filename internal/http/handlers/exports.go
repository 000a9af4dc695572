package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/middleware"
	"tripplanner/internal/services"
)

type exportFunc func(svc services.ExportService, userID, tripID int64) (services.Document, error)

func (h *Handler) export(fn exportFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := tripIDParam(c)
		if !ok {
			return
		}
		doc, err := fn(h.exportService(c), middleware.GetUserID(c), id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
		c.Data(http.StatusOK, doc.ContentType, doc.Body)
	}
}

// GET /api/trips/:id/export/pdf
func (h *Handler) ExportPDF(c *gin.Context) { h.export(services.ExportService.PDF)(c) }

// GET /api/trips/:id/export/ics
func (h *Handler) ExportICS(c *gin.Context) { h.export(services.ExportService.ICS)(c) }

// GET /api/trips/:id/export/csv
func (h *Handler) ExportCSV(c *gin.Context) { h.export(services.ExportService.CSV)(c) }
