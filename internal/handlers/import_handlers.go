package handlers

import (
	"net/http"

	"github.com/tradewisearg/servitec-web/internal/middleware"
	"github.com/tradewisearg/servitec-web/internal/services"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps uploaded CSV files at 20 MB.
const maxImportBytes = 20 << 20

// ImportHandler exposes the bulk CSV import and its template download.
type ImportHandler struct {
	importService services.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportCSV handles POST /import. The CSV is sent as the multipart form
// file "file".
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing upload: send the CSV as form file 'file'"})
		return
	}
	if file.Size > maxImportBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import file too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file: " + err.Error()})
		return
	}
	defer f.Close()

	result, err := h.importService.ImportFromCSV(f, middleware.ActorEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTemplate handles GET /import/template, serving the CSV template as a
// download.
func (h *ImportHandler) GetTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="productos.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", h.importService.TemplateCSV())
}
