package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardkeep/cardkeep/internal/backup"
)

// maxImportBytes caps the accepted backup payload size.
const maxImportBytes = 32 << 20

// BackupHandler serves export, import and clear-all endpoints.
type BackupHandler struct {
	backups *backup.Manager
}

// NewBackupHandler constructs a BackupHandler.
func NewBackupHandler(m *backup.Manager) *BackupHandler {
	return &BackupHandler{backups: m}
}

// Export streams the full store as a version-1 backup document, named the
// way the wallet has always named its download files.
func (h *BackupHandler) Export(c *gin.Context) {
	payload, errExport := h.backups.Export(c.Request.Context())
	if errExport != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	filename := fmt.Sprintf("gift-cards-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, payload)
}

// Import merges an uploaded backup into the store. Failures are reported
// as one notice; there is no partial-success reporting.
func (h *BackupHandler) Import(c *gin.Context) {
	raw, errRead := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if errRead != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read payload failed"})
		return
	}

	stats, errImport := h.backups.Import(c.Request.Context(), raw)
	if errImport != nil {
		if errors.Is(errImport, backup.ErrInvalidFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup file"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cards_added":   stats.CardsAdded,
		"cards_skipped": stats.CardsSkipped,
		"events_added":  stats.EventsAdded,
	})
}

// Clear wipes both collections. Confirmation is the caller's problem.
func (h *BackupHandler) Clear(c *gin.Context) {
	if errClear := h.backups.ClearAll(c.Request.Context()); errClear != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
