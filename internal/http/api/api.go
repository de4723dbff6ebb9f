// Package api wires the HTTP presentation surface. Handlers validate
// input and translate ledger results; all state changes flow through the
// ledger service, never the record store directly.
package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cardkeep/cardkeep/internal/backup"
	"github.com/cardkeep/cardkeep/internal/http/api/handlers"
	"github.com/cardkeep/cardkeep/internal/ledger"
)

// RegisterRoutes mounts all API routes on the engine.
func RegisterRoutes(r *gin.Engine, conn *gorm.DB) {
	if r == nil || conn == nil {
		return
	}

	svc := ledger.New(conn)
	backups := backup.New(conn)

	healthHandler := handlers.NewHealthHandler(conn)
	r.GET("/healthz", healthHandler.Healthz)

	v1 := r.Group("/v1")

	cardHandler := handlers.NewCardHandler(svc)
	v1.GET("/cards", cardHandler.List)
	v1.POST("/cards", cardHandler.Create)
	v1.GET("/cards/:id", cardHandler.Get)
	v1.DELETE("/cards/:id", cardHandler.Delete)
	v1.PUT("/cards/:id/amount", cardHandler.UpdateAmount)
	v1.POST("/cards/:id/archive", cardHandler.Archive)
	v1.POST("/cards/:id/restore", cardHandler.Restore)
	v1.POST("/cards/:id/empty", cardHandler.MarkEmpty)
	v1.GET("/cards/:id/events", cardHandler.Events)

	backupHandler := handlers.NewBackupHandler(backups)
	v1.GET("/backup", backupHandler.Export)
	v1.POST("/backup/import", backupHandler.Import)
	v1.POST("/backup/clear", backupHandler.Clear)

	storeHandler := handlers.NewStoreHandler()
	v1.GET("/stores", storeHandler.List)
	v1.GET("/stores/:id", storeHandler.Get)
}
