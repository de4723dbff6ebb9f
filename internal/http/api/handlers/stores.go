package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardkeep/cardkeep/internal/stores"
)

// StoreHandler serves the static store catalog.
type StoreHandler struct{}

// NewStoreHandler constructs a StoreHandler.
func NewStoreHandler() *StoreHandler {
	return &StoreHandler{}
}

// List returns the full catalog.
func (h *StoreHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stores": stores.Catalog})
}

// Get returns one catalog entry, falling back to the generic entry for
// unknown ids; the catalog lookup never fails.
func (h *StoreHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, stores.ByID(c.Param("id")))
}
