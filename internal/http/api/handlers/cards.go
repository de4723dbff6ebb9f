package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cardkeep/cardkeep/internal/ledger"
)

// minNumberLength is the shortest card code accepted at intake.
const minNumberLength = 4

// CardHandler serves the card lifecycle endpoints.
type CardHandler struct {
	ledger *ledger.Service
}

// NewCardHandler constructs a CardHandler over the ledger service.
func NewCardHandler(svc *ledger.Service) *CardHandler {
	return &CardHandler{ledger: svc}
}

// createCardRequest captures the payload for card creation.
type createCardRequest struct {
	StoreID        string `json:"storeId"`        // Catalog entry reference.
	Number         string `json:"number"`         // Card code, opaque text.
	AmountMinor    *int64 `json:"amountMinor"`    // Initial balance in minor units.
	Currency       string `json:"currency"`       // Currency code, immutable after creation.
	ExpirationDate string `json:"expirationDate"` // ISO YYYY-MM-DD.
	Nickname       string `json:"nickname"`       // Optional label.
	Notes          string `json:"notes"`          // Optional free text.
}

// Create validates intake rules and creates a card through the ledger.
// Validation lives here on purpose: the ledger trusts its callers and only
// defends the non-negative balance invariant itself.
func (h *CardHandler) Create(c *gin.Context) {
	var body createCardRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	storeID := strings.TrimSpace(body.StoreID)
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing storeId"})
		return
	}
	number := strings.TrimSpace(body.Number)
	if len(number) < minNumberLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be at least 4 characters"})
		return
	}
	if body.AmountMinor == nil || *body.AmountMinor < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amountMinor must be a non-negative integer"})
		return
	}
	currency := strings.TrimSpace(body.Currency)
	if currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing currency"})
		return
	}

	card, errCreate := h.ledger.Create(c.Request.Context(), ledger.CreateInput{
		StoreID:        storeID,
		Number:         number,
		AmountMinor:    *body.AmountMinor,
		Currency:       currency,
		ExpirationDate: strings.TrimSpace(body.ExpirationDate),
		Nickname:       strings.TrimSpace(body.Nickname),
		Notes:          body.Notes,
	})
	if errCreate != nil {
		respondLedgerError(c, errCreate)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// List returns cards, active-only by default. Active-only results are
// sorted ascending by expiration date.
func (h *CardHandler) List(c *gin.Context) {
	opts := ledger.ListOptions{
		IncludeArchived: c.Query("include_archived") == "true",
		Search:          c.Query("q"),
	}
	cards, errList := h.ledger.List(c.Request.Context(), opts)
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list cards failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// Get returns one card by id.
func (h *CardHandler) Get(c *gin.Context) {
	card, errGet := h.ledger.GetByID(c.Request.Context(), c.Param("id"))
	if errGet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get card failed"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// updateAmountRequest captures the payload for a balance write.
type updateAmountRequest struct {
	AmountMinor *int64 `json:"amountMinor"` // New absolute balance in minor units.
}

// UpdateAmount sets a card's balance.
func (h *CardHandler) UpdateAmount(c *gin.Context) {
	var body updateAmountRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.AmountMinor == nil || *body.AmountMinor < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amountMinor must be a non-negative integer"})
		return
	}

	card, errUpdate := h.ledger.UpdateAmount(c.Request.Context(), c.Param("id"), *body.AmountMinor)
	if errUpdate != nil {
		respondLedgerError(c, errUpdate)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Archive soft-excludes a card from the default listing.
func (h *CardHandler) Archive(c *gin.Context) {
	card, errArchive := h.ledger.Archive(c.Request.Context(), c.Param("id"))
	if errArchive != nil {
		respondLedgerError(c, errArchive)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Restore brings an archived card back to the active listing.
func (h *CardHandler) Restore(c *gin.Context) {
	card, errRestore := h.ledger.Restore(c.Request.Context(), c.Param("id"))
	if errRestore != nil {
		respondLedgerError(c, errRestore)
		return
	}
	c.JSON(http.StatusOK, card)
}

// MarkEmpty zeroes a card's balance.
func (h *CardHandler) MarkEmpty(c *gin.Context) {
	card, errMark := h.ledger.MarkEmpty(c.Request.Context(), c.Param("id"))
	if errMark != nil {
		respondLedgerError(c, errMark)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Delete hard-removes a card and its history.
func (h *CardHandler) Delete(c *gin.Context) {
	if errDelete := h.ledger.Delete(c.Request.Context(), c.Param("id")); errDelete != nil {
		respondLedgerError(c, errDelete)
		return
	}
	c.Status(http.StatusNoContent)
}

// Events returns a card's audit history, oldest first.
func (h *CardHandler) Events(c *gin.Context) {
	events, errEvents := h.ledger.EventsForCard(c.Request.Context(), c.Param("id"))
	if errEvents != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list events failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// respondLedgerError maps ledger sentinels onto HTTP statuses.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
	case errors.Is(err, ledger.ErrNegativeAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
