package models

import "time"

// Event type values recorded on CardEvent rows.
const (
	EventCreate       = "CREATE"
	EventUpdateAmount = "UPDATE_AMOUNT"
	EventArchive      = "ARCHIVE"
	EventRestore      = "RESTORE"
	EventDelete       = "DELETE"
	// EventMarkEmpty is declared by the schema but no current operation
	// emits it; mark-empty routes through UPDATE_AMOUNT.
	EventMarkEmpty = "MARK_EMPTY"
)

// CardEvent is an immutable audit record paired with a card mutation.
// Events are only ever written as the second half of a ledger transaction
// and are removed only when their owning card is hard-deleted.
type CardEvent struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"` // Opaque UUID.

	CardID string `gorm:"type:char(36);not null;index" json:"cardId"` // Owning card; may dangle after import of a partial backup.
	Type   string `gorm:"type:text;not null" json:"type"`             // One of the Event* constants.

	DeltaAmountMinor *int64 `json:"deltaAmountMinor,omitempty"` // Signed balance change; set for CREATE and UPDATE_AMOUNT only.

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"` // Equals the paired card's UpdatedAt at commit time.
}

// TableName pins the table name used by the record store.
func (CardEvent) TableName() string {
	return "card_events"
}
