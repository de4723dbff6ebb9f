package models

import "time"

// Card represents a gift card balance tracked by the ledger.
type Card struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"` // Opaque UUID, assigned by the ledger.

	StoreID        string `gorm:"type:text;not null;index" json:"storeId"`   // Static catalog reference; never validated beyond non-empty.
	Number         string `gorm:"type:text;not null" json:"number"`          // Card code, opaque text.
	AmountMinor    int64  `gorm:"not null;default:0" json:"amountMinor"`     // Balance in minor units; never negative.
	Currency       string `gorm:"type:text;not null" json:"currency"`        // Immutable after creation.
	ExpirationDate string `gorm:"type:text;index" json:"expirationDate"`     // ISO YYYY-MM-DD; sort/display only.
	Nickname       string `gorm:"type:text" json:"nickname"`                 // Optional label.
	Notes          string `gorm:"type:text" json:"notes,omitempty"`          // Optional free text.
	IsEmpty        bool   `gorm:"not null;default:false" json:"isEmpty"`     // Always equals AmountMinor == 0 after a commit.

	CreatedAt  time.Time  `gorm:"not null" json:"createdAt"` // Creation timestamp.
	UpdatedAt  time.Time  `gorm:"not null" json:"updatedAt"` // Refreshed on every mutation.
	ArchivedAt *time.Time `gorm:"index" json:"archivedAt"`   // Nil while active; set while archived.
	LastUsedAt *time.Time `json:"lastUsedAt"`                // Reserved; no operation writes it yet.
}

// TableName pins the table name used by the record store.
func (Card) TableName() string {
	return "cards"
}
