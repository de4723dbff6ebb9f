// Package backup implements the bulk export/import contract for the card
// ledger. Import is an additive union keyed by id: entities already in the
// store are never replaced, so two independently evolved backups merge
// without loss and without conflict resolution.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cardkeep/cardkeep/internal/models"
)

// FormatVersion is the payload version this build reads and writes.
const FormatVersion = 1

// ErrInvalidFormat reports a payload whose cards field is missing or not an
// array. The whole import fails as one unit; the store is left untouched.
var ErrInvalidFormat = errors.New("backup: invalid backup payload")

// Payload is the bulk export format.
type Payload struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exportedAt"`
	Cards      []models.Card      `json:"cards"`
	Events     []models.CardEvent `json:"events"`
}

// Manager reads and writes full-store backups.
type Manager struct {
	db  *gorm.DB
	now func() time.Time
}

// New constructs a backup Manager on an opened record store connection.
func New(conn *gorm.DB) *Manager {
	return &Manager{
		db:  conn,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Export snapshots both collections into a version-1 payload.
func (m *Manager) Export(ctx context.Context) (*Payload, error) {
	payload := Payload{
		Version:    FormatVersion,
		ExportedAt: m.now(),
		Cards:      []models.Card{},
		Events:     []models.CardEvent{},
	}
	if errFind := m.db.WithContext(ctx).Order("created_at ASC").Find(&payload.Cards).Error; errFind != nil {
		return nil, errFind
	}
	if errFind := m.db.WithContext(ctx).Order("created_at ASC").Find(&payload.Events).Error; errFind != nil {
		return nil, errFind
	}
	return &payload, nil
}

// ImportStats summarizes an import for logging; callers surface only a
// single success or failure notice.
type ImportStats struct {
	CardsAdded    int
	CardsSkipped  int
	EventsAdded   int
	EventsSkipped int
}

// rawPayload defers decoding of the collections so a missing or non-array
// cards field can be reported as a format error rather than a partial read.
type rawPayload struct {
	Version int             `json:"version"`
	Cards   json.RawMessage `json:"cards"`
	Events  json.RawMessage `json:"events"`
}

// Import merges a backup payload into the store. The entire merge runs in
// one transaction: a storage failure mid-import aborts the whole batch.
func (m *Manager) Import(ctx context.Context, raw []byte) (*ImportStats, error) {
	var envelope rawPayload
	if errDecode := json.Unmarshal(raw, &envelope); errDecode != nil {
		return nil, ErrInvalidFormat
	}
	if !isJSONArray(envelope.Cards) {
		return nil, ErrInvalidFormat
	}

	var cards []models.Card
	if errDecode := json.Unmarshal(envelope.Cards, &cards); errDecode != nil {
		return nil, ErrInvalidFormat
	}

	// A malformed events field is tolerated and skipped; only the cards
	// field is structurally required.
	var events []models.CardEvent
	if len(envelope.Events) > 0 {
		if errDecode := json.Unmarshal(envelope.Events, &events); errDecode != nil {
			events = nil
		}
	}

	stats := ImportStats{}
	errTx := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range cards {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cards[i])
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				stats.CardsAdded++
			} else {
				stats.CardsSkipped++
			}
		}
		for i := range events {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&events[i])
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				stats.EventsAdded++
			} else {
				stats.EventsSkipped++
			}
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}

	log.WithFields(log.Fields{
		"cards_added":    stats.CardsAdded,
		"cards_skipped":  stats.CardsSkipped,
		"events_added":   stats.EventsAdded,
		"events_skipped": stats.EventsSkipped,
	}).Info("backup imported")
	return &stats, nil
}

// isJSONArray reports whether a raw JSON value is present and is an array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ClearAll wipes both collections. Irreversible; any confirmation flow is
// a presentation concern.
func (m *Manager) ClearAll(ctx context.Context) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errDelete := tx.Where("1 = 1").Delete(&models.CardEvent{}).Error; errDelete != nil {
			return errDelete
		}
		return tx.Where("1 = 1").Delete(&models.Card{}).Error
	})
}
