// Package ledger is the only writer of the card record store. Every
// mutation pairs a card write with exactly one append-only event inside a
// single transaction; callers observe either the whole mutation or none
// of it.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbutil "github.com/cardkeep/cardkeep/internal/db"
	"github.com/cardkeep/cardkeep/internal/models"
	"github.com/cardkeep/cardkeep/internal/util"
)

// Service exposes the card lifecycle operations.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// New constructs a Service on top of an opened record store connection.
func New(conn *gorm.DB) *Service {
	return &Service{
		db:  conn,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput carries the caller-validated fields for a new card. The
// presentation layer is responsible for rejecting short numbers and
// negative amounts before calling Create.
type CreateInput struct {
	StoreID        string
	Number         string
	AmountMinor    int64
	Currency       string
	ExpirationDate string
	Nickname       string
	Notes          string
}

// Create inserts a new card and its CREATE event. The event's delta equals
// the initial balance.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Card, error) {
	if input.AmountMinor < 0 {
		return nil, ErrNegativeAmount
	}

	now := s.now()
	card := models.Card{
		ID:             uuid.NewString(),
		StoreID:        input.StoreID,
		Number:         input.Number,
		AmountMinor:    input.AmountMinor,
		Currency:       input.Currency,
		ExpirationDate: input.ExpirationDate,
		Nickname:       input.Nickname,
		Notes:          input.Notes,
		IsEmpty:        input.AmountMinor == 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errCreate := tx.Create(&card).Error; errCreate != nil {
			return errCreate
		}
		delta := card.AmountMinor
		return tx.Create(&models.CardEvent{
			ID:               uuid.NewString(),
			CardID:           card.ID,
			Type:             models.EventCreate,
			DeltaAmountMinor: &delta,
			CreatedAt:        now,
		}).Error
	})
	if errTx != nil {
		return nil, errTx
	}

	log.WithFields(log.Fields{
		"card_id": card.ID,
		"store":   card.StoreID,
		"number":  util.MaskNumber(card.Number),
	}).Info("card created")
	return &card, nil
}

// UpdateAmount sets a card's balance to newAmountMinor and appends an
// UPDATE_AMOUNT event carrying the signed delta. A same-value write is
// allowed and still appends a zero-delta event; the audit trail records
// every attempt, not only changes.
func (s *Service) UpdateAmount(ctx context.Context, id string, newAmountMinor int64) (*models.Card, error) {
	if newAmountMinor < 0 {
		return nil, ErrNegativeAmount
	}

	now := s.now()
	var card models.Card
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errFind := findCard(tx, id, &card); errFind != nil {
			return errFind
		}

		delta := newAmountMinor - card.AmountMinor
		card.AmountMinor = newAmountMinor
		card.IsEmpty = newAmountMinor == 0
		card.UpdatedAt = now

		if errSave := tx.Model(&models.Card{}).Where("id = ?", id).Updates(map[string]any{
			"amount_minor": card.AmountMinor,
			"is_empty":     card.IsEmpty,
			"updated_at":   card.UpdatedAt,
		}).Error; errSave != nil {
			return errSave
		}
		return tx.Create(&models.CardEvent{
			ID:               uuid.NewString(),
			CardID:           id,
			Type:             models.EventUpdateAmount,
			DeltaAmountMinor: &delta,
			CreatedAt:        now,
		}).Error
	})
	if errTx != nil {
		return nil, errTx
	}
	return &card, nil
}

// Archive soft-excludes a card from the default listing. Re-archiving an
// already archived card advances the timestamp and appends another event;
// the effect is idempotent, the log is not.
func (s *Service) Archive(ctx context.Context, id string) (*models.Card, error) {
	return s.setArchived(ctx, id, true)
}

// Restore clears a card's archived state, appending a RESTORE event
// regardless of prior state.
func (s *Service) Restore(ctx context.Context, id string) (*models.Card, error) {
	return s.setArchived(ctx, id, false)
}

func (s *Service) setArchived(ctx context.Context, id string, archived bool) (*models.Card, error) {
	now := s.now()
	var card models.Card
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errFind := findCard(tx, id, &card); errFind != nil {
			return errFind
		}

		eventType := models.EventRestore
		card.ArchivedAt = nil
		if archived {
			eventType = models.EventArchive
			archivedAt := now
			card.ArchivedAt = &archivedAt
		}
		card.UpdatedAt = now

		if errSave := tx.Model(&models.Card{}).Where("id = ?", id).Updates(map[string]any{
			"archived_at": card.ArchivedAt,
			"updated_at":  card.UpdatedAt,
		}).Error; errSave != nil {
			return errSave
		}
		return tx.Create(&models.CardEvent{
			ID:        uuid.NewString(),
			CardID:    id,
			Type:      eventType,
			CreatedAt: now,
		}).Error
	})
	if errTx != nil {
		return nil, errTx
	}
	return &card, nil
}

// Delete hard-removes a card together with every event referencing it.
// Destructive and irreversible; archive is the reversible alternative.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if errFind := findCard(tx, id, &card); errFind != nil {
			return errFind
		}
		if errDelete := tx.Delete(&models.Card{}, "id = ?", id).Error; errDelete != nil {
			return errDelete
		}
		return tx.Delete(&models.CardEvent{}, "card_id = ?", id).Error
	})
}

// MarkEmpty zeroes a card's balance. It delegates to UpdateAmount, so the
// recorded event type is UPDATE_AMOUNT rather than MARK_EMPTY; the
// MARK_EMPTY type exists in the schema but nothing emits it today.
func (s *Service) MarkEmpty(ctx context.Context, id string) (*models.Card, error) {
	return s.UpdateAmount(ctx, id, 0)
}

// ListOptions filters the card listing.
type ListOptions struct {
	IncludeArchived bool
	// Search narrows the listing to cards whose nickname or number
	// contains the given text, case-insensitively.
	Search string
}

// List returns cards. The active-only listing is sorted ascending by
// expiration date, matching the wallet's default view.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]models.Card, error) {
	query := s.db.WithContext(ctx).Model(&models.Card{})
	if !opts.IncludeArchived {
		query = query.Where("archived_at IS NULL").Order("expiration_date ASC")
	} else {
		query = query.Order("created_at ASC")
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+search+"%")
		query = query.Where(
			s.db.Where(dbutil.CaseInsensitiveLikeExpr(s.db, "nickname"), pattern).
				Or(dbutil.CaseInsensitiveLikeExpr(s.db, "number"), pattern),
		)
	}

	var cards []models.Card
	if errFind := query.Find(&cards).Error; errFind != nil {
		return nil, errFind
	}
	return cards, nil
}

// GetByID returns the card or nil when absent. Absence is not an error at
// this layer; callers decide fallback behavior.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	errFind := s.db.WithContext(ctx).First(&card, "id = ?", id).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errFind
	}
	return &card, nil
}

// EventsForCard returns a card's audit history ordered oldest first.
func (s *Service) EventsForCard(ctx context.Context, id string) ([]models.CardEvent, error) {
	var events []models.CardEvent
	errFind := s.db.WithContext(ctx).
		Where("card_id = ?", id).
		Order("created_at ASC").
		Find(&events).Error
	if errFind != nil {
		return nil, errFind
	}
	return events, nil
}

// findCard loads a card inside a transaction, mapping gorm's not-found
// error to the ledger's sentinel.
func findCard(tx *gorm.DB, id string, out *models.Card) error {
	errFind := tx.First(out, "id = ?", id).Error
	if errors.Is(errFind, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errFind
}
