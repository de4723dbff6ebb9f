package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	dbutil "github.com/cardkeep/cardkeep/internal/db"
	"github.com/cardkeep/cardkeep/internal/ledger"
	"github.com/cardkeep/cardkeep/internal/models"
)

func openBackupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:backup_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func seedCard(t *testing.T, conn *gorm.DB, number string, amount int64) *models.Card {
	t.Helper()
	card, errCreate := ledger.New(conn).Create(context.Background(), ledger.CreateInput{
		StoreID:     "shufersal",
		Number:      number,
		AmountMinor: amount,
		Currency:    "ILS",
	})
	if errCreate != nil {
		t.Fatalf("seed card: %v", errCreate)
	}
	return card
}

func TestExportRoundTripsBothCollections(t *testing.T) {
	conn := openBackupTestDB(t)
	seedCard(t, conn, "1111", 100)
	seedCard(t, conn, "2222", 200)

	payload, errExport := New(conn).Export(context.Background())
	if errExport != nil {
		t.Fatalf("export: %v", errExport)
	}
	if payload.Version != FormatVersion {
		t.Fatalf("version = %d", payload.Version)
	}
	if len(payload.Cards) != 2 {
		t.Fatalf("cards = %d", len(payload.Cards))
	}
	if len(payload.Events) != 2 {
		t.Fatalf("events = %d", len(payload.Events))
	}
}

func TestImportIsAdditiveUnionKeyedByID(t *testing.T) {
	source := openBackupTestDB(t)
	existing := seedCard(t, source, "1111", 100)
	incoming := seedCard(t, source, "2222", 200)

	payload, errExport := New(source).Export(context.Background())
	if errExport != nil {
		t.Fatalf("export: %v", errExport)
	}
	// The target already holds the first card with a different balance;
	// import must not touch it.
	for i := range payload.Cards {
		if payload.Cards[i].ID == existing.ID {
			payload.Cards[i].AmountMinor = 99999
		}
	}
	raw, _ := json.Marshal(payload)

	target := openBackupTestDB(t)
	if errSeed := target.Create(&models.Card{
		ID: existing.ID, StoreID: "victory", Number: "1111",
		AmountMinor: 100, Currency: "ILS",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}).Error; errSeed != nil {
		t.Fatalf("seed target: %v", errSeed)
	}

	stats, errImport := New(target).Import(context.Background(), raw)
	if errImport != nil {
		t.Fatalf("import: %v", errImport)
	}
	if stats.CardsAdded != 1 || stats.CardsSkipped != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	var kept models.Card
	if errFind := target.First(&kept, "id = ?", existing.ID).Error; errFind != nil {
		t.Fatalf("find kept card: %v", errFind)
	}
	if kept.StoreID != "victory" || kept.AmountMinor != 100 {
		t.Fatalf("existing card was overwritten: %+v", kept)
	}

	var added models.Card
	if errFind := target.First(&added, "id = ?", incoming.ID).Error; errFind != nil {
		t.Fatalf("imported card missing: %v", errFind)
	}
	if added.AmountMinor != 200 {
		t.Fatalf("imported card balance = %d", added.AmountMinor)
	}

	var eventCount int64
	if errCount := target.Model(&models.CardEvent{}).Count(&eventCount).Error; errCount != nil {
		t.Fatalf("count events: %v", errCount)
	}
	if eventCount != 2 {
		t.Fatalf("event count = %d, want 2", eventCount)
	}
}

func TestImportSameBackupTwiceIsIdempotent(t *testing.T) {
	source := openBackupTestDB(t)
	seedCard(t, source, "1111", 100)
	payload, _ := New(source).Export(context.Background())
	raw, _ := json.Marshal(payload)

	target := openBackupTestDB(t)
	mgr := New(target)
	if _, errImport := mgr.Import(context.Background(), raw); errImport != nil {
		t.Fatalf("first import: %v", errImport)
	}
	stats, errImport := mgr.Import(context.Background(), raw)
	if errImport != nil {
		t.Fatalf("second import: %v", errImport)
	}
	if stats.CardsAdded != 0 || stats.EventsAdded != 0 {
		t.Fatalf("second import added rows: %+v", stats)
	}
}

func TestImportRejectsMalformedPayloads(t *testing.T) {
	conn := openBackupTestDB(t)
	mgr := New(conn)

	cases := []string{
		`not json at all`,
		`{"version":1}`,
		`{"version":1,"cards":null}`,
		`{"version":1,"cards":"nope"}`,
		`{"version":1,"cards":{"id":"x"}}`,
	}
	for _, raw := range cases {
		if _, errImport := mgr.Import(context.Background(), []byte(raw)); !errors.Is(errImport, ErrInvalidFormat) {
			t.Fatalf("payload %q: expected ErrInvalidFormat, got %v", raw, errImport)
		}
	}

	var cardCount int64
	if errCount := conn.Model(&models.Card{}).Count(&cardCount).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if cardCount != 0 {
		t.Fatalf("store touched by rejected import")
	}
}

func TestImportToleratesMissingEventsField(t *testing.T) {
	conn := openBackupTestDB(t)
	raw := `{"version":1,"cards":[{"id":"abc","storeId":"other","number":"1234","amountMinor":10,"currency":"ILS","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}]}`

	stats, errImport := New(conn).Import(context.Background(), []byte(raw))
	if errImport != nil {
		t.Fatalf("import: %v", errImport)
	}
	if stats.CardsAdded != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestClearAllWipesBothCollections(t *testing.T) {
	conn := openBackupTestDB(t)
	seedCard(t, conn, "1111", 100)
	seedCard(t, conn, "2222", 0)

	if errClear := New(conn).ClearAll(context.Background()); errClear != nil {
		t.Fatalf("clear: %v", errClear)
	}

	var cardCount, eventCount int64
	if errCount := conn.Model(&models.Card{}).Count(&cardCount).Error; errCount != nil {
		t.Fatalf("count cards: %v", errCount)
	}
	if errCount := conn.Model(&models.CardEvent{}).Count(&eventCount).Error; errCount != nil {
		t.Fatalf("count events: %v", errCount)
	}
	if cardCount != 0 || eventCount != 0 {
		t.Fatalf("store not empty after clear: %d cards, %d events", cardCount, eventCount)
	}
}
