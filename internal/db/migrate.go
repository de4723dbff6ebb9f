package db

import (
	"fmt"

	"github.com/cardkeep/cardkeep/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or upgrades the two record store collections. The card_id
// index on events is what keeps cascade deletion proportional to a single
// card's history instead of a full scan.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAuto := conn.AutoMigrate(&models.Card{}, &models.CardEvent{}); errAuto != nil {
		return fmt.Errorf("db: migrate: %w", errAuto)
	}
	return nil
}
