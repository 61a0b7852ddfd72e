package database

import (
	"brewdate-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedCafes inserts a starter catalog when the cafes table is empty. Used by
// local development and tests; production catalogs are managed externally.
func SeedCafes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Cafe{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cafes := []domain.Cafe{
		{Name: "Bocca Coffee", Address: "Kerkstraat 96", City: "Amsterdam", PriceTier: domain.TierModerate, Rating: 4.6, Features: datatypes.JSON([]byte(`["specialty","wifi"]`))},
		{Name: "Lot Sixty One", Address: "Kinkerstraat 112", City: "Amsterdam", PriceTier: domain.TierModerate, Rating: 4.7, Features: datatypes.JSON([]byte(`["roastery","terrace"]`))},
		{Name: "Café de Jaren", Address: "Nieuwe Doelenstraat 20", City: "Amsterdam", PriceTier: domain.TierExpensive, Rating: 4.3, Features: datatypes.JSON([]byte(`["terrace","canal-view"]`))},
		{Name: "Anne&Max", Address: "Oude Gracht 203", City: "Utrecht", PriceTier: domain.TierModerate, Rating: 4.4, Features: datatypes.JSON([]byte(`["breakfast","wifi"]`))},
		{Name: "The Village Coffee", Address: "Voorstraat 46", City: "Utrecht", PriceTier: domain.TierBudget, Rating: 4.5, Features: datatypes.JSON([]byte(`["specialty","student-friendly"]`))},
		{Name: "Hopper Coffee", Address: "Schiedamse Vest 146", City: "Rotterdam", PriceTier: domain.TierBudget, Rating: 4.6, Features: datatypes.JSON([]byte(`["bakery","wifi"]`))},
	}
	return db.Create(&cafes).Error
}
