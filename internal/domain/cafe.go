package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Price tiers, ordered cheapest first.
const (
	TierBudget    = "budget"
	TierModerate  = "moderate"
	TierExpensive = "expensive"
	TierLuxury    = "luxury"
)

// Cafe is a catalog venue. The catalog is read-only from the invitation
// engine's perspective; soft-deleted entries never surface in lookups.
type Cafe struct {
	CafeID    uuid.UUID      `gorm:"column:cafe_id;type:uuid;primaryKey" json:"cafe_id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Address   string         `gorm:"column:address" json:"address"`
	City      string         `gorm:"column:city;not null;index" json:"city"`
	PriceTier string         `gorm:"column:price_tier;not null" json:"price_tier"`
	Rating    float64        `gorm:"column:rating" json:"rating"`
	Features  datatypes.JSON `gorm:"column:features" json:"features"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Cafe) TableName() string {
	return "cafes"
}

func (c *Cafe) BeforeCreate(tx *gorm.DB) error {
	if c.CafeID == uuid.Nil {
		c.CafeID = uuid.New()
	}
	return nil
}

// NormalizePriceTier lowercases a client-submitted tier and reports whether it
// is one of the known tiers. Empty input is valid and means "any tier".
func NormalizePriceTier(s string) (string, bool) {
	tier := strings.ToLower(strings.TrimSpace(s))
	switch tier {
	case "", TierBudget, TierModerate, TierExpensive, TierLuxury:
		return tier, true
	}
	return "", false
}
