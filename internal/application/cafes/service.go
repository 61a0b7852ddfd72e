package cafes

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"brewdate-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads the cafe catalog. The catalog is owned elsewhere; nothing in
// here mutates it, and soft-deleted entries are filtered out by every query.
type Service struct {
	DB *gorm.DB
}

// FindMany lists non-deleted cafes in a city, optionally narrowed to one
// price tier, best-rated first.
func (s *Service) FindMany(ctx context.Context, city, priceTier string) ([]domain.Cafe, error) {
	if strings.TrimSpace(city) == "" {
		return nil, errors.New("City is required")
	}
	tier, ok := domain.NormalizePriceTier(priceTier)
	if !ok {
		return nil, errors.New("Invalid price tier")
	}

	q := s.DB.WithContext(ctx).Where("LOWER(city) = LOWER(?)", strings.TrimSpace(city))
	if tier != "" {
		q = q.Where("price_tier = ?", tier)
	}
	var cafes []domain.Cafe
	if err := q.Order("rating DESC").Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

// FindByID returns one non-deleted cafe.
func (s *Service) FindByID(ctx context.Context, id string) (*domain.Cafe, error) {
	cafeID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrCafeNotFound
	}
	var cafe domain.Cafe
	if err := s.DB.WithContext(ctx).Where("cafe_id = ?", cafeID).First(&cafe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCafeNotFound
		}
		return nil, err
	}
	return &cafe, nil
}

// Shuffle picks one cafe uniformly at random among the city/tier matches that
// are not in the exclusion set. The caller accumulates the ids it has already
// shown and resubmits them each call, so there is no server-side shuffle
// session and concurrent shuffles from different tabs cannot interfere.
func (s *Service) Shuffle(ctx context.Context, city, priceTier string, excluding []string) (*domain.Cafe, error) {
	cafes, err := s.FindMany(ctx, city, priceTier)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excluding))
	for _, id := range excluding {
		excluded[strings.ToLower(strings.TrimSpace(id))] = true
	}

	candidates := cafes[:0]
	for _, c := range cafes {
		if !excluded[strings.ToLower(c.CafeID.String())] {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoCafesAvailable
	}

	pick := candidates[rand.Intn(len(candidates))]
	return &pick, nil
}
