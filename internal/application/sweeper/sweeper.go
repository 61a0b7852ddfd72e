package sweeper

import (
	"context"
	"time"

	"brewdate-backend/internal/application/invitations"
	"brewdate-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultInterval = 15 * time.Minute

// Sweeper periodically forces overdue pending invitations into the expired
// state. Each record's expiry is an idempotent conditional update, and the
// query predicate (pending AND past deadline) is self-correcting, so a sweep
// that dies partway is simply finished by the next run. No checkpointing.
type Sweeper struct {
	DB          *gorm.DB
	Invitations *invitations.Service
	Interval    time.Duration
}

// Run sweeps on a fixed interval until ctx is cancelled. Cancellation between
// batches is always safe.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	log.Info().Dur("interval", interval).Msg("Expiration sweep started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Expiration sweep stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				log.Error().Err(err).Msg("Expiration sweep failed")
			}
		}
	}
}

// SweepOnce expires every pending invitation whose deadline has passed and
// returns how many records it transitioned. Per-record failures are logged
// and the batch continues.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	var tokens []string
	err := s.DB.WithContext(ctx).Model(&domain.Invitation{}).
		Where("status = ? AND expires_at <= ?", domain.StatusPending, time.Now()).
		Pluck("token", &tokens).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, token := range tokens {
		if err := s.Invitations.Expire(ctx, token); err != nil {
			log.Warn().Err(err).Str("token", token).Msg("Failed to expire invitation")
			continue
		}
		expired++
	}
	if expired > 0 {
		log.Info().Int("expired", expired).Msg("Expiration sweep finished")
	}
	return expired, nil
}
