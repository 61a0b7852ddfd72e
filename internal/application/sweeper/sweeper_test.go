package sweeper

import (
	"context"
	"testing"
	"time"

	invsvc "brewdate-backend/internal/application/invitations"
	"brewdate-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupSweeper(t *testing.T) (*Sweeper, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Invitation{}, &domain.Cafe{}))
	return &Sweeper{DB: db, Invitations: &invsvc.Service{DB: db}}, db
}

func seedInvitation(t *testing.T, db *gorm.DB, token, status string, expiresAt time.Time) {
	prefs := domain.PreferenceSet{
		Dates:       []string{"2025-03-10"},
		TimesByDate: map[string][]string{"2025-03-10": {"14:00"}},
	}
	inv := domain.Invitation{
		Token:          token,
		OrganizerName:  "Sanne de Vries",
		OrganizerEmail: "sanne@example.com",
		Preferences:    datatypes.NewJSONType(prefs),
		Status:         status,
		ExpiresAt:      expiresAt,
	}
	require.NoError(t, db.Create(&inv).Error)
}

func TestSweepOnce_ExpiresOnlyOverduePending(t *testing.T) {
	sw, db := setupSweeper(t)
	seedInvitation(t, db, "overdue-1", domain.StatusPending, time.Now().Add(-time.Hour))
	seedInvitation(t, db, "overdue-2", domain.StatusPending, time.Now().Add(-48*time.Hour))
	seedInvitation(t, db, "fresh", domain.StatusPending, time.Now().Add(time.Hour))
	seedInvitation(t, db, "resolved", domain.StatusConfirmed, time.Now().Add(-time.Hour))

	n, err := sw.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	statuses := map[string]string{}
	var all []domain.Invitation
	require.NoError(t, db.Find(&all).Error)
	for _, inv := range all {
		statuses[inv.Token] = inv.Status
	}
	assert.Equal(t, domain.StatusExpired, statuses["overdue-1"])
	assert.Equal(t, domain.StatusExpired, statuses["overdue-2"])
	assert.Equal(t, domain.StatusPending, statuses["fresh"])
	assert.Equal(t, domain.StatusConfirmed, statuses["resolved"])
}

func TestSweepOnce_SecondRunIsNoop(t *testing.T) {
	sw, db := setupSweeper(t)
	seedInvitation(t, db, "overdue", domain.StatusPending, time.Now().Add(-time.Hour))

	n, err := sw.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = sw.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSweepOnce_NoPendingLeftPastDeadline(t *testing.T) {
	sw, db := setupSweeper(t)
	seedInvitation(t, db, "overdue", domain.StatusPending, time.Now().Add(-time.Minute))

	_, err := sw.SweepOnce(context.Background())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Invitation{}).
		Where("status = ? AND expires_at <= ?", domain.StatusPending, time.Now()).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestRun_StopsOnCancel(t *testing.T) {
	sw, _ := setupSweeper(t)
	sw.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}
