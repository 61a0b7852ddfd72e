package invitations

import (
	"fmt"
	"testing"

	"brewdate-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePreferences_Canonicalizes(t *testing.T) {
	got, err := NormalizePreferences(domain.PreferenceSet{
		Dates: []string{" 2025-03-10 ", "2025-03-11"},
		TimesByDate: map[string][]string{
			" 2025-03-10 ": {"9:30", "14:00:00"},
			"2025-03-11":   {"10:00", "10:00", "15:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-03-10", "2025-03-11"}, got.Dates)
	assert.Equal(t, []string{"09:30", "14:00"}, got.TimesByDate["2025-03-10"])
	// Duplicates removed, order preserved.
	assert.Equal(t, []string{"10:00", "15:00"}, got.TimesByDate["2025-03-11"])
}

func TestNormalizePreferences_EmptyDates(t *testing.T) {
	_, err := NormalizePreferences(domain.PreferenceSet{})
	assert.Error(t, err)
}

func TestNormalizePreferences_DateWithoutTimes(t *testing.T) {
	_, err := NormalizePreferences(domain.PreferenceSet{
		Dates:       []string{"2025-03-10", "2025-03-11"},
		TimesByDate: map[string][]string{"2025-03-10": {"14:00"}},
	})
	assert.Error(t, err)
}

func TestNormalizePreferences_TimesForUnofferedDate(t *testing.T) {
	_, err := NormalizePreferences(domain.PreferenceSet{
		Dates: []string{"2025-03-10"},
		TimesByDate: map[string][]string{
			"2025-03-10": {"14:00"},
			"2025-03-12": {"10:00"},
		},
	})
	assert.Error(t, err)
}

func TestNormalizePreferences_InvalidDate(t *testing.T) {
	for _, bad := range []string{"10-03-2025", "2025/03/10", "tomorrow", ""} {
		_, err := NormalizePreferences(domain.PreferenceSet{
			Dates:       []string{bad},
			TimesByDate: map[string][]string{bad: {"14:00"}},
		})
		assert.Error(t, err, "date=%q", bad)
	}
}

func TestNormalizePreferences_InvalidTime(t *testing.T) {
	_, err := NormalizePreferences(domain.PreferenceSet{
		Dates:       []string{"2025-03-10"},
		TimesByDate: map[string][]string{"2025-03-10": {"half past two"}},
	})
	assert.Error(t, err)
}

func TestNormalizePreferences_TooManyDates(t *testing.T) {
	in := domain.PreferenceSet{TimesByDate: map[string][]string{}}
	for i := 0; i < maxDates+1; i++ {
		d := fmt.Sprintf("2025-04-%02d", i%28+1)
		in.Dates = append(in.Dates, d)
		in.TimesByDate[d] = []string{"10:00"}
	}
	_, err := NormalizePreferences(in)
	assert.Error(t, err)
}

func TestNormalizePreferences_DuplicateDatesCollapse(t *testing.T) {
	got, err := NormalizePreferences(domain.PreferenceSet{
		Dates:       []string{"2025-03-10", "2025-03-10"},
		TimesByDate: map[string][]string{"2025-03-10": {"14:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10"}, got.Dates)
}

func TestOffers(t *testing.T) {
	prefs, err := NormalizePreferences(domain.PreferenceSet{
		Dates:       []string{"2025-03-10"},
		TimesByDate: map[string][]string{"2025-03-10": {"14:00"}},
	})
	require.NoError(t, err)

	assert.True(t, prefs.Offers("2025-03-10", "14:00"))
	assert.False(t, prefs.Offers("2025-03-10", "15:00"))
	assert.False(t, prefs.Offers("2025-03-11", "14:00"))
}
