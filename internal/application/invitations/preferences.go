package invitations

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"brewdate-backend/internal/domain"
)

// Platform limits on the offer size. Generous for a two-person meetup; they
// exist to bound abuse, not to shape UX.
const maxDates = 30
const maxTimesPerDate = 30

const dateLayout = "2006-01-02"
const timeLayout = "15:04"

var timeLayouts = []string{"15:04", "15:04:05"}

// NormalizePreferences validates a client-submitted preference set and
// returns it in canonical form: dates as YYYY-MM-DD, times as 24-hour HH:MM,
// duplicates removed, submission order preserved. Every date must carry at
// least one time slot, and no times may be supplied for an unlisted date.
func NormalizePreferences(in domain.PreferenceSet) (domain.PreferenceSet, error) {
	if len(in.Dates) == 0 {
		return domain.PreferenceSet{}, errors.New("At least one date is required")
	}
	if len(in.Dates) > maxDates {
		return domain.PreferenceSet{}, fmt.Errorf("At most %d dates are allowed", maxDates)
	}

	out := domain.PreferenceSet{
		Dates:       make([]string, 0, len(in.Dates)),
		TimesByDate: make(map[string][]string, len(in.Dates)),
	}

	seenDates := make(map[string]bool, len(in.Dates))
	for _, raw := range in.Dates {
		date, err := CanonicalDate(raw)
		if err != nil {
			return domain.PreferenceSet{}, fmt.Errorf("Invalid date: %q", raw)
		}
		if seenDates[date] {
			continue
		}
		seenDates[date] = true

		times, err := normalizeTimes(in.TimesByDate[raw])
		if err != nil {
			return domain.PreferenceSet{}, err
		}
		if len(times) == 0 {
			return domain.PreferenceSet{}, fmt.Errorf("Date %s has no time slots", date)
		}

		out.Dates = append(out.Dates, date)
		out.TimesByDate[date] = times
	}

	// Times keyed by a date that was never offered point at a client bug;
	// silently dropping them would hide it.
	for key := range in.TimesByDate {
		date, err := CanonicalDate(key)
		if err != nil || !seenDates[date] {
			return domain.PreferenceSet{}, fmt.Errorf("Time slots given for a date that was not offered: %q", key)
		}
	}

	return out, nil
}

func normalizeTimes(raw []string) ([]string, error) {
	if len(raw) > maxTimesPerDate {
		return nil, fmt.Errorf("At most %d time slots are allowed per date", maxTimesPerDate)
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		t, err := CanonicalTime(r)
		if err != nil {
			return nil, fmt.Errorf("Invalid time slot: %q", r)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// CanonicalDate parses a calendar date and returns it as YYYY-MM-DD.
func CanonicalDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

// CanonicalTime parses a time of day and returns it as 24-hour HH:MM.
func CanonicalTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized time %q", s)
}
