package domain

// PreferenceSet is the organizer's closed offer: candidate calendar dates and,
// per date, candidate time slots. It is built before the invitation is created
// and never edited afterwards; the invitee may only pick from it.
//
// Canonical storage formats are YYYY-MM-DD dates and 24-hour HH:MM times, so
// membership checks on confirm are exact value matches.
type PreferenceSet struct {
	Dates       []string            `json:"dates"`
	TimesByDate map[string][]string `json:"times_by_date"`
}

// Offers reports whether the (date, time) pair is part of the offer. Both
// arguments must already be in canonical form.
func (p PreferenceSet) Offers(date, timeSlot string) bool {
	for _, t := range p.TimesByDate[date] {
		if t == timeSlot {
			return true
		}
	}
	return false
}
