package domain

import "errors"

// User-facing error conditions. Handlers map each of these to a distinct HTTP
// status so clients can tell "link doesn't exist" from "link expired" from
// "slot wasn't offered". Anything else coming out of a service is treated as a
// validation failure.
var (
	ErrInvitationNotFound = errors.New("Invitation not found")
	ErrCafeNotFound       = errors.New("Cafe not found")
	ErrInvalidTransition  = errors.New("Invitation is no longer open")
	ErrInvitationExpired  = errors.New("Invitation has expired")
	ErrInvalidChoice      = errors.New("Chosen date and time were not offered")
	ErrNoCafesAvailable   = errors.New("No cafes available for this search")
	ErrNotOrganizer       = errors.New("Only the organizer can cancel this invitation")
)
