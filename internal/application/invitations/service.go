package invitations

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"brewdate-backend/internal/application/emails"
	"brewdate-backend/internal/domain"
	"brewdate-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const day = 24 * time.Hour
const inviteExpiry = 7 * day

// Service owns the invitation lifecycle. Every status transition is a single
// conditional UPDATE keyed by token and current status, so racing callers
// (two browser tabs, or a response racing the expiration sweep) resolve to
// exactly one winner without locks.
type Service struct {
	DB            *gorm.DB
	EmailSender   emails.Sender
	InviteBaseURL string
}

type CreateInput struct {
	OrganizerName  string
	OrganizerEmail string
	CafeID         string
	// SendToEmail optionally delivers the invite link by email. It is not
	// stored on the record: the invitee identity is captured only when they
	// respond, and the link itself is shareable out-of-band.
	SendToEmail string
	Preferences domain.PreferenceSet
}

// Create validates the offer, pins the cafe, and persists a fresh pending
// invitation with a 7-day deadline.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Invitation, error) {
	if !validation.IsValidFullname(in.OrganizerName) {
		return nil, errors.New("A valid organizer name is required")
	}
	if !validation.IsValidEmail(in.OrganizerEmail) {
		return nil, errors.New("A valid organizer email is required")
	}
	if in.SendToEmail != "" && !validation.IsValidEmail(in.SendToEmail) {
		return nil, errors.New("Invitee email is not valid")
	}

	prefs, err := NormalizePreferences(in.Preferences)
	if err != nil {
		return nil, err
	}

	cafeID, err := uuid.Parse(in.CafeID)
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

	now := time.Now()
	inv := &domain.Invitation{
		Token:          randomHex(32),
		OrganizerName:  strings.TrimSpace(in.OrganizerName),
		OrganizerEmail: strings.ToLower(in.OrganizerEmail),
		CafeID:         cafe.CafeID,
		Preferences:    datatypes.NewJSONType(prefs),
		Status:         domain.StatusPending,
		ExpiresAt:      now.Add(inviteExpiry),
	}
	if err := s.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}

	if in.SendToEmail != "" {
		s.notify(ctx, "invitation.created", func(sender emails.Sender) error {
			return sender.SendInvitationCreated(ctx, in.SendToEmail, inv.OrganizerName, cafe.Name, s.inviteLink(inv.Token), prefs.Dates)
		})
	}
	return inv, nil
}

// Get returns the invitation for a token. Soft-deleted records are invisible
// here, so a cancelled invitation reads as not found.
func (s *Service) Get(ctx context.Context, token string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := s.DB.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

type ConfirmInput struct {
	Token        string
	InviteeName  string
	InviteeEmail string
	ChosenDate   string
	ChosenTime   string
}

// Confirm locks in one (date, time) pair from the offered set. The chosen
// slot must be a member of the stored preferences; anything else is rejected
// before touching the row, guarding against stale or tampered clients.
func (s *Service) Confirm(ctx context.Context, in ConfirmInput) (*domain.Invitation, error) {
	if err := validateInvitee(in.InviteeName, in.InviteeEmail); err != nil {
		return nil, err
	}

	inv, err := s.Get(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	chosenDate, dErr := CanonicalDate(in.ChosenDate)
	chosenTime, tErr := CanonicalTime(in.ChosenTime)
	if dErr != nil || tErr != nil {
		return nil, domain.ErrInvalidChoice
	}
	if !inv.Preferences.Data().Offers(chosenDate, chosenTime) {
		return nil, domain.ErrInvalidChoice
	}

	now := time.Now()
	res := s.DB.WithContext(ctx).Model(&domain.Invitation{}).
		Where("token = ? AND status = ? AND expires_at > ?", in.Token, domain.StatusPending, now).
		Updates(map[string]interface{}{
			"status":        domain.StatusConfirmed,
			"invitee_name":  strings.TrimSpace(in.InviteeName),
			"invitee_email": strings.ToLower(in.InviteeEmail),
			"chosen_date":   chosenDate,
			"chosen_time":   chosenTime,
			"confirmed_at":  now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.transitionFailure(ctx, in.Token)
	}

	fresh, err := s.Get(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	cafeName := s.cafeName(ctx, fresh.CafeID)
	s.notify(ctx, "invitation.confirmed", func(sender emails.Sender) error {
		return sender.SendInvitationConfirmed(ctx, fresh.OrganizerEmail, cafeName, chosenDate, chosenTime)
	})
	s.notify(ctx, "invitation.confirmed", func(sender emails.Sender) error {
		return sender.SendInvitationConfirmed(ctx, fresh.InviteeEmail, cafeName, chosenDate, chosenTime)
	})
	return fresh, nil
}

type DeclineInput struct {
	Token        string
	InviteeName  string
	InviteeEmail string
}

// Decline closes the invitation without a meetup. Same guards as Confirm,
// minus the slot check.
func (s *Service) Decline(ctx context.Context, in DeclineInput) (*domain.Invitation, error) {
	if err := validateInvitee(in.InviteeName, in.InviteeEmail); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, in.Token); err != nil {
		return nil, err
	}

	now := time.Now()
	res := s.DB.WithContext(ctx).Model(&domain.Invitation{}).
		Where("token = ? AND status = ? AND expires_at > ?", in.Token, domain.StatusPending, now).
		Updates(map[string]interface{}{
			"status":        domain.StatusDeclined,
			"invitee_name":  strings.TrimSpace(in.InviteeName),
			"invitee_email": strings.ToLower(in.InviteeEmail),
			"declined_at":   now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.transitionFailure(ctx, in.Token)
	}

	fresh, err := s.Get(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "invitation.declined", func(sender emails.Sender) error {
		return sender.SendInvitationDeclined(ctx, fresh.OrganizerEmail, fresh.InviteeName)
	})
	return fresh, nil
}

// Cancel soft-deletes the invitation regardless of status. Only the organizer
// may cancel; the invitee hears about it when the meetup was still live.
func (s *Service) Cancel(ctx context.Context, token, organizerEmail string) error {
	inv, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	if !strings.EqualFold(inv.OrganizerEmail, strings.TrimSpace(organizerEmail)) {
		return domain.ErrNotOrganizer
	}

	wasLive := inv.Status == domain.StatusPending || inv.Status == domain.StatusConfirmed
	if err := s.DB.WithContext(ctx).Delete(inv).Error; err != nil {
		return err
	}

	if wasLive && inv.InviteeEmail != "" {
		s.notify(ctx, "invitation.cancelled", func(sender emails.Sender) error {
			return sender.SendInvitationCancelled(ctx, inv.InviteeEmail, inv.OrganizerName)
		})
	}
	return nil
}

// Expire moves an overdue pending invitation to expired. Idempotent: a record
// that is already terminal, not yet overdue, or gone is left untouched and no
// error is returned. Invoked by the expiration sweep, never by user action,
// and deliberately silent (nobody responded is not an active decline).
func (s *Service) Expire(ctx context.Context, token string) error {
	return s.DB.WithContext(ctx).Model(&domain.Invitation{}).
		Where("token = ? AND status = ? AND expires_at <= ?", token, domain.StatusPending, time.Now()).
		Update("status", domain.StatusExpired).Error
}

// transitionFailure explains why a conditional update matched no row: the
// record vanished, was already resolved, or the deadline passed. An expired
// record reads as expired whether the sweep got to it or the clock alone did.
func (s *Service) transitionFailure(ctx context.Context, token string) error {
	inv, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	switch inv.Status {
	case domain.StatusExpired:
		return domain.ErrInvitationExpired
	case domain.StatusConfirmed, domain.StatusDeclined:
		return domain.ErrInvalidTransition
	}
	return domain.ErrInvitationExpired
}

func (s *Service) cafeName(ctx context.Context, cafeID uuid.UUID) string {
	var cafe domain.Cafe
	if err := s.DB.WithContext(ctx).Where("cafe_id = ?", cafeID).First(&cafe).Error; err != nil {
		return "the cafe"
	}
	return cafe.Name
}

func (s *Service) inviteLink(token string) string {
	base := strings.TrimRight(s.InviteBaseURL, "/")
	if base == "" {
		base = "https://brewdate.app"
	}
	return base + "/i/" + token
}

// notify fires one lifecycle email. Delivery failure is logged and swallowed;
// the state transition already happened and must not be rolled back.
func (s *Service) notify(ctx context.Context, event string, send func(emails.Sender) error) {
	if s.EmailSender == nil {
		return
	}
	if err := send(s.EmailSender); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("Notification delivery failed")
	}
}

func validateInvitee(name, email string) error {
	if !validation.IsValidFullname(name) {
		return errors.New("A valid invitee name is required")
	}
	if !validation.IsValidEmail(email) {
		return errors.New("A valid invitee email is required")
	}
	return nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
