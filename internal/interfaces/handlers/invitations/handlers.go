package invitations

import (
	"errors"

	invsvc "brewdate-backend/internal/application/invitations"
	"brewdate-backend/internal/domain"
	"brewdate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *invsvc.Service
}

// statusForError maps the domain taxonomy to distinct HTTP codes so clients
// can render "this link expired" and "this link doesn't exist" differently.
// Unknown errors are treated as validation failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvitationNotFound), errors.Is(err, domain.ErrCafeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvitationExpired):
		return fiber.StatusGone
	case errors.Is(err, domain.ErrInvalidChoice):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotOrganizer):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

// POST /api/v1/invitations
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		OrganizerName  string               `json:"organizer_name"`
		OrganizerEmail string               `json:"organizer_email"`
		CafeID         string               `json:"cafe_id"`
		SendToEmail    string               `json:"send_to_email"`
		Preferences    domain.PreferenceSet `json:"preferences"`
	}
	if err := c.BodyParser(&body); err != nil || body.OrganizerName == "" || body.OrganizerEmail == "" || body.CafeID == "" {
		return response.Error(c, "Organizer name, organizer email and cafe are required", 400, nil)
	}

	inv, err := h.Service.Create(c.Context(), invsvc.CreateInput{
		OrganizerName:  body.OrganizerName,
		OrganizerEmail: body.OrganizerEmail,
		CafeID:         body.CafeID,
		SendToEmail:    body.SendToEmail,
		Preferences:    body.Preferences,
	})
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.SuccessCreated(c, "Invitation created successfully", inv, nil)
}

// GET /api/v1/invitations/:token
func (h *Handlers) Get(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.Error(c, "Invitation token is required", 400, nil)
	}

	inv, err := h.Service.Get(c.Context(), token)
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Invitation fetched successfully", inv, nil)
}

// POST /api/v1/invitations/:token/confirm
func (h *Handlers) Confirm(c *fiber.Ctx) error {
	var body struct {
		InviteeName  string `json:"invitee_name"`
		InviteeEmail string `json:"invitee_email"`
		ChosenDate   string `json:"chosen_date"`
		ChosenTime   string `json:"chosen_time"`
	}
	if err := c.BodyParser(&body); err != nil || body.ChosenDate == "" || body.ChosenTime == "" {
		return response.Error(c, "Chosen date and time are required", 400, nil)
	}

	inv, err := h.Service.Confirm(c.Context(), invsvc.ConfirmInput{
		Token:        c.Params("token"),
		InviteeName:  body.InviteeName,
		InviteeEmail: body.InviteeEmail,
		ChosenDate:   body.ChosenDate,
		ChosenTime:   body.ChosenTime,
	})
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Invitation confirmed successfully", inv, nil)
}

// POST /api/v1/invitations/:token/decline
func (h *Handlers) Decline(c *fiber.Ctx) error {
	var body struct {
		InviteeName  string `json:"invitee_name"`
		InviteeEmail string `json:"invitee_email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invitee name and email are required", 400, nil)
	}

	inv, err := h.Service.Decline(c.Context(), invsvc.DeclineInput{
		Token:        c.Params("token"),
		InviteeName:  body.InviteeName,
		InviteeEmail: body.InviteeEmail,
	})
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Invitation declined successfully", inv, nil)
}

// DELETE /api/v1/invitations/:token
func (h *Handlers) Cancel(c *fiber.Ctx) error {
	var body struct {
		OrganizerEmail string `json:"organizer_email"`
	}
	if err := c.BodyParser(&body); err != nil || body.OrganizerEmail == "" {
		return response.Error(c, "Organizer email is required", 400, nil)
	}

	if err := h.Service.Cancel(c.Context(), c.Params("token"), body.OrganizerEmail); err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Invitation cancelled successfully", fiber.Map{"cancelled": true}, nil)
}
