package cafes

import (
	"errors"
	"strings"

	cafesvc "brewdate-backend/internal/application/cafes"
	"brewdate-backend/internal/domain"
	"brewdate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *cafesvc.Service
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCafeNotFound), errors.Is(err, domain.ErrNoCafesAvailable):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

// GET /api/v1/cafes?city=&priceTier=
func (h *Handlers) List(c *fiber.Ctx) error {
	cafes, err := h.Service.FindMany(c.Context(), c.Query("city"), c.Query("priceTier"))
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Cafes fetched successfully", cafes, nil)
}

// GET /api/v1/cafes/shuffle?city=&priceTier=&excluding=id1,id2
func (h *Handlers) Shuffle(c *fiber.Ctx) error {
	var excluding []string
	if raw := c.Query("excluding"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				excluding = append(excluding, id)
			}
		}
	}

	cafe, err := h.Service.Shuffle(c.Context(), c.Query("city"), c.Query("priceTier"), excluding)
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Cafe suggested successfully", cafe, nil)
}

// GET /api/v1/cafes/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	cafe, err := h.Service.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, err.Error(), statusForError(err), nil)
	}
	return response.Success(c, "Cafe fetched successfully", cafe, nil)
}
