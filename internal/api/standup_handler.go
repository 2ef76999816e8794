package api

import (
	"errors"
	"log/slog"
	"time"

	"standup-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type StandupHandler struct {
	standupService service.StandupService
	validate       *validator.Validate
	now            func() time.Time
}

func NewStandupHandler(standupService service.StandupService) *StandupHandler {
	return &StandupHandler{
		standupService: standupService,
		validate:       validator.New(),
		now:            time.Now,
	}
}

type CreateStandupRequest struct {
	Yesterday string  `json:"yesterday" validate:"required,max=1000"`
	Today     string  `json:"today" validate:"required,max=1000"`
	Blockers  string  `json:"blockers" validate:"required,max=1000"`
	TimeZone  string  `json:"time_zone" validate:"max=100"`
	TeamIDs   []int64 `json:"team_ids" validate:"required,min=1,dive,gt=0"`
}

func (h *StandupHandler) ListStandups(c *fiber.Ctx) error {
	f, err := ParseStandupFilter(c, h.now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query", "details": err.Error()})
	}

	res, err := h.standupService.Get(c.UserContext(), CallerFromClaims(c), f)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to load standups", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch standups"})
	}

	if !res.IsOk() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": res.Reason()})
	}

	return c.Status(fiber.StatusOK).JSON(res.Value())
}

func (h *StandupHandler) CreateStandup(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateStandupRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if request.TimeZone == "" {
		request.TimeZone = "UTC"
	}

	standup, err := h.standupService.Create(c.UserContext(), userID, service.StandupInput{
		Yesterday: request.Yesterday,
		Today:     request.Today,
		Blockers:  request.Blockers,
		TimeZone:  request.TimeZone,
	}, request.TeamIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTeams):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotTeamMember):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		slog.ErrorContext(c.UserContext(), "Failed to post standup", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not post standup"})
	}

	return c.Status(fiber.StatusCreated).JSON(standup)
}

func (h *StandupHandler) DeleteStandup(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	standupID, err := c.ParamsInt("id")
	if err != nil || standupID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid standup ID"})
	}

	if err := h.standupService.Delete(c.UserContext(), userID, int64(standupID)); err != nil {
		if errors.Is(err, service.ErrStandupNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete standup"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
