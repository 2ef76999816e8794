package api

import (
	"errors"
	"log/slog"

	"standup-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TeamHandler struct {
	teamService service.TeamService
	validate    *validator.Validate
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		validate:    validator.New(),
	}
}

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=255"`
}

type AddMemberRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role" validate:"omitempty,oneof=owner admin member"`
}

func (h *TeamHandler) CreateTeam(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateTeamRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	team, err := h.teamService.CreateTeam(c.UserContext(), userID, request.Name, request.Description)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to create team", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create team"})
	}

	return c.Status(fiber.StatusCreated).JSON(team)
}

func (h *TeamHandler) ListMyTeams(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	teams, err := h.teamService.ListMyTeams(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch teams"})
	}

	return c.Status(fiber.StatusOK).JSON(teams)
}

func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid team ID"})
	}

	members, err := h.teamService.ListMembers(c.UserContext(), userID, int64(teamID))
	if err != nil {
		return teamError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(members)
}

func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid team ID"})
	}

	var request AddMemberRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := h.teamService.AddMember(c.UserContext(), userID, int64(teamID), request.UserID, request.Role); err != nil {
		return teamError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Member added successfully"})
}

func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid team ID"})
	}

	memberID, err := c.ParamsInt("userId")
	if err != nil || memberID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.teamService.RemoveMember(c.UserContext(), userID, int64(teamID), int64(memberID)); err != nil {
		return teamError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func teamError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeamNotFound), errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotTeamMember):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyMember), errors.Is(err, service.ErrLastOwner):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slog.ErrorContext(c.UserContext(), "Team operation failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not complete team operation"})
}
