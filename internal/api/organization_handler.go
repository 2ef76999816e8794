package api

import (
	"errors"

	"standup-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
	validate   *validator.Validate
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		validate:   validator.New(),
	}
}

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

func (h *OrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateOrganizationRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	org, err := h.orgService.CreateOrganization(c.UserContext(), userID, request.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create organization"})
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

func (h *OrganizationHandler) ListMyOrganizations(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	orgs, err := h.orgService.ListMyOrganizations(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch organizations"})
	}

	return c.Status(fiber.StatusOK).JSON(orgs)
}

func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	orgID, err := c.ParamsInt("id")
	if err != nil || orgID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid organization ID"})
	}

	org, err := h.orgService.GetOrganization(c.UserContext(), int64(orgID))
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch organization"})
	}

	return c.Status(fiber.StatusOK).JSON(org)
}
