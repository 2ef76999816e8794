package api

import (
	"standup-service/internal/jwt"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Organization *OrganizationHandler
	Team         *TeamHandler
	Standup      *StandupHandler
}

// SetupRoutes mounts the versioned API under /v1.
func SetupRoutes(app *fiber.App, h Handlers, tokens *jwt.Manager) {
	v1 := app.Group("/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.Refresh)
	authRoutes.Post("/logout", h.Auth.Logout)

	userRoutes := v1.Group("/users", AuthMiddleware(tokens))
	userRoutes.Get("/me", h.User.GetUserProfile)
	userRoutes.Post("/me/device-token", h.User.RegisterDeviceToken)

	orgRoutes := v1.Group("/organizations", AuthMiddleware(tokens))
	orgRoutes.Post("/", h.Organization.CreateOrganization)
	orgRoutes.Get("/", h.Organization.ListMyOrganizations)
	orgRoutes.Get("/:id", h.Organization.GetOrganization)

	teamRoutes := v1.Group("/teams", AuthMiddleware(tokens))
	teamRoutes.Post("/", h.Team.CreateTeam)
	teamRoutes.Get("/", h.Team.ListMyTeams)
	teamRoutes.Get("/:id/members", h.Team.ListMembers)
	teamRoutes.Post("/:id/members", h.Team.AddMember)
	teamRoutes.Delete("/:id/members/:userId", h.Team.RemoveMember)

	standupRoutes := v1.Group("/standups", AuthMiddleware(tokens))
	standupRoutes.Get("/", h.Standup.ListStandups)
	standupRoutes.Post("/", h.Standup.CreateStandup)
	standupRoutes.Delete("/:id", h.Standup.DeleteStandup)
}
