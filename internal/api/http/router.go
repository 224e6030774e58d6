package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/http/handlers"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Team           *handlers.TeamHandler
	Channels       *handlers.ChannelsHandler
	Conversations  *handlers.ConversationsHandler
	QuickReplies   *handlers.QuickRepliesHandler
	Subscriptions  *handlers.SubscriptionsHandler
	Onboarding     *handlers.OnboardingHandler
	Webhooks       *handlers.WebhooksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// Provider callbacks carry no bearer token.
	app.Get("/webhooks/whatsapp", cfg.Webhooks.VerifyWhatsApp)
	app.Post("/webhooks/whatsapp", cfg.Webhooks.ReceiveWhatsApp)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.ResolveTenant())

	protected.Get("/users/me", cfg.Users.Me)
	protected.Patch("/users/me/language", cfg.Users.UpdateLanguage)

	team := protected.Group("/team")
	team.Get("", cfg.Team.List)
	adminOnly := auth.RequireRole(domain.RoleCompanyAdmin)
	team.Post("", adminOnly, cfg.Team.Create)
	team.Patch("/:id", adminOnly, cfg.Team.Update)
	team.Delete("/:id", adminOnly, cfg.Team.Remove)

	channels := protected.Group("/channels")
	channels.Get("/summary", cfg.Channels.Summary)
	channels.Get("", cfg.Channels.List)
	channels.Post("/whatsapp/connect", adminOnly, cfg.Channels.ConnectWhatsApp)
	channels.Delete("/:id", adminOnly, cfg.Channels.Remove)

	conversations := protected.Group("/conversations")
	conversations.Get("", cfg.Conversations.List)
	conversations.Get("/:id", cfg.Conversations.Get)
	conversations.Patch("/:id/status", cfg.Conversations.UpdateStatus)
	conversations.Patch("/:id/assign", cfg.Conversations.Assign)
	conversations.Get("/:id/messages", cfg.Conversations.Messages)
	conversations.Post("/:id/messages", cfg.Conversations.SendMessage)
	conversations.Get("/:id/assist", cfg.Conversations.Assist)

	quickReplies := protected.Group("/quick-replies")
	quickReplies.Get("", cfg.QuickReplies.List)
	quickReplies.Post("", cfg.QuickReplies.Create)
	quickReplies.Patch("/:id", cfg.QuickReplies.Update)
	quickReplies.Delete("/:id", cfg.QuickReplies.Remove)

	protected.Get("/plans", cfg.Subscriptions.Plans)
	protected.Get("/subscriptions/current", cfg.Subscriptions.Current)
	protected.Post("/subscriptions/change-plan", adminOnly, cfg.Subscriptions.ChangePlan)

	onboarding := protected.Group("/onboarding")
	onboarding.Get("", cfg.Onboarding.State)
	onboarding.Post("/complete-step", cfg.Onboarding.CompleteStep)
	onboarding.Post("/reset", cfg.Onboarding.Reset)
}
