package routes

import (
	"github.com/gin-gonic/gin"
	authz "github.com/yigit/cems/internal/app/auth"
	"github.com/yigit/cems/internal/app/controllers"
	"github.com/yigit/cems/internal/middleware"
	"github.com/yigit/cems/internal/pkg/websocket"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth           *controllers.AuthController
	Events         *controllers.EventController
	Contacts       *controllers.ContactController
	Chat           *controllers.ChatController
	Health         *controllers.HealthController
	Live           *websocket.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h *Handlers) {
	m := h.AuthMiddleware
	api := router.Group("/api")

	router.GET("/", h.Health.Banner)
	api.GET("/health", h.Health.Health)

	// --- Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", m.JWTAuth(), h.Auth.GetMe)
		auth.GET("/users", m.JWTAuth(), m.RequireCapability(authz.ActionListUsers), h.Auth.ListUsers)
		auth.DELETE("/users/:id", m.JWTAuth(), m.RequireCapability(authz.ActionDeleteUser), h.Auth.DeleteUser)
	}

	// --- Event routes ---
	events := api.Group("/events")
	{
		events.GET("", h.Events.ListEvents)
		events.GET("/:id", h.Events.GetEvent)
		events.GET("/:id/live", h.Live.HandleConnection)

		protected := events.Group("")
		protected.Use(m.JWTAuth())
		{
			protected.GET("/registered/me", m.RequireCapability(authz.ActionListRegisteredEvents), h.Events.ListRegistered)
			protected.POST("", m.RequireCapability(authz.ActionCreateEvent), h.Events.CreateEvent)
			protected.PUT("/:id", m.RequireCapability(authz.ActionUpdateEvent), h.Events.UpdateEvent)
			protected.DELETE("/:id", m.RequireCapability(authz.ActionDeleteEvent), h.Events.DeleteEvent)
			protected.POST("/:id/image", m.RequireCapability(authz.ActionUpdateEvent), h.Events.UploadImage)
			protected.POST("/:id/register", m.RequireCapability(authz.ActionRegisterEvent), h.Events.Register)
			protected.POST("/:id/unregister", m.RequireCapability(authz.ActionUnregisterEvent), h.Events.Unregister)
		}
	}

	// --- Contact routes ---
	contact := api.Group("/contact")
	{
		contact.POST("", m.OptionalAuth(), h.Contacts.Submit)

		admin := contact.Group("")
		admin.Use(m.JWTAuth(), m.RequireCapability(authz.ActionManageContacts))
		{
			admin.GET("", h.Contacts.List)
			admin.GET("/stats", h.Contacts.Stats)
			admin.GET("/:id", h.Contacts.Get)
			admin.PUT("/:id", h.Contacts.Update)
			admin.DELETE("/:id", h.Contacts.Delete)
		}
	}

	// --- Chat routes ---
	chat := api.Group("/chat")
	{
		chat.POST("/start", m.OptionalAuth(), h.Chat.Start)
		chat.POST("/message", m.OptionalAuth(), h.Chat.SendMessage)
		chat.GET("/history/:userId", m.JWTAuth(), h.Chat.History)
		chat.GET("/:conversationId", h.Chat.Get)
		chat.DELETE("/:conversationId", m.JWTAuth(), h.Chat.Delete)
	}

	router.NoRoute(middleware.NotFoundHandler)
}
