package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/pkg/auth"
	"github.com/yigit/cems/internal/pkg/chatbot"
	"github.com/yigit/cems/internal/pkg/email"
	"github.com/yigit/cems/internal/pkg/filestorage"
	"github.com/yigit/cems/internal/pkg/logger"
)

// Services holds all the service instances
type Services struct {
	Auth          AuthService
	Events        EventService
	Registrations RegistrationService
	Contacts      ContactService
	Chat          ChatService
}

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	Repos      *repositories.Repositories
	JWTService *auth.JWTService
	Responder  chatbot.Responder
	Notifier   RegistrationNotifier
	Mailer     email.EmailService
	Images     filestorage.ImageStore
}

// NewServices wires every service over deps
func NewServices(deps Dependencies) *Services {
	return &Services{
		Auth:          NewAuthService(deps.Repos, deps.JWTService, component("auth")),
		Events:        NewEventService(deps.Repos.Events, deps.Images, component("events")),
		Registrations: NewRegistrationService(deps.Repos.Registrations, deps.Repos.Events, deps.Notifier, component("registrations")),
		Contacts:      NewContactService(deps.Repos.Contacts, deps.Mailer, component("contacts")),
		Chat:          NewChatService(deps.Repos.Conversations, deps.Responder, component("chat")),
	}
}

func component(name string) zerolog.Logger {
	return logger.Component("service." + name)
}
