package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/repositories"
)

// RegistrationNotifier receives the registration state after every change
type RegistrationNotifier interface {
	NotifyRegistration(state *models.RegistrationState)
}

type noopNotifier struct{}

func (noopNotifier) NotifyRegistration(*models.RegistrationState) {}

// RegistrationService runs the register and unregister workflow
type RegistrationService interface {
	// Register fails with not found, then already registered, then full
	Register(ctx context.Context, student *models.User, eventID int64, req *dto.RegisterEventRequest) (*models.Event, error)
	Unregister(ctx context.Context, student *models.User, eventID int64) (*dto.RegistrationResponse, error)
	ListRegisteredEvents(ctx context.Context, student *models.User) (*dto.EventListResponse, error)
}

type registrationServiceImpl struct {
	registrations repositories.IRegistrationRepository
	events        repositories.IEventRepository
	notifier      RegistrationNotifier
	logger        zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService. A nil notifier
// disables the live feed.
func NewRegistrationService(
	registrations repositories.IRegistrationRepository,
	events repositories.IEventRepository,
	notifier RegistrationNotifier,
	logger zerolog.Logger,
) RegistrationService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &registrationServiceImpl{
		registrations: registrations,
		events:        events,
		notifier:      notifier,
		logger:        logger,
	}
}

// Register adds the student to the event
func (s *registrationServiceImpl) Register(ctx context.Context, student *models.User, eventID int64, req *dto.RegisterEventRequest) (*models.Event, error) {
	state, err := s.registrations.Register(ctx, eventID, student.ID, req.Details())
	if err != nil {
		s.logger.Debug().Err(err).Int64("eventID", eventID).Int64("userID", student.ID).Msg("Registration rejected")
		return nil, err
	}

	s.notifier.NotifyRegistration(state)
	s.logger.Info().
		Int64("eventID", eventID).
		Int64("userID", student.ID).
		Int("registrationCount", state.RegistrationCount).
		Int("capacity", state.Capacity).
		Msg("Student registered for event")

	event, err := s.loadWithRegistrants(ctx, eventID)
	if err != nil {
		// the registration is committed; answer from its state
		s.logger.Warn().Err(err).Int64("eventID", eventID).Msg("Failed to reload event after registration")
		return &models.Event{
			ID:                  state.EventID,
			Capacity:            state.Capacity,
			RegistrationCount:   state.RegistrationCount,
			RegistrationVersion: state.Version,
			RegisteredUsers:     []*models.Registration{},
		}, nil
	}
	return event, nil
}

func (s *registrationServiceImpl) loadWithRegistrants(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	regs, err := s.events.GetRegistrations(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error loading registrations: %w", err)
	}
	event.RegisteredUsers = regs
	return event, nil
}

// Unregister removes the student from the event
func (s *registrationServiceImpl) Unregister(ctx context.Context, student *models.User, eventID int64) (*dto.RegistrationResponse, error) {
	state, err := s.registrations.Unregister(ctx, eventID, student.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyRegistration(state)
	s.logger.Info().
		Int64("eventID", eventID).
		Int64("userID", student.ID).
		Int("registrationCount", state.RegistrationCount).
		Msg("Student unregistered from event")

	return &dto.RegistrationResponse{
		EventID:           state.EventID,
		RegistrationCount: state.RegistrationCount,
		Capacity:          state.Capacity,
	}, nil
}

// ListRegisteredEvents returns the events the student is registered for
func (s *registrationServiceImpl) ListRegisteredEvents(ctx context.Context, student *models.User) (*dto.EventListResponse, error) {
	events, err := s.events.ListRegisteredByUser(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing registered events: %w", err)
	}
	return &dto.EventListResponse{Count: len(events), Events: events}, nil
}
