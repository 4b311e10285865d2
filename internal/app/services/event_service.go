package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/yigit/cems/internal/app/auth"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/filestorage"
	"github.com/yigit/cems/internal/pkg/helpers"
	"github.com/yigit/cems/internal/pkg/validation"
)

// EventService defines event registry operations. Role checks happen at the
// route gate; the service applies the ownership rule.
type EventService interface {
	CreateEvent(ctx context.Context, creator *models.User, req *dto.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, requester *models.User, id int64, req *dto.UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, requester *models.User, id int64) error
	ListEvents(ctx context.Context, req *dto.EventFilterRequest) (*dto.EventListResponse, error)
	// GetEvent returns the event with its creator and registrants resolved
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	// UploadImage stores an image for the event and points the event at it
	UploadImage(ctx context.Context, requester *models.User, id int64, file *multipart.FileHeader) (*models.Event, error)
}

const eventImageDir = "events"

type eventServiceImpl struct {
	events repositories.IEventRepository
	images filestorage.ImageStore
	logger zerolog.Logger
}

// NewEventService creates a new EventService. A nil image store disables uploads.
func NewEventService(events repositories.IEventRepository, images filestorage.ImageStore, logger zerolog.Logger) EventService {
	return &eventServiceImpl{events: events, images: images, logger: logger}
}

func parseDate(s string) (models.Event, error) {
	var e models.Event
	d, err := helpers.ParseEventDate(s)
	if err != nil {
		return e, apperrors.NewValidationError("date", "date must be a valid date")
	}
	e.Date = d
	return e, nil
}

// CreateEvent stores a new event owned by creator
func (s *eventServiceImpl) CreateEvent(ctx context.Context, creator *models.User, req *dto.CreateEventRequest) (*models.Event, error) {
	event, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(req.Title)
	event.Description = strings.TrimSpace(req.Description)
	event.Category = models.EventCategory(req.Category)
	event.Time = strings.TrimSpace(req.Time)
	event.Venue = strings.TrimSpace(req.Venue)
	event.CreatedByID = &creator.ID

	// Apply defaults
	event.College = strings.TrimSpace(req.College)
	if event.College == "" {
		event.College = models.DefaultEventCollege
	}
	event.Organizer = strings.TrimSpace(req.Organizer)
	if event.Organizer == "" {
		event.Organizer = creator.Name
	}
	event.Capacity = models.DefaultEventCapacity
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	event.Image = strings.TrimSpace(req.Image)
	if event.Image == "" {
		event.Image = models.DefaultEventImage
	}
	event.Status = models.StatusUpcoming
	if req.Status != "" {
		event.Status = models.EventStatus(req.Status)
	}

	if err := validation.ValidateEvent(&event); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return nil, err
	}
	event.CreatedBy = creator.Ref()

	s.logger.Info().Int64("eventID", event.ID).Int64("createdBy", creator.ID).Msg("Event created")
	return &event, nil
}

// applyPatch merges the present fields of req into e
func applyPatch(e *models.Event, req *dto.UpdateEventRequest) error {
	if req.Title != nil {
		e.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		e.Category = models.EventCategory(*req.Category)
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		e.Date = parsed.Date
	}
	if req.Time != nil {
		e.Time = strings.TrimSpace(*req.Time)
	}
	if req.Venue != nil {
		e.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.College != nil {
		e.College = strings.TrimSpace(*req.College)
	}
	if req.Organizer != nil {
		e.Organizer = strings.TrimSpace(*req.Organizer)
	}
	if req.Capacity != nil {
		e.Capacity = *req.Capacity
	}
	if req.Image != nil {
		e.Image = strings.TrimSpace(*req.Image)
	}
	if req.Status != nil {
		e.Status = models.EventStatus(*req.Status)
	}
	return nil
}

// UpdateEvent applies a partial patch after the ownership check. The merged
// event is validated as a whole; a lowered capacity does not evict registrants.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, requester *models.User, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.AuthorizeEventUpdate(requester.RoleType, requester.ID, event); err != nil {
		s.logger.Warn().Int64("eventID", id).Int64("userID", requester.ID).Msg("Event update denied")
		return nil, err
	}

	if err := applyPatch(event, req); err != nil {
		return nil, err
	}
	if err := validation.ValidateEvent(event); err != nil {
		return nil, err
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Int64("updatedBy", requester.ID).Msg("Event updated")
	return s.events.GetByID(ctx, id)
}

// UploadImage replaces the event image with an uploaded file. The previous
// upload, if any, is removed once the event points at the new one.
func (s *eventServiceImpl) UploadImage(ctx context.Context, requester *models.User, id int64, file *multipart.FileHeader) (*models.Event, error) {
	if s.images == nil {
		return nil, apperrors.NewBadRequestError("Image uploads are disabled")
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeEventUpdate(requester.RoleType, requester.ID, event); err != nil {
		return nil, err
	}

	url, err := s.images.SaveImage(file, eventImageDir)
	if err != nil {
		return nil, err
	}

	previous := event.Image
	event.Image = url
	if err := s.events.Update(ctx, event); err != nil {
		_ = s.images.DeleteImage(url)
		return nil, err
	}
	if err := s.images.DeleteImage(previous); err != nil {
		s.logger.Warn().Err(err).Int64("eventID", id).Msg("Failed to remove previous event image")
	}

	s.logger.Info().Int64("eventID", id).Str("image", url).Msg("Event image uploaded")
	return s.events.GetByID(ctx, id)
}

// DeleteEvent removes an event and every registration for it
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, requester *models.User, id int64) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	if s.images != nil {
		if err := s.images.DeleteImage(event.Image); err != nil {
			s.logger.Warn().Err(err).Int64("eventID", id).Msg("Failed to remove event image")
		}
	}
	s.logger.Info().Int64("eventID", id).Int64("deletedBy", requester.ID).Msg("Event deleted")
	return nil
}

// ListEvents filters by category and search text, soonest first
func (s *eventServiceImpl) ListEvents(ctx context.Context, req *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	filter := models.EventFilter{}
	if req != nil {
		filter.Category = models.EventCategory(req.Category)
		filter.Search = strings.TrimSpace(req.Search)
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return &dto.EventListResponse{Count: len(events), Events: events}, nil
}

// GetEvent loads an event with its registrants
func (s *eventServiceImpl) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	regs, err := s.events.GetRegistrations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading registrations: %w", err)
	}
	event.RegisteredUsers = regs
	return event, nil
}
