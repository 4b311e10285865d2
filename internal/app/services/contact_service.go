package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/pkg/email"
	"github.com/yigit/cems/internal/pkg/helpers"
	"github.com/yigit/cems/internal/pkg/validation"
)

// ContactService defines contact intake and the admin queue
type ContactService interface {
	// Submit stores a message from anyone; userID is set when the sender is signed in
	Submit(ctx context.Context, req *dto.ContactRequest, userID *int64) (*models.ContactMessage, error)
	List(ctx context.Context, req *dto.ContactFilterRequest) (*dto.ContactListResponse, error)
	Get(ctx context.Context, id int64) (*models.ContactMessage, error)
	Update(ctx context.Context, admin *models.User, id int64, req *dto.UpdateContactRequest) (*models.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*dto.ContactStatsResponse, error)
}

type contactServiceImpl struct {
	contacts repositories.IContactRepository
	mailer   email.EmailService
	logger   zerolog.Logger
	now      func() time.Time
}

// NewContactService creates a new ContactService. A nil mailer disables
// response notifications.
func NewContactService(contacts repositories.IContactRepository, mailer email.EmailService, logger zerolog.Logger) ContactService {
	return &contactServiceImpl{
		contacts: contacts,
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit stores a pending contact message
func (s *contactServiceImpl) Submit(ctx context.Context, req *dto.ContactRequest, userID *int64) (*models.ContactMessage, error) {
	contact := &models.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     validation.NormalizeEmail(req.Email),
		IssueType: models.IssueType(req.IssueType),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Status:    models.ContactPending,
		UserID:    userID,
	}

	if err := validation.All(
		validation.NewStringValidation("name", contact.Name).WithMaxLength(100),
		validation.NewStringValidation("subject", contact.Subject).WithMaxLength(200),
		validation.NewStringValidation("message", contact.Message).WithMaxLength(5000),
	); err != nil {
		return nil, err
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("contactID", contact.ID).
		Str("issueType", string(contact.IssueType)).
		Msg("Contact message received")
	return contact, nil
}

// List returns one page of the queue, newest first
func (s *contactServiceImpl) List(ctx context.Context, req *dto.ContactFilterRequest) (*dto.ContactListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.Limit)

	contacts, total, err := s.contacts.List(ctx, models.ContactFilter{
		Status: models.ContactStatus(req.Status),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing contact messages: %w", err)
	}
	if contacts == nil {
		contacts = []*models.ContactMessage{}
	}

	return &dto.ContactListResponse{
		Contacts:   contacts,
		Pagination: helpers.NewPaginationInfo(total, req.Page, limit),
	}, nil
}

// Get returns a single contact message
func (s *contactServiceImpl) Get(ctx context.Context, id int64) (*models.ContactMessage, error) {
	return s.contacts.GetByID(ctx, id)
}

// Update changes the status and records the admin response. A new response is
// mailed to the submitter; mail failures do not fail the update.
func (s *contactServiceImpl) Update(ctx context.Context, admin *models.User, id int64, req *dto.UpdateContactRequest) (*models.ContactMessage, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		contact.Status = models.ContactStatus(*req.Status)
	}

	responded := false
	if req.Response != nil {
		response := strings.TrimSpace(*req.Response)
		if response != "" {
			now := s.now()
			contact.Response = &response
			contact.RespondedByID = &admin.ID
			contact.RespondedAt = &now
			responded = true
		}
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}

	if responded && s.mailer != nil {
		if err := s.mailer.SendContactResponse(contact.Email, contact.Name, contact.Subject, *contact.Response); err != nil {
			s.logger.Error().Err(err).Int64("contactID", id).Msg("Failed to send contact response email")
		}
	}

	s.logger.Info().
		Int64("contactID", id).
		Str("status", string(contact.Status)).
		Bool("responded", responded).
		Int64("adminID", admin.ID).
		Msg("Contact message updated")
	return s.contacts.GetByID(ctx, id)
}

// Delete removes a contact message
func (s *contactServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("contactID", id).Msg("Contact message deleted")
	return nil
}

// Stats summarizes the queue by status and issue type
func (s *contactServiceImpl) Stats(ctx context.Context) (*dto.ContactStatsResponse, error) {
	stats, err := s.contacts.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading contact stats: %w", err)
	}
	return dto.ToContactStatsResponse(stats), nil
}
