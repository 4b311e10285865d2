package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/services"
	"github.com/yigit/cems/internal/middleware"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// EventController handles event registry and registration endpoints
type EventController struct {
	eventService        services.EventService
	registrationService services.RegistrationService
	logger              zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, registrationService services.RegistrationService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService:        eventService,
		registrationService: registrationService,
		logger:              logger,
	}
}

// ListEvents returns the events matching the filters
// @Summary List events
// @Description Lists events ordered by date. Search matches title and description case-insensitively.
// @Tags events
// @Produce json
// @Param category query string false "Category" Enums(technical, cultural, sports, workshop)
// @Param search query string false "Search text"
// @Success 200 {object} dto.StructuredResponse{data=dto.EventListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	var req dto.EventFilterRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	events, err := c.eventService.ListEvents(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, events, "")
}

// GetEvent returns one event with its registrants
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, event, "")
}

// CreateEvent creates an event owned by the caller
// @Summary Create event
// @Description Event members and admins only. Capacity defaults to 100, status to upcoming.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.StructuredResponse{data=models.Event} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, event, "Event created successfully")
}

// UpdateEvent applies a partial update
// @Summary Update event
// @Description Only the creator or an admin may update. Absent fields keep their value.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=models.Event} "Event updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Not authorized to update this event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), user, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, event, "Event updated successfully")
}

// DeleteEvent removes an event and its registrations
// @Summary Delete event
// @Description Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.StructuredResponse "Event deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins can delete events"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), user, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, nil, "Event deleted successfully")
}

// UploadImage replaces the event image with an uploaded file
// @Summary Upload event image
// @Description Only the creator or an admin may upload. Accepts jpg, png, gif or webp up to 5MB.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param image formData file true "Image file"
// @Success 200 {object} dto.StructuredResponse{data=models.Event} "Event image uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid image"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Not authorized to update this event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/image [post]
func (c *EventController) UploadImage(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("image")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("image", "image file is required"))
		return
	}

	event, err := c.eventService.UploadImage(ctx.Request.Context(), user, id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, event, "Event image uploaded successfully")
}

// Register signs the student up for an event
// @Summary Register for event
// @Description Students only. Fails when already registered or the event is full.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.RegisterEventRequest false "Registration details"
// @Success 200 {object} dto.StructuredResponse{data=models.Event} "Successfully registered for event"
// @Failure 400 {object} dto.ErrorResponse "Already registered or event is full"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only students can register for events"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.RegisterEventRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}

	event, err := c.registrationService.Register(ctx.Request.Context(), user, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, event, "Successfully registered for event")
}

// Unregister removes the student from an event
// @Summary Unregister from event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.RegistrationResponse} "Successfully unregistered from event"
// @Failure 400 {object} dto.ErrorResponse "Not registered"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only students can unregister from events"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/unregister [post]
func (c *EventController) Unregister(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.registrationService.Unregister(ctx.Request.Context(), user, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, resp, "Successfully unregistered from event")
}

// ListRegistered returns the caller's registered events
// @Summary My registered events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.EventListResponse}
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only students have registered events"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/registered/me [get]
func (c *EventController) ListRegistered(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	events, err := c.registrationService.ListRegisteredEvents(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, events, "")
}
