package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/services"
	"github.com/yigit/cems/internal/middleware"
)

// ContactController handles contact intake and the admin queue
type ContactController struct {
	contactService services.ContactService
	logger         zerolog.Logger
}

// NewContactController creates a new ContactController
func NewContactController(contactService services.ContactService, logger zerolog.Logger) *ContactController {
	return &ContactController{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit stores a contact message
// @Summary Submit contact message
// @Description Public. The sender is linked when a valid token is supplied.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Message"
// @Success 201 {object} dto.StructuredResponse{data=models.ContactMessage}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req dto.ContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	contact, err := c.contactService.Submit(ctx.Request.Context(), &req, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, contact, "Your message has been sent successfully. We will respond within 24 hours.")
}

// List returns a page of contact messages
// @Summary List contact messages
// @Description Admin only. Newest first.
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status" Enums(pending, in-progress, resolved, closed)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} dto.StructuredResponse{data=dto.ContactListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins can manage contact messages"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact [get]
func (c *ContactController) List(ctx *gin.Context) {
	var req dto.ContactFilterRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	resp, err := c.contactService.List(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, resp, "")
}

// Stats summarizes the contact queue
// @Summary Contact statistics
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.ContactStatsResponse}
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins can manage contact messages"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/stats [get]
func (c *ContactController) Stats(ctx *gin.Context) {
	stats, err := c.contactService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, stats, "")
}

// Get returns one contact message
// @Summary Get contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact message ID"
// @Success 200 {object} dto.StructuredResponse{data=models.ContactMessage}
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins can manage contact messages"
// @Failure 404 {object} dto.ErrorResponse "Contact message not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/{id} [get]
func (c *ContactController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	contact, err := c.contactService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, contact, "")
}

// Update changes the status or records a response
// @Summary Update contact message
// @Description A response is mailed to the submitter when SMTP is configured.
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact message ID"
// @Param request body dto.UpdateContactRequest true "Status and/or response"
// @Success 200 {object} dto.StructuredResponse{data=models.ContactMessage} "Contact message updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins can manage contact messages"
// @Failure 404 {object} dto.ErrorResponse "Contact message not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/{id} [put]
func (c *ContactController) Update(ctx *gin.Context) {
	admin, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	contact, err := c.contactService.Update(ctx.Request.Context(), admin, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, contact, "Contact message updated successfully")
}

// Delete removes a contact message
// @Summary Delete contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact message ID"
// @Success 200 {object} dto.StructuredResponse "Contact message deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins can manage contact messages"
// @Failure 404 {object} dto.ErrorResponse "Contact message not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.contactService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, nil, "Contact message deleted successfully")
}
