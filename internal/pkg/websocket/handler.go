package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// EventLookup resolves the event a client wants to watch
type EventLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// Handler upgrades requests to the live registration feed
type Handler struct {
	hub      *Hub
	events   EventLookup
	upgrader gws.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, events EventLookup, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		events:   events,
		upgrader: NewUpgrader(allowedOrigins),
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Live registration feed of an event
// @Description Upgrades to a WebSocket that first sends the current registration count, then one message per register or unregister
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 101 {object} Message "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/live [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid event ID").WithField("id")))
		return
	}

	event, err := h.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err))))
			return
		}
		h.logger.Error().Err(err).Int64("eventID", eventID).Msg("Failed to load event for feed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Int64("eventID", eventID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		eventID: eventID,
		version: event.RegistrationVersion,
		logger:  h.logger,
	}

	snapshot, err := json.Marshal(NewRegistrationMessage(&models.RegistrationState{
		EventID:           event.ID,
		RegistrationCount: event.RegistrationCount,
		Capacity:          event.Capacity,
		Version:           event.RegistrationVersion,
	}))
	if err == nil {
		client.send <- snapshot
	}

	if !h.hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
