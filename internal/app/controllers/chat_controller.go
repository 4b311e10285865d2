package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/services"
	"github.com/yigit/cems/internal/middleware"
)

// ChatController handles the chatbot conversation endpoints
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// Start opens a conversation
// @Summary Start conversation
// @Description Public. Returns a new conversation id and the greeting.
// @Tags chat
// @Produce json
// @Success 201 {object} dto.StructuredResponse{data=dto.ConversationResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/start [post]
func (c *ChatController) Start(ctx *gin.Context) {
	resp, err := c.chatService.Start(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, resp, "")
}

// SendMessage runs one chat turn
// @Summary Send message
// @Description Public. Unknown conversation ids are created on first use.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} dto.StructuredResponse{data=dto.ConversationResponse}
// @Failure 400 {object} dto.ErrorResponse "Conversation ID and message are required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/message [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Conversation ID and message are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(dto.HandleValidationError(err).Details)))
		return
	}

	resp, err := c.chatService.SendMessage(ctx.Request.Context(), &req, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, resp, "")
}

// Get returns a conversation
// @Summary Get conversation
// @Tags chat
// @Produce json
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Conversation}
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/{conversationId} [get]
func (c *ChatController) Get(ctx *gin.Context) {
	conv, err := c.chatService.Get(ctx.Request.Context(), ctx.Param("conversationId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, conv, "")
}

// Delete removes a conversation
// @Summary Delete conversation
// @Description Owned conversations may be deleted by the owner or an admin.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} dto.StructuredResponse "Conversation deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Not authorized to delete this conversation"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/{conversationId} [delete]
func (c *ChatController) Delete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.chatService.Delete(ctx.Request.Context(), user, ctx.Param("conversationId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, nil, "Conversation deleted successfully")
}

// History lists a user's conversations
// @Summary Chat history
// @Description Users may read their own history; admins may read any.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ChatHistoryResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid userId"
// @Failure 401 {object} dto.ErrorResponse "Not authorized"
// @Failure 403 {object} dto.ErrorResponse "Not authorized to view this chat history"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/history/{userId} [get]
func (c *ChatController) History(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	ownerID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	history, err := c.chatService.History(ctx.Request.Context(), user, ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, history, "")
}
