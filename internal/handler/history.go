package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/backend/internal/model"
	"github.com/careconnect/backend/internal/service"
)

type HistoryHandler struct {
	svc *service.HistoryService
}

func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// GetHistory godoc
// @Summary Get conversation history
// @Tags bruce
// @Produce json
// @Success 200 {object} model.ConversationHistoryResponse
// @Router /api/bruce/history [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, model.ConversationHistoryResponse{History: h.svc.Load(c.Request.Context())})
}

// AddMessage godoc
// @Summary Append a message to the conversation history
// @Description Timestamp is filled in when omitted. Storage failures are logged, not reported.
// @Tags bruce
// @Accept json
// @Produce json
// @Param request body model.ChatMessage true "Message"
// @Success 200 {object} model.HistoryMutationResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/bruce/history/add [post]
func (h *HistoryHandler) AddMessage(c *gin.Context) {
	var msg model.ChatMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		writeDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	h.svc.Append(c.Request.Context(), msg)
	c.JSON(http.StatusOK, model.HistoryMutationResponse{Success: true, Message: "Message added to history"})
}

// ClearHistory godoc
// @Summary Clear the conversation history
// @Tags bruce
// @Produce json
// @Success 200 {object} model.HistoryMutationResponse
// @Router /api/bruce/history/clear [post]
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	h.svc.Clear(c.Request.Context())
	c.JSON(http.StatusOK, model.HistoryMutationResponse{Success: true, Message: "Conversation history cleared"})
}
