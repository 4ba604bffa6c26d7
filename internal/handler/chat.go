package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/backend/internal/model"
	"github.com/careconnect/backend/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat godoc
// @Summary Chat with Bruce
// @Description Buffered reply. Use /api/bruce/chat/stream for streaming.
// @Tags bruce
// @Accept json
// @Produce json
// @Param request body model.ChatRequest true "Conversation (stream=false)"
// @Success 200 {object} model.ChatResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/bruce/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := service.CheckStreamFlag(req, false); err != nil {
		writeError(c, err)
		return
	}

	reply, err := h.svc.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Message: *reply})
}

// ChatStream godoc
// @Summary Chat with Bruce (streaming)
// @Description Relays reply fragments as plain text. An upstream failure ends the body with "Error: <message>".
// @Description Clients sending Accept: text/event-stream get message/error/done SSE events instead.
// @Tags bruce
// @Accept json
// @Produce plain
// @Produce text/event-stream
// @Param request body model.ChatRequest true "Conversation (stream=true)"
// @Success 200 {string} string "reply fragments"
// @Failure 400 {object} model.ErrorResponse
// @Router /api/bruce/chat/stream [post]
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := service.CheckStreamFlag(req, true); err != nil {
		writeError(c, err)
		return
	}

	w := newStreamWriter(c)
	for fragment, err := range h.svc.CompleteStream(c.Request.Context(), req.Messages) {
		if err != nil {
			w.fail(err)
			return
		}
		w.fragment(fragment)
	}
	w.done()
}

// streamWriter renders relay output either as raw text or as SSE events.
type streamWriter struct {
	c   *gin.Context
	sse bool
}

func newStreamWriter(c *gin.Context) *streamWriter {
	w := &streamWriter{c: c, sse: wantsEventStream(c.GetHeader("Accept"))}
	if w.sse {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
	} else {
		c.Header("Content-Type", "text/plain; charset=utf-8")
	}
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()
	return w
}

func (w *streamWriter) fragment(text string) {
	if w.sse {
		w.c.SSEvent("message", text)
	} else {
		_, _ = w.c.Writer.WriteString(text)
	}
	w.c.Writer.Flush()
}

func (w *streamWriter) fail(err error) {
	if w.sse {
		w.c.SSEvent("error", model.ErrorResponse{Detail: err.Error()})
	} else {
		_, _ = w.c.Writer.WriteString("Error: " + err.Error())
	}
	w.c.Writer.Flush()
}

func (w *streamWriter) done() {
	if w.sse {
		w.c.SSEvent("done", "")
		w.c.Writer.Flush()
	}
}

func wantsEventStream(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), "text/event-stream") {
			return true
		}
	}
	return false
}
