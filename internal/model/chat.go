package model

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation transcript.
type ChatMessage struct {
	Role      string `json:"role" binding:"required"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"dive"`
	Stream   bool          `json:"stream"`
}

type ChatResponse struct {
	Message ChatMessage `json:"message"`
}

type ConversationHistoryResponse struct {
	History []ChatMessage `json:"history"`
}

type HistoryMutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
