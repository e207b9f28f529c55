package onboarding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wolfman30/onboarding-assistant/internal/generation"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

const (
	chatGenerationFailedMessage  = "An error occurred while generating the next question."
	chatProcessingFailedMessage  = "An error occurred while processing your message."
	emailGenerationFailedMessage = "An error occurred while generating the email."
	invalidBodyMessage           = "Invalid request body"
	missingChatFieldsMessage     = "Please provide userId and message"
)

// ChatProcessor handles one chat turn.
type ChatProcessor interface {
	HandleMessage(ctx context.Context, userID, message string) (*ChatReply, error)
	Questions() []string
}

// EmailDrafter produces an email draft.
type EmailDrafter interface {
	Draft(ctx context.Context, req EmailRequest) (*EmailReply, error)
}

// Handler wires HTTP requests to the onboarding services.
type Handler struct {
	chat   ChatProcessor
	email  EmailDrafter
	logger *logging.Logger
}

func NewHandler(chat ChatProcessor, email EmailDrafter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{chat: chat, email: email, logger: logger}
}

// UserID accepts either a JSON string or number so numeric ids keep working.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return err
	}
	// 1000, 1000.0 and 1e3 name the same user.
	*u = UserID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// ChatRequest is the body of POST /chat. Message is a pointer so an absent
// field can be told apart from an empty message.
type ChatRequest struct {
	UserID  UserID  `json:"userId"`
	Message *string `json:"message"`
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("onboarding: failed to decode chat request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidBodyMessage})
		return
	}

	if req.Message == nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": missingChatFieldsMessage})
		return
	}

	reply, err := h.chat.HandleMessage(r.Context(), string(req.UserID), *req.Message)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Message})
		case generation.IsGenerationError(err):
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": chatGenerationFailedMessage})
		default:
			h.logger.Error("onboarding: chat turn failed", "error", err, "user_id", string(req.UserID))
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": chatProcessingFailedMessage})
		}
		return
	}

	h.writeJSON(w, http.StatusOK, reply)
}

// Email handles POST /email.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("onboarding: failed to decode email request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidBodyMessage})
		return
	}

	reply, err := h.email.Draft(r.Context(), req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Message})
			return
		}
		h.logger.Error("onboarding: email draft failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": emailGenerationFailedMessage})
		return
	}

	h.writeJSON(w, http.StatusOK, reply)
}

// Questions handles GET /questions.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{"questions": h.chat.Questions()})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
