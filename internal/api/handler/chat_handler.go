package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"loan-origination/internal/api/handler/dto"
	"loan-origination/internal/conversation"
	"loan-origination/internal/pkg/apperrors"
)

// ChatHandler exposes the conversation engine over HTTP. Conversation state
// is keyed by an explicit session identifier; the handler never holds any
// conversation state of its own.
type ChatHandler struct {
	engine *conversation.Engine
	store  conversation.Store
	logger *slog.Logger
}

func NewChatHandler(engine *conversation.Engine, store conversation.Store, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		engine: engine,
		store:  store,
		logger: logger.With("component", "ChatHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, conversation.ErrSessionNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

// Chat handles one conversation turn.
//
// @Summary Send a chat message
// @Description Feeds one user message into the loan-origination conversation. Omit session_id (or send an empty message) to start a new conversation; the response always carries the session_id to use on the next turn.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message payload"
// @Success 200 {object} dto.ChatResponse "Chatbot reply"
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return
	}

	ctx := r.Context()

	session, greeting, err := h.resolveSession(r, req.SessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	var reply string
	if req.Message == "" && greeting != "" {
		// A bare request opens the conversation.
		reply = greeting
	} else {
		reply = h.engine.Advance(ctx, session, req.Message)
	}

	if err := h.store.Put(ctx, session); err != nil {
		h.logger.ErrorContext(ctx, "Failed to persist session", slog.Any("error", err), slog.String("sessionID", session.ID))
		respondError(w, fmt.Errorf("%w: failed to persist session", apperrors.ErrInternalServer))
		return
	}

	respondJSON(w, http.StatusOK, dto.ChatResponse{
		SessionID: session.ID,
		Message:   reply,
		State:     string(session.State),
	})
}

// resolveSession loads the caller's session or starts a fresh one. An unknown
// or expired session id also starts fresh rather than failing the turn.
func (h *ChatHandler) resolveSession(r *http.Request, sessionID string) (*conversation.Session, string, error) {
	if sessionID == "" {
		session, greeting := h.engine.StartSession()
		return session, greeting, nil
	}

	session, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			h.logger.InfoContext(r.Context(), "Unknown or expired session, starting fresh", slog.String("sessionID", sessionID))
			session, greeting := h.engine.StartSession()
			return session, greeting, nil
		}
		return nil, "", fmt.Errorf("%w: session lookup failed: %v", apperrors.ErrInternalServer, err)
	}
	return session, "", nil
}
