package dto

import "fmt"

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

func (r *ChatRequest) Validate() error {
	if r.SessionID == "" && r.Message == "" {
		return nil
	}
	if len(r.Message) > 1024 {
		return fmt.Errorf("message too long")
	}
	return nil
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	State     string `json:"state"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
