package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "notedeck/pkg/errors"
)

// Envelope is the uniform JSON response wrapper.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorBody is the error portion of the envelope.
type ErrorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a built envelope cannot realistically fail; ignore the error
	// like the rest of the handlers do for response writes.
	_ = json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func respondList(w http.ResponseWriter, data interface{}, meta interface{}) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Meta: meta})
}

func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.Type == apperrors.ErrTypeInternal && logger != nil {
		logger.Error("request failed", zap.String("code", appErr.Code), zap.Error(appErr))
	}

	message := appErr.Message
	if appErr.Type == apperrors.ErrTypeInternal {
		message = "internal server error"
	}
	writeJSON(w, appErr.HTTPStatus(), Envelope{Success: false, Error: &ErrorBody{Message: message}})
}

// NotFoundHandler is the fallback for unmatched routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Envelope{Success: false, Error: &ErrorBody{Message: "route not found"}})
}

// MethodNotAllowedHandler is the fallback for matched routes with the wrong method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Envelope{Success: false, Error: &ErrorBody{Message: "method not allowed"}})
}
