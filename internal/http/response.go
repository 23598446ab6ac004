package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var errBadRequest = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

// writeError maps domain failures to status codes and user-readable messages.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "please correct the highlighted fields", Fields: verr.Fields})
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "product not found"})
	case errors.Is(err, domain.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "please sign in"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
	case errors.Is(err, domain.ErrNotification):
		h.logError(r, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "we could not send your message, please try again"})
	case errors.Is(err, domain.ErrPersistence):
		h.logError(r, err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "we could not save your order, please try again"})
	case errors.Is(err, context.DeadlineExceeded):
		h.logError(r, err)
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "request timed out"})
	default:
		h.logError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("requestID", middleware.GetReqID(r.Context())),
		zap.Error(err))
}
