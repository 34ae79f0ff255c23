package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// writeUnauthorized is the single 401 body of the API. Unknown user, wrong
// password, locked username and every token failure all produce it.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "could not validate credentials")
}

// mapError translates service errors to status, code and client message.
func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "could not validate credentials"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "CONFLICT", "resource already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

func (h *Handler) writeMappedError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	status, code, msg := mapError(err)
	fields := []any{
		"operation", operation,
		"status_code", status,
		"error_code", code,
		"request_id", requestIDFromContext(ctx),
		"error", err.Error(),
	}
	if status >= 500 {
		h.logger.Error(ctx, "http operation failed", fields...)
	} else {
		h.logger.Warn(ctx, "http operation failed", fields...)
	}
	if status == http.StatusUnauthorized {
		writeUnauthorized(w)
		return
	}
	writeError(w, status, code, msg)
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}
