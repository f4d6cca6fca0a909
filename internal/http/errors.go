package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// MsgInternal is the only message a 5xx response ever carries unless a route overrides it.
const MsgInternal = "Internal server error"

// appErrorParams groups what writeAppError needs to translate a service error.
type appErrorParams struct {
	Err    error
	Logger *slog.Logger
	// Fallback replaces MsgInternal on dependency failures, e.g. "Failed to fetch colleges".
	Fallback string
}

// writeAppError maps an AppError code to an HTTP status and writes its message.
// Dependency failures are logged and answered with a non-leaking message.
func writeAppError(w http.ResponseWriter, r *http.Request, p appErrorParams) {
	status, msg := statusFor(p.Err)
	if status >= http.StatusInternalServerError {
		logger := p.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", p.Err))
		msg = MsgInternal
		if p.Fallback != "" {
			msg = p.Fallback
		}
	}
	WriteError(w, ErrorParams{Code: status, Message: msg})
}

// statusFor returns the HTTP status and client-safe message for err.
func statusFor(err error) (int, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, ""
	}
	switch appErr.Code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest, appErr.Message
	case apperrors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized, appErr.Message
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden, appErr.Message
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, appErr.Message
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, appErr.Message
	default:
		return http.StatusInternalServerError, ""
	}
}
