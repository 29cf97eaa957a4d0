package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/target/garage-api/internal/domain/auth"
	apperrors "github.com/target/garage-api/internal/errors"
	obserrors "github.com/target/garage-api/internal/observability/errors"
)

// writeServiceError maps service errors onto status codes. Anything not
// recognized is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, code, ok := appErrorStatus(appErr.Code); ok {
			WriteJSON(w, status, errorBody{Error: code, Message: appErr.Message, Field: appErr.Field})
			return
		}
	}

	switch {
	case errors.Is(err, domainauth.ErrInvalidCredentials):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
		return
	case errors.Is(err, context.DeadlineExceeded):
		WriteError(w, ErrorParams{Code: http.StatusGatewayTimeout, ErrCode: "timeout", Err: errors.New("request timed out")})
		return
	case errors.Is(err, context.Canceled):
		WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "canceled", Err: errors.New("request canceled")})
		return
	}

	logger.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error_class", obserrors.Classify(err)),
		slog.Any("error", err),
	)
	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("internal error")})
}

func appErrorStatus(code apperrors.ErrorCode) (int, string, bool) {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest, "validation_failed", true
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found", true
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict", true
	case apperrors.ErrCodeForeignKey:
		return http.StatusConflict, "foreign_key", true
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout", true
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable, "canceled", true
	default:
		return 0, "", false
	}
}
