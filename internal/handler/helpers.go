package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"atelier/internal/domain"
	"atelier/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		deleteErr    *domain.RemoteDeleteError
		tooLarge     *http.MaxBytesError
		unauthorized *domain.UnauthorizedError
	)

	switch {
	case errors.As(err, &deleteErr):
		httputil.RespondErrorWithExtras(w, http.StatusBadGateway,
			"removed locally, but the content store did not confirm the delete",
			map[string]interface{}{
				"collection": deleteErr.Collection,
				"id":         deleteErr.ID,
			})
	case errors.As(err, &tooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.As(err, &unauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, unauthorized.Message)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// badRequest answers 400 for an unreadable request body
func badRequest(w http.ResponseWriter, logger *slog.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		handleError(w, logger, err)
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}
