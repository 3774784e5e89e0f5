package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"landmark-catalog/internal/logger"
	apperrors "landmark-catalog/internal/pkg/errors"
	"landmark-catalog/internal/services"

	"github.com/sirupsen/logrus"
)

const (
	MsgForbidden        = "Access forbidden: Admin privileges required"
	MsgLandmarkNotFound = "Landmark not found"
	MsgInternalError    = "Internal Server Error"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type validationErrorResponse struct {
	Detail []apperrors.FieldError `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.WithError(err).Error("Failed to encode response")
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, errorResponse{Detail: message})
}

// RespondWithServiceError maps err onto a status code. Validation errors
// carry their field list; unknown errors are logged and hidden.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondWithJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Detail: verr.Fields})
	case errors.Is(err, apperrors.ErrInvalidInput):
		RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperrors.ErrInsufficientPermission):
		RespondWithError(w, http.StatusForbidden, MsgForbidden)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, notFoundMessage)
	default:
		fields := logrus.Fields{
			"error":  err.Error(),
			"method": r.Method,
			"url":    r.URL.Path,
		}
		if requestID, ok := services.RequestIDFromContext(r.Context()); ok {
			fields["request_id"] = requestID
		}
		logger.LogEvent(logrus.ErrorLevel, "Request failed", fields)
		RespondWithError(w, http.StatusInternalServerError, MsgInternalError)
	}
}
