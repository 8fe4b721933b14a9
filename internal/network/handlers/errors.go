package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/ya-laundry/internal/client"
	"github.com/denmor86/ya-laundry/internal/lifecycle"
	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
)

// statusOf - HTTP код по виду ошибки
func statusOf(err error) int {
	switch lifecycle.KindOf(err) {
	case lifecycle.KindAuthorization:
		return http.StatusForbidden
	case lifecycle.KindValidation:
		return http.StatusUnprocessableEntity
	case lifecycle.KindIllegalTransition:
		return http.StatusConflict
	case lifecycle.KindNotFound:
		return http.StatusNotFound
	}
	if errors.Is(err, client.ErrServiceUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError - ответ с машиночитаемой причиной ошибки
func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	response := models.ErrorResponse{Error: http.StatusText(status), Reason: "internal_error"}

	var e *lifecycle.Error
	if errors.As(err, &e) {
		response.Error = e.Kind.String()
		response.Reason = e.Reason
		response.Field = e.Field
		logger.Warnw("request rejected", "kind", e.Kind.String(), "reason", e.Reason, "error", err)
	} else if status == http.StatusServiceUnavailable {
		response.Reason = "catalog_unavailable"
		logger.Warnw("catalog unavailable", "error", err)
	} else {
		logger.Errorw("request failed", "error", err)
	}
	writeJSON(w, status, response)
}

// badRequest - тело запроса не разобрано
func badRequest(w http.ResponseWriter, err error) {
	logger.Warnw("invalid request format", "error", err)
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "bad_request", Reason: "invalid_body"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorw("failed to encode JSON response", "error", err)
	}
}
