package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/denmor86/ya-laundry/internal/helpers"
	"github.com/denmor86/ya-laundry/internal/lifecycle"
	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/services"
	"github.com/denmor86/ya-laundry/internal/validators"
	"github.com/go-chi/chi/v5"
)

var errInvalidPage = errors.New("invalid page")

// actorFrom - пользователь запроса, при ошибке ответ уже отправлен
func actorFrom(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, err := helpers.GetActor(r.Context())
	if err != nil {
		logger.Warnw("failed to get actor", "error", err)
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized", Reason: "invalid_token"})
		return models.Actor{}, false
	}
	return actor, true
}

// orderNumber - номер заказа из пути. Номер неверного формата не может принадлежать заказу.
func orderNumber(r *http.Request) (string, error) {
	number := chi.URLParam(r, "number")
	if !validators.CheckOrderNumber(number) {
		return "", fmt.Errorf("%w: %q", lifecycle.ErrOrderNotFound, number)
	}
	return strings.TrimSpace(number), nil
}

func closeBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		logger.Errorw("error to close body", "error", err)
	}
}

// CreateOrderHandler — оформление заказа клиентом
func CreateOrderHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		defer closeBody(r)

		var req models.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err)
			return
		}

		order, err := s.CreateOrder(r.Context(), actor, req.Draft())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, models.NewOrderResponse(order))
	})
}

// parseStatuses - фильтр ?status=a,b или ?status=a&status=b
func parseStatuses(r *http.Request) ([]models.OrderStatus, error) {
	var statuses []models.OrderStatus
	for _, value := range r.URL.Query()["status"] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			status, ok := models.ParseOrderStatus(part)
			if !ok {
				return nil, fmt.Errorf("%w: %q", lifecycle.ErrUnknownStatus, part)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func parsePage(r *http.Request) (int, error) {
	value := r.URL.Query().Get("page")
	if value == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: %q", errInvalidPage, value)
	}
	return page, nil
}

// GetOrdersHandler — страница заказов, видимых пользователю
func GetOrdersHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		statuses, err := parseStatuses(r)
		if err != nil {
			writeError(w, err)
			return
		}
		page, err := parsePage(r)
		if err != nil {
			badRequest(w, err)
			return
		}

		orders, err := s.GetOrders(r.Context(), actor, statuses, page)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, models.NewOrderResponses(orders))
	})
}

// GetOrderHandler — заказ с позициями и журналом статусов
func GetOrderHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		number, err := orderNumber(r)
		if err != nil {
			writeError(w, err)
			return
		}
		order, err := s.GetOrder(r.Context(), actor, number)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, detailedResponse(actor, order))
	})
}

// detailedResponse - заказ вместе со статусами, доступными пользователю из текущего
func detailedResponse(actor models.Actor, order *models.OrderData) models.OrderResponse {
	response := models.NewOrderResponse(order)
	if actor.Role == models.RoleCourier && (order.AssignedCourierID == nil || *order.AssignedCourierID != actor.ID) {
		return response
	}
	for _, status := range lifecycle.NextStatuses(actor.Role, order.Status) {
		response.AllowedTransitions = append(response.AllowedTransitions, string(status))
	}
	return response
}

// UpdateStatusHandler — смена статуса заказа
func UpdateStatusHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		defer closeBody(r)

		number, err := orderNumber(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req models.UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err)
			return
		}

		order, err := s.UpdateStatus(r.Context(), actor, number, req.Transition())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, detailedResponse(actor, order))
	})
}

// AddReviewHandler — отзыв клиента по доставленному заказу
func AddReviewHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		defer closeBody(r)

		number, err := orderNumber(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req models.ReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, err)
			return
		}

		review, err := s.AddReview(r.Context(), actor, number, req.Rating, req.Comment)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, models.NewReviewResponse(review))
	})
}
