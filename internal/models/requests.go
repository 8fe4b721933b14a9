package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest - позиция в запросе на оформление заказа
type CreateOrderItemRequest struct {
	ServiceID int64           `json:"service_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest - запрос клиента на оформление заказа.
// Итоговые суммы и стоимость доставки клиент не передаёт, они считаются на сервере.
type CreateOrderRequest struct {
	PickupAddressID     int64                    `json:"pickup_address_id"`
	DeliveryAddressID   int64                    `json:"delivery_address_id"`
	PickupScheduledAt   time.Time                `json:"pickup_scheduled_at"`
	DeliveryScheduledAt time.Time                `json:"delivery_scheduled_at"`
	CustomerNotes       *string                  `json:"customer_notes,omitempty"`
	Items               []CreateOrderItemRequest `json:"items"`
}

// ActualQuantityRequest - фактическое количество по позиции
type ActualQuantityRequest struct {
	OrderItemID int64           `json:"order_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// UpdateStatusRequest - запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status            string                  `json:"status"`
	Notes             *string                 `json:"notes,omitempty"`
	AssignedCourierID *string                 `json:"assigned_courier_id,omitempty"`
	ActualQuantities  []ActualQuantityRequest `json:"actual_quantities,omitempty"`
}

// ReviewRequest - отзыв по заказу
type ReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// OrderItemResponse - позиция заказа для выдачи
type OrderItemResponse struct {
	ID                int64               `json:"id"`
	ServiceID         int64               `json:"service_id"`
	EstimatedQuantity decimal.Decimal     `json:"estimated_quantity"`
	ActualQuantity    decimal.NullDecimal `json:"actual_quantity"`
	PricePerUnit      decimal.Decimal     `json:"price_per_unit"`
	EstimatedSubtotal decimal.Decimal     `json:"estimated_subtotal"`
	ActualSubtotal    decimal.NullDecimal `json:"actual_subtotal"`
}

// StatusHistoryResponse - запись журнала статусов для выдачи
type StatusHistoryResponse struct {
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	UpdatedBy string  `json:"updated_by"`
	CreatedAt string  `json:"created_at"`
}

// OrderResponse - модель заказа для выдачи
type OrderResponse struct {
	Number              string                  `json:"number"`
	CustomerID          string                  `json:"customer_id"`
	PickupAddressID     int64                   `json:"pickup_address_id"`
	DeliveryAddressID   int64                   `json:"delivery_address_id"`
	Status              string                  `json:"status"`
	PaymentStatus       string                  `json:"payment_status"`
	PickupScheduledAt   string                  `json:"pickup_scheduled_at"`
	DeliveryScheduledAt string                  `json:"delivery_scheduled_at"`
	PickupCompletedAt   *string                 `json:"pickup_completed_at,omitempty"`
	DeliveryCompletedAt *string                 `json:"delivery_completed_at,omitempty"`
	EstimatedTotal      decimal.Decimal         `json:"estimated_total"`
	FinalTotal          decimal.Decimal         `json:"final_total"`
	DeliveryFee         decimal.Decimal         `json:"delivery_fee"`
	CustomerNotes       *string                 `json:"customer_notes,omitempty"`
	AssignedCourierID   *string                 `json:"assigned_courier_id,omitempty"`
	CreatedAt           string                  `json:"created_at"`
	Items               []OrderItemResponse     `json:"items,omitempty"`
	History             []StatusHistoryResponse `json:"history,omitempty"`
	// статусы, в которые пользователь может перевести заказ
	AllowedTransitions []string `json:"allowed_transitions,omitempty"`
}

// ErrorResponse - машиночитаемое описание ошибки
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
	Field  string `json:"field,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// NewOrderResponse - преобразование заказа из хранилища в модель выдачи
func NewOrderResponse(order *OrderData) OrderResponse {
	response := OrderResponse{
		Number:              order.Number,
		CustomerID:          order.CustomerID,
		PickupAddressID:     order.PickupAddressID,
		DeliveryAddressID:   order.DeliveryAddressID,
		Status:              order.Status.String(),
		PaymentStatus:       string(order.PaymentStatus),
		PickupScheduledAt:   order.PickupScheduledAt.Format(time.RFC3339),
		DeliveryScheduledAt: order.DeliveryScheduledAt.Format(time.RFC3339),
		PickupCompletedAt:   formatTime(order.PickupCompletedAt),
		DeliveryCompletedAt: formatTime(order.DeliveryCompletedAt),
		EstimatedTotal:      order.EstimatedTotal,
		FinalTotal:          order.FinalTotal,
		DeliveryFee:         order.DeliveryFee,
		CustomerNotes:       order.CustomerNotes,
		AssignedCourierID:   order.AssignedCourierID,
		CreatedAt:           order.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, OrderItemResponse{
			ID:                item.ID,
			ServiceID:         item.ServiceID,
			EstimatedQuantity: item.EstimatedQuantity,
			ActualQuantity:    item.ActualQuantity,
			PricePerUnit:      item.PricePerUnit,
			EstimatedSubtotal: item.EstimatedSubtotal,
			ActualSubtotal:    item.ActualSubtotal,
		})
	}
	for _, h := range order.History {
		response.History = append(response.History, StatusHistoryResponse{
			Status:    h.Status.String(),
			Notes:     h.Notes,
			UpdatedBy: h.UpdatedBy,
			CreatedAt: h.CreatedAt.Format(time.RFC3339),
		})
	}
	return response
}

// ReviewResponse - сохранённый отзыв
type ReviewResponse struct {
	OrderNumber string  `json:"order_number"`
	Rating      int     `json:"rating"`
	Comment     *string `json:"comment,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// NewReviewResponse - преобразование отзыва в модель выдачи
func NewReviewResponse(review *ReviewData) ReviewResponse {
	return ReviewResponse{
		OrderNumber: review.OrderNumber,
		Rating:      review.Rating,
		Comment:     review.Comment,
		CreatedAt:   review.CreatedAt.Format(time.RFC3339),
	}
}

// Draft - преобразование запроса в данные для оформления заказа
func (r CreateOrderRequest) Draft() OrderDraft {
	draft := OrderDraft{
		PickupAddressID:     r.PickupAddressID,
		DeliveryAddressID:   r.DeliveryAddressID,
		PickupScheduledAt:   r.PickupScheduledAt,
		DeliveryScheduledAt: r.DeliveryScheduledAt,
		CustomerNotes:       r.CustomerNotes,
	}
	for _, item := range r.Items {
		draft.Items = append(draft.Items, OrderItemDraft{ServiceID: item.ServiceID, Quantity: item.Quantity})
	}
	return draft
}

// Transition - преобразование запроса в запрос перехода
func (r UpdateStatusRequest) Transition() TransitionRequest {
	req := TransitionRequest{
		Status:            OrderStatus(r.Status),
		Notes:             r.Notes,
		AssignedCourierID: r.AssignedCourierID,
	}
	for _, q := range r.ActualQuantities {
		req.ActualQuantities = append(req.ActualQuantities, QuantityCorrection{OrderItemID: q.OrderItemID, Quantity: q.Quantity})
	}
	return req
}

// CourierResponse - курьер, доступный для назначения
type CourierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DashboardResponse - панель пользователя для выдачи
type DashboardResponse struct {
	Role              Role              `json:"role"`
	Stats             DashboardStats    `json:"stats"`
	RecentOrders      []OrderResponse   `json:"recent_orders,omitempty"`
	RecentReviews     []ReviewResponse  `json:"recent_reviews,omitempty"`
	TodayOrders       []OrderResponse   `json:"today_orders,omitempty"`
	AvailableCouriers []CourierResponse `json:"available_couriers,omitempty"`
	AssignedOrders    []OrderResponse   `json:"assigned_orders,omitempty"`
	ActiveOrders      []OrderResponse   `json:"active_orders,omitempty"`
}

// NewOrderResponses - список заказов для выдачи, nil для пустого
func NewOrderResponses(orders []OrderData) []OrderResponse {
	if len(orders) == 0 {
		return nil
	}
	response := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, NewOrderResponse(&orders[i]))
	}
	return response
}

// NewDashboardResponse - преобразование панели в модель выдачи
func NewDashboardResponse(dashboard *Dashboard) DashboardResponse {
	response := DashboardResponse{
		Role:           dashboard.Role,
		Stats:          dashboard.Stats,
		RecentOrders:   NewOrderResponses(dashboard.RecentOrders),
		TodayOrders:    NewOrderResponses(dashboard.TodayOrders),
		AssignedOrders: NewOrderResponses(dashboard.AssignedOrders),
		ActiveOrders:   NewOrderResponses(dashboard.ActiveOrders),
	}
	for i := range dashboard.RecentReviews {
		response.RecentReviews = append(response.RecentReviews, NewReviewResponse(&dashboard.RecentReviews[i]))
	}
	for _, courier := range dashboard.AvailableCouriers {
		response.AvailableCouriers = append(response.AvailableCouriers, CourierResponse{ID: courier.UserID, Name: courier.Name})
	}
	return response
}
