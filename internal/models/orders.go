package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus - статус заказа в жизненном цикле
type OrderStatus string

// Статусы заказов
const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPickupAssigned OrderStatus = "pickup_assigned"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusInProcess      OrderStatus = "in_process"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses - все статусы в порядке основного пути, cancelled последним
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPickupAssigned,
	OrderStatusPickedUp,
	OrderStatusInProcess,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal - из терминального статуса переходов нет
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus - разбор статуса из строки
func ParseOrderStatus(value string) (OrderStatus, bool) {
	for _, s := range OrderStatuses {
		if string(s) == value {
			return s, true
		}
	}
	return "", false
}

// PaymentStatus - статус оплаты, не зависит от статуса заказа
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderData - модель заказа из хранилища
type OrderData struct {
	Number              string
	CustomerID          string
	PickupAddressID     int64
	DeliveryAddressID   int64
	Status              OrderStatus
	PaymentStatus       PaymentStatus
	PaymentMethod       *string
	PickupScheduledAt   time.Time
	DeliveryScheduledAt time.Time
	PickupCompletedAt   *time.Time
	DeliveryCompletedAt *time.Time
	EstimatedTotal      decimal.Decimal
	FinalTotal          decimal.Decimal
	DeliveryFee         decimal.Decimal
	CustomerNotes       *string
	AssignedCourierID   *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Items   []OrderItemData
	History []StatusHistoryData
}

// OrderItemData - позиция заказа с зафиксированной ценой за единицу
type OrderItemData struct {
	ID                int64
	OrderNumber       string
	ServiceID         int64
	EstimatedQuantity decimal.Decimal
	ActualQuantity    decimal.NullDecimal
	PricePerUnit      decimal.Decimal
	EstimatedSubtotal decimal.Decimal
	ActualSubtotal    decimal.NullDecimal
}

// StatusHistoryData - запись журнала статусов (только добавление)
type StatusHistoryData struct {
	ID          int64
	OrderNumber string
	Status      OrderStatus
	Notes       *string
	UpdatedBy   string
	CreatedAt   time.Time
}

// QuantityCorrection - фактическое количество по позиции, замеренное персоналом
type QuantityCorrection struct {
	OrderItemID int64
	Quantity    decimal.Decimal
}

// TransitionRequest - запрос на смену статуса
type TransitionRequest struct {
	Status            OrderStatus
	Notes             *string
	AssignedCourierID *string
	ActualQuantities  []QuantityCorrection
}

// ItemCorrection - пересчитанные фактические значения позиции
type ItemCorrection struct {
	OrderItemID    int64
	ActualQuantity decimal.Decimal
	ActualSubtotal decimal.Decimal
}

// OrderMutation - набор изменений одного перехода, применяется атомарно
type OrderMutation struct {
	Status              OrderStatus
	AssignedCourierID   *string
	PickupCompletedAt   *time.Time
	DeliveryCompletedAt *time.Time
	Items               []ItemCorrection
	// nil, если фактические количества не передавались
	FinalTotal *decimal.Decimal
	History    StatusHistoryData
}

// Apply - применяет изменения к загруженному заказу
func (o *OrderData) Apply(m *OrderMutation) {
	o.Status = m.Status
	if m.AssignedCourierID != nil {
		courier := *m.AssignedCourierID
		o.AssignedCourierID = &courier
	}
	if m.PickupCompletedAt != nil {
		o.PickupCompletedAt = m.PickupCompletedAt
	}
	if m.DeliveryCompletedAt != nil {
		o.DeliveryCompletedAt = m.DeliveryCompletedAt
	}
	for _, c := range m.Items {
		for i := range o.Items {
			if o.Items[i].ID == c.OrderItemID {
				o.Items[i].ActualQuantity = decimal.NewNullDecimal(c.ActualQuantity)
				o.Items[i].ActualSubtotal = decimal.NewNullDecimal(c.ActualSubtotal)
			}
		}
	}
	if m.FinalTotal != nil {
		o.FinalTotal = *m.FinalTotal
	}
	o.UpdatedAt = m.History.CreatedAt
	o.History = append(o.History, m.History)
}

// OrderItemDraft - позиция нового заказа, как её передал клиент
type OrderItemDraft struct {
	ServiceID int64
	Quantity  decimal.Decimal
}

// OrderDraft - данные для оформления нового заказа
type OrderDraft struct {
	PickupAddressID     int64
	DeliveryAddressID   int64
	PickupScheduledAt   time.Time
	DeliveryScheduledAt time.Time
	CustomerNotes       *string
	Items               []OrderItemDraft
}

// OrderFilter - фильтр выборки заказов
type OrderFilter struct {
	CustomerID     *string
	CourierID      *string
	Statuses       []OrderStatus
	DeliveredSince *time.Time
	CreatedSince   *time.Time
	// по времени забора, иначе новые первыми
	OrderByPickup bool
	Limit         int
	Offset        int
}

// ReviewData - отзыв клиента по доставленному заказу
type ReviewData struct {
	ID          int64
	OrderNumber string
	CustomerID  string
	Rating      int
	Comment     *string
	CreatedAt   time.Time
}
