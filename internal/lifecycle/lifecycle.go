package lifecycle

import (
	"fmt"
	"time"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/validators"
	"github.com/shopspring/decimal"
)

// CreatedNote - примечание первой записи журнала
const CreatedNote = "Order created by customer"

// MinItemQuantity - общий минимум количества по позиции
var MinItemQuantity = decimal.RequireFromString("0.1")

// знаков после запятой у цены и стоимости доставки
const pricePlaces = 2

// PlanTransition - проверяет запрос на смену статуса и рассчитывает изменения заказа.
// Порядок проверок: роль, допустимость перехода, обязательные поля.
// Заказ не изменяется, изменения применяет хранилище в одной транзакции.
func PlanTransition(order *models.OrderData, actor models.Actor, req models.TransitionRequest, now time.Time) (*models.OrderMutation, error) {
	from, to := order.Status, req.Status

	if _, ok := models.ParseOrderStatus(string(to)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}

	// 1. Роль
	if !RolePermits(actor.Role, from, to) {
		return nil, fmt.Errorf("%w: %s may not move order %s from %s to %s", ErrUnauthorizedRole, actor.Role, order.Number, from, to)
	}
	if actor.Role == models.RoleCourier {
		if order.AssignedCourierID == nil || *order.AssignedCourierID != actor.ID {
			return nil, fmt.Errorf("%w: order %s", ErrNotAssignedCourier, order.Number)
		}
		if req.AssignedCourierID != nil || len(req.ActualQuantities) != 0 {
			return nil, fmt.Errorf("%w: courier may only change status", ErrForbiddenPayload)
		}
	}

	// 2. Таблица переходов
	if !IsAllowed(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	// 3. Обязательные поля
	courierID := req.AssignedCourierID
	if courierID != nil && *courierID == "" {
		courierID = nil
	}
	if to == models.OrderStatusPickupAssigned && courierID == nil && order.AssignedCourierID == nil {
		return nil, ErrMissingCourier
	}
	// курьер назначается при переходе в pickup_assigned или переназначается позже
	if courierID != nil && to != models.OrderStatusPickupAssigned && order.AssignedCourierID == nil {
		return nil, fmt.Errorf("%w: courier can't be assigned on %s", ErrUnexpectedCourier, to)
	}

	corrections, err := correctItems(order, req.ActualQuantities)
	if err != nil {
		return nil, err
	}

	mutation := &models.OrderMutation{
		Status:            to,
		AssignedCourierID: courierID,
		Items:             corrections,
		History: models.StatusHistoryData{
			OrderNumber: order.Number,
			Status:      to,
			Notes:       req.Notes,
			UpdatedBy:   actor.ID,
			CreatedAt:   now,
		},
	}
	switch to {
	case models.OrderStatusPickedUp:
		mutation.PickupCompletedAt = &now
	case models.OrderStatusDelivered:
		mutation.DeliveryCompletedAt = &now
	}
	if len(corrections) != 0 {
		total := RecomputeFinalTotal(order.Items, corrections, order.DeliveryFee)
		mutation.FinalTotal = &total
	}
	return mutation, nil
}

// correctItems - пересчёт фактических сумм по зафиксированной цене позиции
func correctItems(order *models.OrderData, quantities []models.QuantityCorrection) ([]models.ItemCorrection, error) {
	if len(quantities) == 0 {
		return nil, nil
	}
	items := make(map[int64]models.OrderItemData, len(order.Items))
	for _, item := range order.Items {
		items[item.ID] = item
	}

	// повторная правка той же позиции в запросе заменяет предыдущую
	index := make(map[int64]int, len(quantities))
	var result []models.ItemCorrection
	for _, q := range quantities {
		item, ok := items[q.OrderItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not part of order %s", ErrUnknownOrderItem, q.OrderItemID, order.Number)
		}
		if !validators.CheckQuantity(q.Quantity) {
			return nil, fmt.Errorf("%w: item %d quantity %s", ErrInvalidQuantity, q.OrderItemID, q.Quantity)
		}
		correction := models.ItemCorrection{
			OrderItemID:    item.ID,
			ActualQuantity: q.Quantity,
			ActualSubtotal: q.Quantity.Mul(item.PricePerUnit),
		}
		if i, ok := index[item.ID]; ok {
			result[i] = correction
			continue
		}
		index[item.ID] = len(result)
		result = append(result, correction)
	}
	return result, nil
}

// RecomputeFinalTotal - сумма фактических сумм позиций (отсутствующие считаются 0) плюс доставка.
// Результат зависит только от итоговых значений позиций, поэтому повторное применение тех же правок
// даёт ту же сумму.
func RecomputeFinalTotal(items []models.OrderItemData, corrections []models.ItemCorrection, deliveryFee decimal.Decimal) decimal.Decimal {
	corrected := make(map[int64]decimal.Decimal, len(corrections))
	for _, c := range corrections {
		corrected[c.OrderItemID] = c.ActualSubtotal
	}
	total := decimal.Zero
	for _, item := range items {
		if subtotal, ok := corrected[item.ID]; ok {
			total = total.Add(subtotal)
			continue
		}
		if item.ActualSubtotal.Valid {
			total = total.Add(item.ActualSubtotal.Decimal)
		}
	}
	return total.Add(deliveryFee)
}

// OrderPolicy - параметры оформления заказа, приходят из настроек
type OrderPolicy struct {
	DeliveryFee decimal.Decimal
	// проверять минимальное количество каждой услуги, а не только общий минимум 0.1
	EnforceServiceMinimum bool
}

// BuildOrder - проверяет черновик и собирает новый заказ с зафиксированными ценами.
// services - активные услуги каталога по идентификатору.
func BuildOrder(number string, customer models.Actor, draft models.OrderDraft, services map[int64]models.ServiceData, policy OrderPolicy, now time.Time) (*models.OrderData, error) {
	if customer.Role != models.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers place orders", ErrUnauthorizedRole)
	}
	if err := ValidateDraft(draft, now); err != nil {
		return nil, err
	}

	order := &models.OrderData{
		Number:              number,
		CustomerID:          customer.ID,
		PickupAddressID:     draft.PickupAddressID,
		DeliveryAddressID:   draft.DeliveryAddressID,
		Status:              models.OrderStatusPending,
		PaymentStatus:       models.PaymentStatusPending,
		PickupScheduledAt:   draft.PickupScheduledAt,
		DeliveryScheduledAt: draft.DeliveryScheduledAt,
		EstimatedTotal:      decimal.Zero,
		FinalTotal:          decimal.Zero,
		DeliveryFee:         policy.DeliveryFee.Round(pricePlaces),
		CustomerNotes:       draft.CustomerNotes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	for _, item := range draft.Items {
		service, ok := services[item.ServiceID]
		if !ok || !service.IsActive {
			return nil, fmt.Errorf("%w: %d", ErrUnknownService, item.ServiceID)
		}
		if item.Quantity.LessThan(MinItemQuantity) {
			return nil, fmt.Errorf("%w: service %d quantity %s is less than %s", ErrQuantityBelowMinimum, item.ServiceID, item.Quantity, MinItemQuantity)
		}
		if policy.EnforceServiceMinimum && item.Quantity.LessThan(service.MinQuantity) {
			return nil, fmt.Errorf("%w: service %d quantity %s is less than %s", ErrQuantityBelowMinimum, item.ServiceID, item.Quantity, service.MinQuantity)
		}
		if !validators.CheckQuantity(item.Quantity) {
			return nil, fmt.Errorf("%w: service %d quantity %s", ErrInvalidQuantity, item.ServiceID, item.Quantity)
		}
		// цена фиксируется с точностью хранения, сумма позиции считается по ней
		price := service.PricePerUnit.Round(pricePlaces)
		subtotal := item.Quantity.Mul(price)
		order.Items = append(order.Items, models.OrderItemData{
			OrderNumber:       number,
			ServiceID:         service.ID,
			EstimatedQuantity: item.Quantity,
			PricePerUnit:      price,
			EstimatedSubtotal: subtotal,
		})
		order.EstimatedTotal = order.EstimatedTotal.Add(subtotal)
	}

	created := CreatedNote
	order.History = []models.StatusHistoryData{{
		OrderNumber: number,
		Status:      models.OrderStatusPending,
		Notes:       &created,
		UpdatedBy:   customer.ID,
		CreatedAt:   now,
	}}
	return order, nil
}

// ValidateDraft - проверки черновика, не требующие каталога
func ValidateDraft(draft models.OrderDraft, now time.Time) error {
	if !draft.PickupScheduledAt.After(now) {
		return ErrPickupInPast
	}
	if !draft.DeliveryScheduledAt.After(draft.PickupScheduledAt) {
		return ErrDeliveryBeforePickup
	}
	if len(draft.Items) == 0 {
		return ErrNoItems
	}
	return nil
}

// CanView - может ли пользователь видеть заказ
func CanView(actor models.Actor, order *models.OrderData) bool {
	switch actor.Role {
	case models.RoleAdmin, models.RoleStaff:
		return true
	case models.RoleCourier:
		return order.AssignedCourierID != nil && *order.AssignedCourierID == actor.ID
	case models.RoleCustomer:
		return order.CustomerID == actor.ID
	default:
		return false
	}
}

// CheckReview - отзыв оставляет владелец доставленного заказа, оценка от 1 до 5
func CheckReview(actor models.Actor, order *models.OrderData, rating int) error {
	if actor.Role != models.RoleCustomer || order.CustomerID != actor.ID {
		return fmt.Errorf("%w: order %s", ErrOrderAccessDenied, order.Number)
	}
	if order.Status != models.OrderStatusDelivered {
		return fmt.Errorf("%w: order %s is %s", ErrReviewNotAllowed, order.Number, order.Status)
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	return nil
}
