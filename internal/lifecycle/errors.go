package lifecycle

import (
	"errors"
	"fmt"
)

// Kind - вид ошибки жизненного цикла, по нему вызывающая сторона выбирает ответ
type Kind int

const (
	KindAuthorization Kind = iota + 1
	KindValidation
	KindIllegalTransition
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindIllegalTransition:
		return "illegal_transition"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error - типизированная ошибка с машиночитаемым кодом причины.
// Ни одна из ошибок не является временной, повтор не имеет смысла.
type Error struct {
	Kind   Kind
	Reason string
	Field  string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Reason, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

var (
	ErrUnauthorizedRole   = &Error{Kind: KindAuthorization, Reason: "unauthorized_role"}
	ErrNotAssignedCourier = &Error{Kind: KindAuthorization, Reason: "not_assigned_courier"}
	ErrForbiddenPayload   = &Error{Kind: KindAuthorization, Reason: "forbidden_payload"}
	ErrOrderAccessDenied  = &Error{Kind: KindAuthorization, Reason: "order_access_denied"}

	ErrIllegalTransition = &Error{Kind: KindIllegalTransition, Reason: "illegal_transition", Field: "status"}

	ErrUnknownStatus        = &Error{Kind: KindValidation, Reason: "unknown_status", Field: "status"}
	ErrMissingCourier       = &Error{Kind: KindValidation, Reason: "missing_courier", Field: "assigned_courier_id"}
	ErrUnexpectedCourier    = &Error{Kind: KindValidation, Reason: "unexpected_courier", Field: "assigned_courier_id"}
	ErrInvalidCourier       = &Error{Kind: KindValidation, Reason: "invalid_courier", Field: "assigned_courier_id"}
	ErrUnknownOrderItem     = &Error{Kind: KindValidation, Reason: "unknown_order_item", Field: "actual_quantities"}
	ErrInvalidQuantity      = &Error{Kind: KindValidation, Reason: "invalid_quantity", Field: "quantity"}
	ErrQuantityBelowMinimum = &Error{Kind: KindValidation, Reason: "quantity_below_minimum", Field: "items"}
	ErrDeliveryBeforePickup = &Error{Kind: KindValidation, Reason: "delivery_before_pickup", Field: "delivery_scheduled_at"}
	ErrPickupInPast         = &Error{Kind: KindValidation, Reason: "pickup_in_past", Field: "pickup_scheduled_at"}
	ErrNoItems              = &Error{Kind: KindValidation, Reason: "no_items", Field: "items"}
	ErrUnknownAddress       = &Error{Kind: KindValidation, Reason: "unknown_address", Field: "address_id"}
	ErrInvalidRating        = &Error{Kind: KindValidation, Reason: "invalid_rating", Field: "rating"}
	ErrReviewNotAllowed     = &Error{Kind: KindValidation, Reason: "review_not_allowed", Field: "status"}
	ErrReviewExists         = &Error{Kind: KindValidation, Reason: "review_exists"}

	ErrOrderNotFound  = &Error{Kind: KindNotFound, Reason: "order_not_found"}
	ErrUnknownService = &Error{Kind: KindNotFound, Reason: "unknown_service", Field: "service_id"}
)

// KindOf - вид ошибки жизненного цикла в цепочке err, 0 если её нет
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
