package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const orderColumns = `number, customer_id, pickup_address_id, delivery_address_id, status, payment_status, payment_method,
	pickup_scheduled_at, delivery_scheduled_at, pickup_completed_at, delivery_completed_at,
	estimated_total, final_total, delivery_fee, customer_notes, assigned_courier_id, created_at, updated_at`

// filterCondition - общее условие выборки и подсчёта заказов, NULL-параметр отключает фильтр
const filterCondition = `WHERE ($1::uuid IS NULL OR customer_id = $1)
	AND ($2::uuid IS NULL OR assigned_courier_id = $2)
	AND (COALESCE(cardinality($3::text[]), 0) = 0 OR status = ANY($3))
	AND ($4::timestamptz IS NULL OR delivery_completed_at >= $4)
	AND ($5::timestamptz IS NULL OR created_at >= $5)`

const (
	GetOrder = `SELECT ` + orderColumns + ` FROM ORDERS WHERE number=$1;`

	GetOrderForUpdate = `SELECT ` + orderColumns + ` FROM ORDERS WHERE number=$1 FOR UPDATE;`

	GetOrderItems = `SELECT id, order_number, service_id, estimated_quantity, actual_quantity, price_per_unit, estimated_subtotal, actual_subtotal
						FROM ORDER_ITEMS WHERE order_number=$1 ORDER BY id;`

	GetOrderHistory = `SELECT id, order_number, status, notes, updated_by, created_at
						FROM ORDER_STATUS_HISTORIES WHERE order_number=$1 ORDER BY id;`

	GetOrders = `SELECT ` + orderColumns + ` FROM ORDERS ` + filterCondition + `
					ORDER BY CASE WHEN $6::boolean THEN pickup_scheduled_at END, created_at DESC, number
					LIMIT NULLIF($7, 0) OFFSET $8;`

	CountOrders = `SELECT COUNT(*) FROM ORDERS ` + filterCondition + `;`

	GetRevenue = `SELECT COALESCE(SUM(final_total), 0) FROM ORDERS WHERE payment_status = 'paid';`

	InsertOrder = `INSERT INTO ORDERS (number, customer_id, pickup_address_id, delivery_address_id, status, payment_status, payment_method,
						pickup_scheduled_at, delivery_scheduled_at, estimated_total, final_total, delivery_fee, customer_notes, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
					ON CONFLICT (number) DO NOTHING
					RETURNING number;`

	InsertOrderItem = `INSERT INTO ORDER_ITEMS (order_number, service_id, estimated_quantity, price_per_unit, estimated_subtotal)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING id;`

	InsertHistory = `INSERT INTO ORDER_STATUS_HISTORIES (order_number, status, notes, updated_by, created_at)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING id;`

	UpdateOrderStatus = `UPDATE ORDERS
						SET
						    status = $1,
						    assigned_courier_id = COALESCE($2, assigned_courier_id),
						    pickup_completed_at = COALESCE($3, pickup_completed_at),
						    delivery_completed_at = COALESCE($4, delivery_completed_at),
						    final_total = COALESCE($5, final_total),
						    updated_at = $6
						WHERE number = $7;`

	UpdateOrderItem = `UPDATE ORDER_ITEMS
						SET actual_quantity = $1, actual_subtotal = $2
						WHERE id = $3 AND order_number = $4;`

	InsertReview = `INSERT INTO REVIEWS (order_number, customer_id, rating, comment, created_at)
					VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT (order_number) DO NOTHING
					RETURNING id;`

	GetReviews = `SELECT id, order_number, customer_id, rating, comment, created_at
					FROM REVIEWS ORDER BY created_at DESC, id DESC LIMIT $1;`
)

// querier - общее у пула и транзакции
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type OrderDatabase struct {
	DB *Database
}

// Создание хранилища
func NewOrdersStorage(db *Database) OrdersStorage {
	return &OrderDatabase{DB: db}
}

func scanOrder(row pgx.Row) (*models.OrderData, error) {
	var order models.OrderData
	err := row.Scan(
		&order.Number,
		&order.CustomerID,
		&order.PickupAddressID,
		&order.DeliveryAddressID,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentMethod,
		&order.PickupScheduledAt,
		&order.DeliveryScheduledAt,
		&order.PickupCompletedAt,
		&order.DeliveryCompletedAt,
		&order.EstimatedTotal,
		&order.FinalTotal,
		&order.DeliveryFee,
		&order.CustomerNotes,
		&order.AssignedCourierID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// loadOrder - заказ с позициями и журналом
func loadOrder(ctx context.Context, q querier, query string, number string) (*models.OrderData, error) {
	order, err := scanOrder(q.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := q.Query(ctx, GetOrderItems, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OrderItemData, error) {
		var item models.OrderItemData
		err := row.Scan(
			&item.ID,
			&item.OrderNumber,
			&item.ServiceID,
			&item.EstimatedQuantity,
			&item.ActualQuantity,
			&item.PricePerUnit,
			&item.EstimatedSubtotal,
			&item.ActualSubtotal,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed scan order items: %w", err)
	}

	rows, err = q.Query(ctx, GetOrderHistory, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	order.History, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatusHistoryData, error) {
		var h models.StatusHistoryData
		err := row.Scan(&h.ID, &h.OrderNumber, &h.Status, &h.Notes, &h.UpdatedBy, &h.CreatedAt)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed scan order history: %w", err)
	}
	return order, nil
}

func (s *OrderDatabase) GetOrder(ctx context.Context, number string) (*models.OrderData, error) {
	return loadOrder(ctx, s.DB.Pool, GetOrder, number)
}

func filterArgs(filter models.OrderFilter) []any {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}
	return []any{filter.CustomerID, filter.CourierID, statuses, filter.DeliveredSince, filter.CreatedSince}
}

// GetOrders - заказы без позиций и журнала, новые первыми или по времени забора
func (s *OrderDatabase) GetOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderData, error) {
	args := append(filterArgs(filter), filter.OrderByPickup, filter.Limit, filter.Offset)
	rows, err := s.DB.Pool.Query(ctx, GetOrders, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderData
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return orders, fmt.Errorf("failed scan order data: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *OrderDatabase) CountOrders(ctx context.Context, filter models.OrderFilter) (int64, error) {
	var count int64
	if err := s.DB.Pool.QueryRow(ctx, CountOrders, filterArgs(filter)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// GetPaidRevenue - сумма итогов оплаченных заказов
func (s *OrderDatabase) GetPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	if err := s.DB.Pool.QueryRow(ctx, GetRevenue).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get revenue: %w", err)
	}
	return revenue, nil
}

// AddOrder - заказ, позиции и первая запись журнала в одной транзакции.
// При совпадении номера возвращает ErrAlreadyExists.
func (s *OrderDatabase) AddOrder(ctx context.Context, order *models.OrderData) error {
	return s.DB.InTx(ctx, "AddOrder", func(tx pgx.Tx) error {
		var number string
		err := tx.QueryRow(ctx, InsertOrder,
			order.Number,
			order.CustomerID,
			order.PickupAddressID,
			order.DeliveryAddressID,
			order.Status,
			order.PaymentStatus,
			order.PaymentMethod,
			order.PickupScheduledAt,
			order.DeliveryScheduledAt,
			order.EstimatedTotal,
			order.FinalTotal,
			order.DeliveryFee,
			order.CustomerNotes,
			order.CreatedAt,
			order.UpdatedAt,
		).Scan(&number)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("failed to add order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			err = tx.QueryRow(ctx, InsertOrderItem,
				order.Number,
				item.ServiceID,
				item.EstimatedQuantity,
				item.PricePerUnit,
				item.EstimatedSubtotal,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to add order item: %w", err)
			}
			item.OrderNumber = order.Number
		}

		for i := range order.History {
			if err = insertHistory(ctx, tx, &order.History[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertHistory(ctx context.Context, tx pgx.Tx, h *models.StatusHistoryData) error {
	err := tx.QueryRow(ctx, InsertHistory, h.OrderNumber, h.Status, h.Notes, h.UpdatedBy, h.CreatedAt).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("failed to add status history: %w", err)
	}
	return nil
}

// ApplyTransition - блокирует заказ, рассчитывает изменения через plan и записывает их
// вместе с записью журнала. Ошибка plan откатывает транзакцию и возвращается как есть.
func (s *OrderDatabase) ApplyTransition(ctx context.Context, number string, plan TransitionFunc) (*models.OrderData, error) {
	var result *models.OrderData
	err := s.DB.InTx(ctx, "ApplyTransition", func(tx pgx.Tx) error {
		order, err := loadOrder(ctx, tx, GetOrderForUpdate, number)
		if err != nil {
			return err
		}
		mutation, err := plan(order)
		if err != nil {
			return err
		}

		var finalTotal decimal.NullDecimal
		if mutation.FinalTotal != nil {
			finalTotal = decimal.NewNullDecimal(*mutation.FinalTotal)
		}
		_, err = tx.Exec(ctx, UpdateOrderStatus,
			mutation.Status,
			mutation.AssignedCourierID,
			mutation.PickupCompletedAt,
			mutation.DeliveryCompletedAt,
			finalTotal,
			mutation.History.CreatedAt,
			number,
		)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		for _, c := range mutation.Items {
			if _, err = tx.Exec(ctx, UpdateOrderItem, c.ActualQuantity, c.ActualSubtotal, c.OrderItemID, number); err != nil {
				return fmt.Errorf("failed to update order item: %w", err)
			}
		}

		if err = insertHistory(ctx, tx, &mutation.History); err != nil {
			return err
		}
		order.Apply(mutation)
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddReview - отзыв по заказу, второй отзыв возвращает ErrAlreadyExists
func (s *OrderDatabase) AddReview(ctx context.Context, review models.ReviewData) error {
	var id int64
	err := s.DB.Pool.QueryRow(ctx, InsertReview, review.OrderNumber, review.CustomerID, review.Rating, review.Comment, review.CreatedAt).Scan(&id)
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return fmt.Errorf("failed to add review: %w", err)
}

// GetReviews - последние отзывы
func (s *OrderDatabase) GetReviews(ctx context.Context, limit int) ([]models.ReviewData, error) {
	rows, err := s.DB.Pool.Query(ctx, GetReviews, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ReviewData, error) {
		var review models.ReviewData
		err := row.Scan(&review.ID, &review.OrderNumber, &review.CustomerID, &review.Rating, &review.Comment, &review.CreatedAt)
		return review, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed scan reviews: %w", err)
	}
	return reviews, nil
}
