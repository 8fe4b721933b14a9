package services

//go:generate mockgen -destination=mocks/mock_orders.go -package=mocks github.com/denmor86/ya-laundry/internal/services OrdersService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denmor86/ya-laundry/internal/config"
	"github.com/denmor86/ya-laundry/internal/lifecycle"
	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/storage"
	"github.com/denmor86/ya-laundry/internal/validators"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

// PageSize - заказов на странице списка
const PageSize = 10

type OrdersService interface {
	CreateOrder(ctx context.Context, actor models.Actor, draft models.OrderDraft) (*models.OrderData, error)
	UpdateStatus(ctx context.Context, actor models.Actor, number string, req models.TransitionRequest) (*models.OrderData, error)
	GetOrder(ctx context.Context, actor models.Actor, number string) (*models.OrderData, error)
	GetOrders(ctx context.Context, actor models.Actor, statuses []models.OrderStatus, page int) ([]models.OrderData, error)
	AddReview(ctx context.Context, actor models.Actor, number string, rating int, comment *string) (*models.ReviewData, error)
	GetDashboard(ctx context.Context, actor models.Actor) (*models.Dashboard, error)
}

type Orders struct {
	Orders   storage.OrdersStorage
	Catalog  storage.CatalogStorage
	Services storage.ServicesStorage
	Users    storage.UsersStorage
	Settings storage.SettingsStorage
	Config   config.OrdersConfig

	Now       func() time.Time
	NewNumber func(now time.Time) string
}

// Создание сервиса. catalog == nil - услуги читаются из хранилища.
func NewOrders(st storage.Storage, catalog storage.CatalogStorage, cfg config.OrdersConfig) *Orders {
	if catalog == nil {
		catalog = st.Catalog
	}
	return &Orders{
		Orders:    st.Orders,
		Catalog:   catalog,
		Services:  st.Services,
		Users:     st.Users,
		Settings:  st.Settings,
		Config:    cfg,
		Now:       func() time.Time { return time.Now().UTC() },
		NewNumber: lifecycle.GenerateOrderNumber,
	}
}

// CreateOrder - оформляет заказ клиента: проверяет адреса и услуги, фиксирует цены,
// сохраняет заказ вместе с первой записью журнала. Номер генерируется заново при совпадении.
func (s *Orders) CreateOrder(ctx context.Context, actor models.Actor, draft models.OrderDraft) (*models.OrderData, error) {
	if actor.Role != models.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers place orders", lifecycle.ErrUnauthorizedRole)
	}
	now := s.Now()
	if err := lifecycle.ValidateDraft(draft, now); err != nil {
		return nil, err
	}

	for _, addressID := range []int64{draft.PickupAddressID, draft.DeliveryAddressID} {
		owned, err := s.Users.CheckAddressOwner(ctx, actor.ID, addressID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, fmt.Errorf("%w: %d", lifecycle.ErrUnknownAddress, addressID)
		}
	}

	services, err := s.lookupServices(ctx, draft.Items)
	if err != nil {
		return nil, err
	}
	fee, err := s.deliveryFee(ctx)
	if err != nil {
		return nil, err
	}
	policy := lifecycle.OrderPolicy{DeliveryFee: fee, EnforceServiceMinimum: s.Config.EnforceServiceMinimum}

	attempts := s.Config.NumberAttempts
	if attempts < 1 {
		attempts = 1
	}
	var order *models.OrderData
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		order, err = lifecycle.BuildOrder(s.NewNumber(now), actor, draft, services, policy, now)
		if err != nil {
			return err
		}
		err = s.Orders.AddOrder(ctx, order)
		if errors.Is(err, storage.ErrAlreadyExists) {
			logger.Warnw("order number collision", "number", order.Number)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("failed to allocate order number after %d attempts: %w", attempts, err)
		}
		return nil, err
	}

	logger.Infow("order created", "number", order.Number, "customer", actor.ID, "estimated_total", order.EstimatedTotal.String())
	return order, nil
}

// lookupServices - активные услуги позиций заказа
func (s *Orders) lookupServices(ctx context.Context, items []models.OrderItemDraft) (map[int64]models.ServiceData, error) {
	services := make(map[int64]models.ServiceData, len(items))
	for _, item := range items {
		if _, ok := services[item.ServiceID]; ok {
			continue
		}
		service, err := s.Catalog.GetActiveService(ctx, item.ServiceID)
		if err != nil {
			if errors.Is(err, storage.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: %d", lifecycle.ErrUnknownService, item.ServiceID)
			}
			return nil, err
		}
		services[item.ServiceID] = *service
	}
	return services, nil
}

// deliveryFee - стоимость доставки из настроек, при отсутствии - из конфигурации
func (s *Orders) deliveryFee(ctx context.Context) (decimal.Decimal, error) {
	setting, err := s.Settings.GetSetting(ctx, models.SettingDeliveryFee)
	if err != nil {
		if errors.Is(err, storage.ErrSettingNotFound) {
			return s.Config.DeliveryFee, nil
		}
		return s.Config.DeliveryFee, err
	}
	fee, err := setting.Decimal()
	if err != nil || fee.IsNegative() {
		logger.Warnw("invalid delivery fee setting, using configured value", "value", setting.Value, "error", err)
		return s.Config.DeliveryFee, nil
	}
	return fee, nil
}

// UpdateStatus - переводит заказ в новый статус от имени пользователя.
// Проверки и запись выполняются над заблокированным заказом в одной транзакции.
func (s *Orders) UpdateStatus(ctx context.Context, actor models.Actor, number string, req models.TransitionRequest) (*models.OrderData, error) {
	now := s.Now()
	order, err := s.Orders.ApplyTransition(ctx, number, func(order *models.OrderData) (*models.OrderMutation, error) {
		mutation, err := lifecycle.PlanTransition(order, actor, req, now)
		if err != nil {
			return nil, err
		}
		// назначаемый курьер проверяется после роли и допустимости перехода
		if mutation.AssignedCourierID != nil {
			if err := s.checkCourier(ctx, *mutation.AssignedCourierID); err != nil {
				return nil, err
			}
		}
		return mutation, nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: %s", lifecycle.ErrOrderNotFound, number)
		}
		if kind := lifecycle.KindOf(err); kind != 0 {
			logger.Infow("order transition rejected", "number", number, "actor", actor.ID, "role", actor.Role, "status", req.Status, "error", err)
		}
		return nil, err
	}

	logger.Infow("order status changed", "number", number, "actor", actor.ID, "status", order.Status)
	return order, nil
}

// checkCourier - назначаемый пользователь должен быть активным курьером
func (s *Orders) checkCourier(ctx context.Context, courierID string) error {
	if !validators.CheckUserID(courierID) {
		return fmt.Errorf("%w: %q is not a user id", lifecycle.ErrInvalidCourier, courierID)
	}
	user, err := s.Users.GetUser(ctx, courierID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%w: user %s not found", lifecycle.ErrInvalidCourier, courierID)
		}
		return err
	}
	if user.Role != models.RoleCourier || !user.IsActive {
		return fmt.Errorf("%w: user %s is not an active courier", lifecycle.ErrInvalidCourier, courierID)
	}
	return nil
}

// GetOrder - заказ с позициями и журналом, если пользователь может его видеть
func (s *Orders) GetOrder(ctx context.Context, actor models.Actor, number string) (*models.OrderData, error) {
	order, err := s.Orders.GetOrder(ctx, number)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: %s", lifecycle.ErrOrderNotFound, number)
		}
		return nil, err
	}
	if !lifecycle.CanView(actor, order) {
		return nil, fmt.Errorf("%w: order %s", lifecycle.ErrOrderAccessDenied, number)
	}
	return order, nil
}

// visibleOrders - фильтр заказов, доступных пользователю
func visibleOrders(actor models.Actor) (models.OrderFilter, error) {
	var filter models.OrderFilter
	switch actor.Role {
	case models.RoleAdmin, models.RoleStaff:
	case models.RoleCourier:
		filter.CourierID = &actor.ID
	case models.RoleCustomer:
		filter.CustomerID = &actor.ID
	default:
		return filter, fmt.Errorf("%w: %q", lifecycle.ErrUnauthorizedRole, actor.Role)
	}
	return filter, nil
}

// GetOrders - страница заказов пользователя, новые первыми
func (s *Orders) GetOrders(ctx context.Context, actor models.Actor, statuses []models.OrderStatus, page int) ([]models.OrderData, error) {
	filter, err := visibleOrders(actor)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	filter.Statuses = statuses
	filter.Limit = PageSize
	filter.Offset = (page - 1) * PageSize
	return s.Orders.GetOrders(ctx, filter)
}

// AddReview - отзыв владельца по доставленному заказу, не более одного
func (s *Orders) AddReview(ctx context.Context, actor models.Actor, number string, rating int, comment *string) (*models.ReviewData, error) {
	order, err := s.GetOrder(ctx, actor, number)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckReview(actor, order, rating); err != nil {
		return nil, err
	}

	review := models.ReviewData{
		OrderNumber: number,
		CustomerID:  actor.ID,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   s.Now(),
	}
	if err := s.Orders.AddReview(ctx, review); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: order %s", lifecycle.ErrReviewExists, number)
		}
		return nil, err
	}
	return &review, nil
}

// activeStatuses - заказы клиента, которые ещё не завершены
var activeStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusConfirmed,
	models.OrderStatusPickupAssigned,
	models.OrderStatusPickedUp,
	models.OrderStatusInProcess,
	models.OrderStatusReady,
	models.OrderStatusOutForDelivery,
}

// Размеры списков панели
const (
	recentOrdersLimit   = 10
	recentReviewsLimit  = 5
	todayOrdersLimit    = 20
	customerRecentLimit = 5
)

// assignedStatuses - заказы, которые курьер везёт или должен забрать
var assignedStatuses = []models.OrderStatus{
	models.OrderStatusPickupAssigned,
	models.OrderStatusPickedUp,
	models.OrderStatusOutForDelivery,
}

// count - число заказов по фильтру и статусам
func (s *Orders) count(ctx context.Context, filter models.OrderFilter, statuses ...models.OrderStatus) (*int64, error) {
	filter.Statuses = statuses
	n, err := s.Orders.CountOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Orders) countUsers(ctx context.Context, role models.Role) (*int64, error) {
	n, err := s.Users.CountActiveUsers(ctx, role)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// startOfDay - полночь текущих суток сервиса
func (s *Orders) startOfDay() time.Time {
	now := s.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight
}

// GetDashboard - счётчики и списки панели, набор зависит от роли
func (s *Orders) GetDashboard(ctx context.Context, actor models.Actor) (*models.Dashboard, error) {
	base, err := visibleOrders(actor)
	if err != nil {
		return nil, err
	}
	dashboard := &models.Dashboard{Role: actor.Role}
	switch actor.Role {
	case models.RoleAdmin:
		err = s.adminDashboard(ctx, dashboard)
	case models.RoleStaff:
		err = s.staffDashboard(ctx, dashboard)
	case models.RoleCourier:
		err = s.courierDashboard(ctx, base, dashboard)
	case models.RoleCustomer:
		err = s.customerDashboard(ctx, base, dashboard)
	}
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (s *Orders) adminDashboard(ctx context.Context, d *models.Dashboard) error {
	var err error
	stats := &d.Stats
	if stats.TotalOrders, err = s.count(ctx, models.OrderFilter{}); err != nil {
		return err
	}
	if stats.PendingOrders, err = s.count(ctx, models.OrderFilter{}, models.OrderStatusPending); err != nil {
		return err
	}
	if stats.ActiveCustomers, err = s.countUsers(ctx, models.RoleCustomer); err != nil {
		return err
	}
	revenue, err := s.Orders.GetPaidRevenue(ctx)
	if err != nil {
		return err
	}
	stats.TotalRevenue = &revenue
	services, err := s.Services.CountActiveServices(ctx)
	if err != nil {
		return err
	}
	stats.ActiveServices = &services
	if stats.StaffCount, err = s.countUsers(ctx, models.RoleStaff); err != nil {
		return err
	}
	if stats.CourierCount, err = s.countUsers(ctx, models.RoleCourier); err != nil {
		return err
	}

	if d.RecentOrders, err = s.Orders.GetOrders(ctx, models.OrderFilter{Limit: recentOrdersLimit}); err != nil {
		return err
	}
	d.RecentReviews, err = s.Orders.GetReviews(ctx, recentReviewsLimit)
	return err
}

func (s *Orders) staffDashboard(ctx context.Context, d *models.Dashboard) error {
	var err error
	stats := &d.Stats
	all := models.OrderFilter{}
	if stats.PendingOrders, err = s.count(ctx, all, models.OrderStatusPending); err != nil {
		return err
	}
	if stats.ConfirmedOrders, err = s.count(ctx, all, models.OrderStatusConfirmed); err != nil {
		return err
	}
	if stats.InProcessOrders, err = s.count(ctx, all, models.OrderStatusInProcess); err != nil {
		return err
	}
	if stats.ReadyOrders, err = s.count(ctx, all, models.OrderStatusReady); err != nil {
		return err
	}

	midnight := s.startOfDay()
	if d.TodayOrders, err = s.Orders.GetOrders(ctx, models.OrderFilter{CreatedSince: &midnight, Limit: todayOrdersLimit}); err != nil {
		return err
	}
	d.AvailableCouriers, err = s.Users.GetActiveUsers(ctx, models.RoleCourier)
	return err
}

func (s *Orders) courierDashboard(ctx context.Context, base models.OrderFilter, d *models.Dashboard) error {
	var err error
	stats := &d.Stats
	if stats.PendingPickup, err = s.count(ctx, base, models.OrderStatusPickupAssigned); err != nil {
		return err
	}
	if stats.PendingDelivery, err = s.count(ctx, base, models.OrderStatusOutForDelivery); err != nil {
		return err
	}
	today := base
	midnight := s.startOfDay()
	today.DeliveredSince = &midnight
	if stats.CompletedToday, err = s.count(ctx, today, models.OrderStatusDelivered); err != nil {
		return err
	}

	assigned := base
	assigned.Statuses = assignedStatuses
	assigned.OrderByPickup = true
	d.AssignedOrders, err = s.Orders.GetOrders(ctx, assigned)
	return err
}

func (s *Orders) customerDashboard(ctx context.Context, base models.OrderFilter, d *models.Dashboard) error {
	var err error
	stats := &d.Stats
	if stats.TotalOrders, err = s.count(ctx, base); err != nil {
		return err
	}
	if stats.ActiveOrders, err = s.count(ctx, base, activeStatuses...); err != nil {
		return err
	}
	if stats.CompletedOrders, err = s.count(ctx, base, models.OrderStatusDelivered); err != nil {
		return err
	}

	recent := base
	recent.Limit = customerRecentLimit
	if d.RecentOrders, err = s.Orders.GetOrders(ctx, recent); err != nil {
		return err
	}
	active := base
	active.Statuses = activeStatuses
	d.ActiveOrders, err = s.Orders.GetOrders(ctx, active)
	return err
}
