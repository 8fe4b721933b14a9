package storage

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks github.com/denmor86/ya-laundry/internal/storage OrdersStorage,CatalogStorage,ServicesStorage,UsersStorage,SettingsStorage

import (
	"context"
	"errors"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/shopspring/decimal"
)

// TransitionFunc - расчёт изменений по заблокированному заказу.
// Вызывается внутри транзакции, ошибка отменяет транзакцию.
type TransitionFunc func(order *models.OrderData) (*models.OrderMutation, error)

type OrdersStorage interface {
	GetOrder(ctx context.Context, number string) (*models.OrderData, error)
	GetOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderData, error)
	CountOrders(ctx context.Context, filter models.OrderFilter) (int64, error)
	GetPaidRevenue(ctx context.Context) (decimal.Decimal, error)
	AddOrder(ctx context.Context, order *models.OrderData) error
	ApplyTransition(ctx context.Context, number string, plan TransitionFunc) (*models.OrderData, error)
	AddReview(ctx context.Context, review models.ReviewData) error
	GetReviews(ctx context.Context, limit int) ([]models.ReviewData, error)
}

type CatalogStorage interface {
	GetActiveService(ctx context.Context, id int64) (*models.ServiceData, error)
}

// ServicesStorage - локальная таблица услуг, независимо от источника каталога
type ServicesStorage interface {
	CountActiveServices(ctx context.Context) (int64, error)
}

type UsersStorage interface {
	GetUser(ctx context.Context, id string) (*models.UserData, error)
	CheckAddressOwner(ctx context.Context, userID string, addressID int64) (bool, error)
	CountActiveUsers(ctx context.Context, role models.Role) (int64, error)
	GetActiveUsers(ctx context.Context, role models.Role) ([]models.UserData, error)
}

type SettingsStorage interface {
	GetSetting(ctx context.Context, key string) (*models.SettingData, error)
}

type Storage struct {
	Orders   OrdersStorage
	Catalog  CatalogStorage
	Services ServicesStorage
	Users    UsersStorage
	Settings SettingsStorage
}

// Создание хранилища
func NewStorage(db *Database) Storage {
	return Storage{
		Orders:   NewOrdersStorage(db),
		Catalog:  NewCatalogStorage(db),
		Services: &CatalogDatabase{DB: db},
		Users:    NewUsersStorage(db),
		Settings: NewSettingsStorage(db),
	}
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrSettingNotFound = errors.New("setting not found")

	ErrAlreadyExists = errors.New("already exists")
)
