package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	GetActiveService = `SELECT id, name, unit_type, price_per_unit, min_quantity, is_active
							FROM SERVICES WHERE id=$1 AND is_active;`

	CountActiveServices = `SELECT COUNT(*) FROM SERVICES WHERE is_active;`
)

type CatalogDatabase struct {
	DB *Database
}

// Создание хранилища
func NewCatalogStorage(db *Database) CatalogStorage {
	return &CatalogDatabase{DB: db}
}

// GetActiveService - активная услуга, для неактивной и отсутствующей ErrServiceNotFound
func (s *CatalogDatabase) GetActiveService(ctx context.Context, id int64) (*models.ServiceData, error) {
	var service models.ServiceData
	err := s.DB.Pool.QueryRow(ctx, GetActiveService, id).Scan(
		&service.ID,
		&service.Name,
		&service.UnitType,
		&service.PricePerUnit,
		&service.MinQuantity,
		&service.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (s *CatalogDatabase) CountActiveServices(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.Pool.QueryRow(ctx, CountActiveServices).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}
