package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	GetUser = `SELECT id, name, role, is_active FROM USERS WHERE id=$1;`

	CheckAddressOwner = `SELECT EXISTS(SELECT 1 FROM CUSTOMER_ADDRESSES WHERE id=$1 AND user_id=$2);`

	CountActiveUsers = `SELECT COUNT(*) FROM USERS WHERE role=$1 AND is_active;`

	GetActiveUsers = `SELECT id, name, role, is_active FROM USERS WHERE role=$1 AND is_active ORDER BY name, id;`
)

type UserDatabase struct {
	DB *Database
}

// Создание хранилища
func NewUsersStorage(db *Database) UsersStorage {
	return &UserDatabase{DB: db}
}

func (s *UserDatabase) GetUser(ctx context.Context, id string) (*models.UserData, error) {
	var user models.UserData
	err := s.DB.Pool.QueryRow(ctx, GetUser, id).Scan(&user.UserID, &user.Name, &user.Role, &user.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// CheckAddressOwner - принадлежит ли адрес пользователю
func (s *UserDatabase) CheckAddressOwner(ctx context.Context, userID string, addressID int64) (bool, error) {
	var exist bool
	if err := s.DB.Pool.QueryRow(ctx, CheckAddressOwner, addressID, userID).Scan(&exist); err != nil {
		return false, fmt.Errorf("failed to check address: %w", err)
	}
	return exist, nil
}

// CountActiveUsers - число активных пользователей роли
func (s *UserDatabase) CountActiveUsers(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	if err := s.DB.Pool.QueryRow(ctx, CountActiveUsers, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetActiveUsers - активные пользователи роли, по имени
func (s *UserDatabase) GetActiveUsers(ctx context.Context, role models.Role) ([]models.UserData, error) {
	rows, err := s.DB.Pool.Query(ctx, GetActiveUsers, role)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.UserData, error) {
		var user models.UserData
		err := row.Scan(&user.UserID, &user.Name, &user.Role, &user.IsActive)
		return user, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed scan users: %w", err)
	}
	return users, nil
}
