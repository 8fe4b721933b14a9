package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/jackc/pgx/v5"
)

const GetSetting = `SELECT key, value, type FROM SETTINGS WHERE key=$1;`

type SettingsDatabase struct {
	DB *Database
}

// Создание хранилища
func NewSettingsStorage(db *Database) SettingsStorage {
	return &SettingsDatabase{DB: db}
}

func (s *SettingsDatabase) GetSetting(ctx context.Context, key string) (*models.SettingData, error) {
	var setting models.SettingData
	err := s.DB.Pool.QueryRow(ctx, GetSetting, key).Scan(&setting.Key, &setting.Value, &setting.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &setting, nil
}
