package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ServiceData - услуга каталога
type ServiceData struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	UnitType     string          `json:"unit_type"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
	IsActive     bool            `json:"is_active"`
}

// Ключи настроек
const (
	SettingDeliveryFee = "delivery_fee"
)

// Типы значений настроек
const (
	SettingTypeString  = "string"
	SettingTypeInteger = "integer"
	SettingTypeDecimal = "decimal"
	SettingTypeBoolean = "boolean"
	SettingTypeJSON    = "json"
)

// SettingData - запись таблицы настроек
type SettingData struct {
	Key   string
	Value *string
	Type  string
}

// Decimal - значение настройки типа decimal или integer
func (s SettingData) Decimal() (decimal.Decimal, error) {
	if s.Value == nil {
		return decimal.Zero, fmt.Errorf("setting %s has no value", s.Key)
	}
	if s.Type != SettingTypeDecimal && s.Type != SettingTypeInteger {
		return decimal.Zero, fmt.Errorf("setting %s has type %s", s.Key, s.Type)
	}
	return decimal.NewFromString(*s.Value)
}
