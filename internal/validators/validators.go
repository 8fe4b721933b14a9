package validators

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var orderNumberRe = regexp.MustCompile(`^LND-(\d{8})-(\d{4})$`)

// CheckOrderNumber проверяет формат номера заказа LND-YYYYMMDD-NNNN
func CheckOrderNumber(number string) bool {
	number = strings.TrimSpace(number)
	match := orderNumberRe.FindStringSubmatch(number)
	if match == nil {
		return false
	}
	// дата должна быть настоящей
	if _, err := time.Parse("20060102", match[1]); err != nil {
		return false
	}
	// суффикс генерируется в диапазоне 0001..9999
	return match[2] != "0000"
}

// CheckUserID проверяет, что идентификатор пользователя - UUID
func CheckUserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Количество хранится как NUMERIC(8,2)
const QuantityPlaces = 2

var MaxQuantity = decimal.RequireFromString("999999.99")

// CheckQuantity количество неотрицательное, не более двух знаков после запятой и помещается в хранилище
func CheckQuantity(quantity decimal.Decimal) bool {
	if quantity.IsNegative() || quantity.GreaterThan(MaxQuantity) {
		return false
	}
	return quantity.Round(QuantityPlaces).Equal(quantity)
}
