package lifecycle

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderNumberPrefix - префикс номера заказа
const OrderNumberPrefix = "LND"

// GenerateOrderNumber - номер вида LND-20240115-0042: дата и случайный суффикс 0001..9999.
// Уникальность обеспечивает хранилище, при конфликте номер генерируется заново.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", OrderNumberPrefix, now.Format("20060102"), rand.Intn(9999)+1)
}
