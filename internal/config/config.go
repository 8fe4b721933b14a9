package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr            string  `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel              string  `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN           string  `env:"DATABASE_DSN" envDefault:""`
	JWTSecret             string  `env:"JWT_SECRET" envDefault:"secret"`
	CatalogAddr           string  `env:"CATALOG_ADDRESS" envDefault:""`
	CatalogRPS            float64 `env:"CATALOG_RPS" envDefault:"10"`
	DeliveryFee           string  `env:"DELIVERY_FEE" envDefault:"5000"`
	EnforceServiceMinimum bool    `env:"ENFORCE_SERVICE_MINIMUM" envDefault:"true"`
	OrderNumberAttempts   int     `env:"ORDER_NUMBER_ATTEMPTS" envDefault:"5"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr      string
	LogLevel        string
	JWTSecret       string
	DatabaseDSN     string
	ShutdownTimeout time.Duration
}

// CatalogConfig модель настроек удалённого каталога услуг. Пустой адрес - каталог из БД.
type CatalogConfig struct {
	CatalogAddr    string
	RPS            float64
	Burst          int
	RequestTimeout time.Duration
}

// OrdersConfig модель настроек оформления заказов
type OrdersConfig struct {
	// используется, если в таблице настроек нет delivery_fee
	DeliveryFee           decimal.Decimal
	EnforceServiceMinimum bool
	NumberAttempts        int
}

// Config модель настроек сервиса
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Orders  OrdersConfig
}

// NewConfig - настройки из .env, переменных окружения и флагов (флаги приоритетнее)
func NewConfig() Config {
	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("Failed to load .env file: %s", err.Error()))
	}

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server      = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel    = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN         = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		secret      = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		catalog     = pflag.StringP("catalog", "c", args.CatalogAddr, "Remote catalog address, empty to read services from database.")
		catalogRPS  = pflag.Float64("catalog_rps", args.CatalogRPS, "Requests per second to remote catalog, 0 - unlimited.")
		deliveryFee = pflag.StringP("delivery_fee", "f", args.DeliveryFee, "Delivery fee if not set in settings table.")
		minimum     = pflag.Bool("enforce_minimum", args.EnforceServiceMinimum, "Check service minimum quantity on order creation.")
		attempts    = pflag.Int("number_attempts", args.OrderNumberAttempts, "Attempts to generate unique order number.")
	)
	pflag.Parse()

	fee, err := decimal.NewFromString(*deliveryFee)
	if err != nil {
		panic(fmt.Sprintf("Invalid delivery fee %q: %s", *deliveryFee, err.Error()))
	}

	cfg := DefaultConfig()
	cfg.Server.ListenAddr = *server
	cfg.Server.LogLevel = *logLevel
	cfg.Server.DatabaseDSN = *DSN
	cfg.Server.JWTSecret = *secret
	cfg.Catalog.CatalogAddr = *catalog
	cfg.Catalog.RPS = *catalogRPS
	cfg.Orders.DeliveryFee = fee
	cfg.Orders.EnforceServiceMinimum = *minimum
	if *attempts > 0 {
		cfg.Orders.NumberAttempts = *attempts
	}
	return cfg
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:      "localhost:8080",
			LogLevel:        "info",
			DatabaseDSN:     "",
			JWTSecret:       "secret",
			ShutdownTimeout: 5 * time.Second,
		},
		Catalog: CatalogConfig{
			CatalogAddr:    "",
			RPS:            10,
			Burst:          1,
			RequestTimeout: 5 * time.Second,
		},
		Orders: OrdersConfig{
			DeliveryFee:           decimal.NewFromInt(5000),
			EnforceServiceMinimum: true,
			NumberAttempts:        5,
		},
	}
}
