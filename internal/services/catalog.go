package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/denmor86/ya-laundry/internal/client"
	"github.com/denmor86/ya-laundry/internal/config"
	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/storage"
	"github.com/sony/gobreaker"
)

// RemoteCatalog - каталог услуг во внешнем сервисе, за ограничителем запросов и предохранителем
type RemoteCatalog struct {
	Client  client.CatalogService
	Limiter *client.RateLimiter
	Breaker *gobreaker.CircuitBreaker
}

func InitCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		// отсутствующая услуга и 429 - нормальные ответы работающего сервиса
		IsSuccessful: func(err error) bool {
			var rateLimitErr *client.RateLimitError
			return err == nil || errors.Is(err, client.ErrServiceNotFound) || errors.As(err, &rateLimitErr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Infow("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// Создание сервиса
func NewRemoteCatalog(cfg config.CatalogConfig) storage.CatalogStorage {
	return &RemoteCatalog{
		Client:  client.NewClient(cfg.CatalogAddr, &http.Client{Timeout: cfg.RequestTimeout}),
		Limiter: client.NewRateLimiter(cfg.RPS, cfg.Burst),
		Breaker: InitCircuitBreaker("catalog-service"),
	}
}

// GetActiveService - активная услуга каталога, неизвестная или отключённая - storage.ErrServiceNotFound
func (s *RemoteCatalog) GetActiveService(ctx context.Context, id int64) (*models.ServiceData, error) {
	if s.Limiter.Blocked() {
		return nil, fmt.Errorf("%w: rate limited", client.ErrServiceUnavailable)
	}
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.Client.GetService(ctx, id)
	})
	if err != nil {
		var rateLimitErr *client.RateLimitError
		switch {
		case errors.Is(err, client.ErrServiceNotFound):
			return nil, fmt.Errorf("%w: %d", storage.ErrServiceNotFound, id)
		case errors.As(err, &rateLimitErr):
			logger.Warnw("too many requests to catalog service", "retry_after", rateLimitErr.RetryAfter)
			s.Limiter.BlockFor(rateLimitErr.RetryAfter)
			return nil, fmt.Errorf("%w: %w", client.ErrServiceUnavailable, err)
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, fmt.Errorf("%w: %w", client.ErrServiceUnavailable, err)
		}
		return nil, err
	}

	service := result.(*models.ServiceData)
	if !service.IsActive {
		return nil, fmt.Errorf("%w: %d is inactive", storage.ErrServiceNotFound, id)
	}
	return service, nil
}
