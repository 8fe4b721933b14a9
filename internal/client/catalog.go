package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/denmor86/ya-laundry/internal/models"
)

// CatalogService - удалённый каталог услуг
type CatalogService interface {
	GetService(ctx context.Context, id int64) (*models.ServiceData, error)
}

var (
	ErrServiceUnavailable = errors.New("catalog service unavailable")
	ErrServiceNotFound    = errors.New("service not found in catalog")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}
