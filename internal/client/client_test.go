package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetService(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/services/1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"Wash & Fold","unit_type":"kg","price_per_unit":"8000","min_quantity":"1","is_active":true}`))
	})
	mux.HandleFunc("/api/services/2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	mux.HandleFunc("/api/services/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewClient(server.URL+"/", server.Client())

	service, err := c.GetService(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Wash & Fold", service.Name)
	assert.True(t, service.PricePerUnit.Equal(decimal.NewFromInt(8000)))
	assert.True(t, service.IsActive)

	_, err = c.GetService(context.Background(), 2)
	var rateErr *RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, 30*time.Second, rateErr.RetryAfter)

	_, err = c.GetService(context.Background(), 3)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	_, err = c.GetService(context.Background(), 404)
	assert.ErrorIs(t, err, ErrServiceNotFound)

}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Minute, ParseRetryAfter(http.Header{}))
	assert.Equal(t, 5*time.Second, ParseRetryAfter(http.Header{"Retry-After": []string{"5"}}))
	assert.Equal(t, time.Minute, ParseRetryAfter(http.Header{"Retry-After": []string{"soon"}}))

	at := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	d := ParseRetryAfter(http.Header{"Retry-After": []string{at}})
	assert.InDelta(t, time.Hour.Seconds(), d.Seconds(), 2)
}

func TestRateLimiter_BlockFor(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	assert.False(t, rl.Blocked())
	require.NoError(t, rl.Wait(context.Background()))

	rl.BlockFor(50 * time.Millisecond)
	assert.True(t, rl.Blocked())
	assert.Eventually(t, func() bool { return !rl.Blocked() }, time.Second, 10*time.Millisecond)
}
