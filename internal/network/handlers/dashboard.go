package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/services"
)

// DashboardHandler — счётчики и списки панели пользователя
func DashboardHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		dashboard, err := s.GetDashboard(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models.NewDashboardResponse(dashboard))
	})
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler — проверка доступности сервиса и БД
func HealthCheckHandler(p Pinger) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			logger.Errorw("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
