package router

import (
	"github.com/denmor86/ya-laundry/internal/network/handlers"
	"github.com/denmor86/ya-laundry/internal/network/middleware"
	"github.com/denmor86/ya-laundry/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Identity *services.Identity
	Orders   services.OrdersService
	Health   handlers.Pinger
}

func NewRouter(identity *services.Identity, orders services.OrdersService, health handlers.Pinger) *Router {
	return &Router{
		Identity: identity,
		Orders:   orders,
		Health:   health,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LogHandle)

	r.Get("/health-check", handlers.HealthCheckHandler(router.Health))

	r.Route("/api", func(r chi.Router) {
		r.Use(jwtauth.Verifier(ja))
		r.Use(jwtauth.Authenticator(ja))

		r.Get("/dashboard", handlers.DashboardHandler(router.Orders))
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.CreateOrderHandler(router.Orders))
			r.Get("/", handlers.GetOrdersHandler(router.Orders))
			r.Route("/{number}", func(r chi.Router) {
				r.Get("/", handlers.GetOrderHandler(router.Orders))
				r.Patch("/status", handlers.UpdateStatusHandler(router.Orders))
				r.Post("/review", handlers.AddReviewHandler(router.Orders))
			})
		})
	})
	return r
}
