package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itprodirect/surplus-backend/api/controllers"
	"github.com/itprodirect/surplus-backend/api/middleware"
	"github.com/itprodirect/surplus-backend/internal/catalog"
	"github.com/itprodirect/surplus-backend/internal/contact"
	"github.com/itprodirect/surplus-backend/internal/orders"
	"github.com/itprodirect/surplus-backend/pkg/config"
	"github.com/itprodirect/surplus-backend/pkg/db"
	"github.com/itprodirect/surplus-backend/pkg/logger"
	"github.com/itprodirect/surplus-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	contactService contact.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
		}
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	contactPolicy := middleware.NewFormRateLimitPolicy(
		"contact",
		cfg.Forms.RateLimitWindow,
		cfg.Forms.RateLimitIP,
		cfg.Forms.RateLimitEmail,
	)
	ordersPolicy := middleware.NewFormRateLimitPolicy(
		"orders",
		cfg.Forms.RateLimitWindow,
		cfg.Forms.RateLimitIP,
		cfg.Forms.RateLimitEmail,
	)

	if redisClient != nil {
		r.With(middleware.FormRateLimit(contactPolicy, redisClient, logg)).
			Post("/contact", controllers.SubmitContact(contactService, logg))
		r.With(middleware.FormRateLimit(ordersPolicy, redisClient, logg)).
			Post("/orders", controllers.SubmitOrder(orderService, logg))
	} else {
		r.Post("/contact", controllers.SubmitContact(contactService, logg))
		r.Post("/orders", controllers.SubmitOrder(orderService, logg))
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Get("/brands", controllers.ListBrands(catalogService, logg))
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Get("/{sku}", controllers.GetProduct(catalogService, logg))
		r.Post("/{sku}/quote", controllers.QuoteProduct(catalogService, logg))
	})

	return r
}
