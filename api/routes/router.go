package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/wishlist-backend/api/controllers"
	"github.com/angelmondragon/wishlist-backend/api/middleware"
	"github.com/angelmondragon/wishlist-backend/api/responses"
	"github.com/angelmondragon/wishlist-backend/internal/gifts"
	"github.com/angelmondragon/wishlist-backend/pkg/config"
	"github.com/angelmondragon/wishlist-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/wishlist-backend/pkg/errors"
	"github.com/angelmondragon/wishlist-backend/pkg/logger"
	"github.com/angelmondragon/wishlist-backend/pkg/metrics"
	"github.com/angelmondragon/wishlist-backend/pkg/redis"
)

// NewRouter wires the HTTP surface. redisClient may be nil, which disables
// idempotent replay. reg receives the HTTP metrics and backs /metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	giftService gifts.Service,
	reg *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(reg)

	// a nil *redis.Client must not reach the middleware as a non-nil interface
	var idemStore redis.IdempotencyStore
	var redisPinger controllers.Pinger
	if redisClient != nil {
		idemStore = redisClient
		redisPinger = redisClient
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    dbP,
			"redis": redisPinger,
		}))
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	prefix := cfg.App.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	idemRules := middleware.IdempotencyRules(prefix, cfg.Redis.IdempotencyTTL)

	r.Route(prefix, func(r chi.Router) {
		r.Get("/gifts", controllers.ListGifts(giftService, logg))
		r.With(
			middleware.BodyLimit(cfg.Gifts.MaxBodyBytes()),
			middleware.Idempotency(idemStore, idemRules, logg),
		).Post("/gifts", controllers.CreateGift(giftService, logg))
		r.Put("/gifts/{id}/done", controllers.ToggleGiftDone(giftService, logg))
		r.Delete("/gifts/{id}", controllers.DeleteGift(giftService, logg))

		r.Get("/together", controllers.Together(cfg.Together, nil, logg))
	})

	return r
}
