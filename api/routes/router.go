package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/store-service/api/controllers"
	"github.com/angelmondragon/store-service/api/middleware"
	"github.com/angelmondragon/store-service/internal/items"
	"github.com/angelmondragon/store-service/internal/stores"
	"github.com/angelmondragon/store-service/internal/tags"
	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/logger"
	"github.com/angelmondragon/store-service/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	storeService stores.Service,
	itemService items.Service,
	tagService tags.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	requireAuth := middleware.Auth(cfg.JWT, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/stores", controllers.StoreList(storeService, logg))
	r.With(requireAuth).Post("/create_store", controllers.StoreCreate(storeService, logg))
	r.Route("/store/{storeId}", func(r chi.Router) {
		r.Get("/", controllers.StoreGet(storeService, logg))
		r.With(requireAuth).Put("/", controllers.StoreUpsert(storeService, logg))
		r.With(requireAuth).Delete("/", controllers.StoreDelete(storeService, logg))

		r.Get("/tag", controllers.StoreTagList(tagService, logg))
		r.Post("/tag", controllers.StoreTagCreate(tagService, logg))
	})

	r.Get("/items", controllers.ItemList(itemService, logg))
	r.With(requireAuth).Post("/items", controllers.ItemCreate(itemService, logg))
	r.Route("/item/{itemId}", func(r chi.Router) {
		r.Get("/", controllers.ItemGet(itemService, logg))
		r.With(requireAuth).Put("/", controllers.ItemUpsert(itemService, logg))
		r.With(requireAuth).Delete("/", controllers.ItemDelete(itemService, logg))

		r.With(requireAuth).Post("/tag/{tagId}", controllers.ItemTagLink(tagService, logg))
		r.With(requireAuth).Delete("/tag/{tagId}", controllers.ItemTagUnlink(tagService, logg))
	})

	r.Route("/tag/{tagId}", func(r chi.Router) {
		r.Get("/", controllers.TagGet(tagService, logg))
		r.Delete("/", controllers.TagDelete(tagService, logg))
	})

	return r
}
