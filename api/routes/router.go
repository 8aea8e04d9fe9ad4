package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/denizaltun/quickpos-backend/api/controllers"
	"github.com/denizaltun/quickpos-backend/api/middleware"
	"github.com/denizaltun/quickpos-backend/internal/cart"
	"github.com/denizaltun/quickpos-backend/internal/catalog"
	checkoutsvc "github.com/denizaltun/quickpos-backend/internal/checkout"
	"github.com/denizaltun/quickpos-backend/internal/reports"
	"github.com/denizaltun/quickpos-backend/pkg/config"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	catalogRepo catalog.Repository,
	catalogService catalog.Service,
	till *cart.Cart,
	checkoutService checkoutsvc.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(catalogService, logg))
			r.Post("/", controllers.CatalogCreate(catalogService, logg))
			r.Post("/import", controllers.CatalogImport(catalogService, cfg.Import.MaxUploadMB, logg))
			r.Get("/{barcode}", controllers.CatalogGet(catalogService, logg))
			r.Patch("/{barcode}", controllers.CatalogUpdate(catalogService, logg))
			r.Delete("/{barcode}", controllers.CatalogDelete(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(till, logg))
			r.Delete("/", controllers.CartClear(till, logg))
			r.Post("/items", controllers.CartAdd(till, catalogRepo, logg))
			r.Post("/items/{barcode}/increment", controllers.CartIncrement(till, catalogRepo, logg))
			r.Post("/items/{barcode}/decrement", controllers.CartDecrement(till, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales", controllers.SalesReport(reportsService, logg))
		})
	})

	return r
}
