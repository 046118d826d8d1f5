package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tribe-africa-store/app/controller"
)

type Controllers struct {
	Cart    *controller.CartController
	Catalog *controller.CatalogController
	Order   *controller.OrderController
	Image   *controller.ImageController
	Gallery *controller.GalleryController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs every request once it has been served
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// SetupRoutes builds the HTTP handler. galleryDir is served under /gallery/
// when set.
func SetupRoutes(controllers *Controllers, galleryDir string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	// Recoverer turns strict-mode pricing panics into a 500
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	// Catalog routes
	r.Get("/products", controllers.Catalog.ListProducts)
	r.Get("/products/{id}", controllers.Catalog.GetProduct)
	r.Get("/designs", controllers.Catalog.ListDesigns)
	r.Get("/banners", controllers.Catalog.ListBanners)
	r.Get("/catalog/lookbook", controllers.Catalog.Lookbook)

	// Cart routes
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", controllers.Cart.GetCart)
		r.Delete("/", controllers.Cart.Clear)
		r.Post("/items", controllers.Cart.AddItem)
		r.Patch("/items", controllers.Cart.UpdateQuantity)
		r.Delete("/items", controllers.Cart.RemoveItem)
		r.Post("/checkout", controllers.Order.CheckoutCart)
	})

	// Handoffs that bypass the cart
	r.Post("/orders/product", controllers.Order.OrderProduct)
	r.Post("/orders/design", controllers.Order.OrderDesign)
	r.Post("/consultation", controllers.Order.Consultation)

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Post("/images/compress", controllers.Image.Compress)
		r.Get("/gallery/sync", controllers.Gallery.SyncGallery)
	})

	if galleryDir != "" {
		r.Handle("/gallery/*", http.StripPrefix("/gallery/", http.FileServer(http.Dir(galleryDir))))
	}

	return r
}
