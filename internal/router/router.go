package router

import (
	"net/http"

	"nutellove/internal/config"
	"nutellove/internal/handler"
	"nutellove/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Product  *handler.ProductHandler
	Catalog  *handler.CatalogHandler
	User     *handler.UserHandler
	Favorite *handler.FavoriteHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	tokens middleware.TokenParser,
	limits config.RateLimitConfig,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Collection and item routes share a prefix, with and without trailing slash
	handleCollection(mux, "/api/products", h.Product.GetAll, h.Product.GetByID)
	handleCollection(mux, "/api/categories", h.Catalog.Categories, h.Catalog.Category)
	handleCollection(mux, "/api/brands", h.Catalog.Brands, h.Catalog.Brand)

	mux.HandleFunc("/api/search", h.Product.Search)

	// Sign-in routes are throttled per client
	limited := middleware.RateLimit(limits.RequestsPerSecond, limits.Burst, limits.TrustedProxies, logger)
	mux.Handle("/api/users/register", limited(http.HandlerFunc(h.User.Register)))
	mux.Handle("/api/users/login", limited(http.HandlerFunc(h.User.Login)))

	mux.Handle("/api/users/account", middleware.RequireUser(http.HandlerFunc(h.User.Account)))
	mux.Handle("/api/users/password", middleware.RequireUser(http.HandlerFunc(h.User.ChangePassword)))

	favorites := middleware.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/favorites" || r.URL.Path == "/api/favorites/" {
			h.Favorite.List(w, r)
			return
		}
		h.Favorite.Toggle(w, r)
	}))
	mux.Handle("/api/favorites", favorites)
	mux.Handle("/api/favorites/", favorites)

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> Authenticate
	var handler http.Handler = mux
	handler = middleware.Authenticate(tokens, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// handleCollection routes prefix to list and prefix/{id} to item.
func handleCollection(mux *http.ServeMux, prefix string, list, item http.HandlerFunc) {
	route := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != prefix && r.URL.Path != prefix+"/" {
			item(w, r)
			return
		}
		list(w, r)
	}

	mux.HandleFunc(prefix, route)
	mux.HandleFunc(prefix+"/", route)
}
