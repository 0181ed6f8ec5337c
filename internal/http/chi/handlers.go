package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/dashboard"
	"github.com/marcelsud/local-library/internal/user"
	"github.com/marcelsud/local-library/renewal"
	"github.com/marcelsud/local-library/session"
)

// Services are the use cases served over HTTP
type Services struct {
	Catalog   catalog.UseCase
	Renewal   renewal.UseCase
	Dashboard dashboard.UseCase
}

type Options struct {
	JWTSecret  string
	SessionTTL time.Duration
	LogLevel   string
	// Metrics is mounted on /metrics when set
	Metrics http.Handler
}

func Handlers(ctx context.Context, svc Services, opts Options) *chi.Mux {
	logger := httplog.NewLogger("local-library", httplog.Options{
		JSON:     true,
		LogLevel: opts.LogLevel,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(session.Middleware(opts.SessionTTL))
		r.Use(authenticate(opts.JWTSecret))

		r.Method(http.MethodGet, "/", getDashboard(svc.Dashboard))
		r.Method(http.MethodGet, "/books", getBooks(svc.Catalog))
		r.Method(http.MethodGet, "/books/{id}", getBook(svc.Catalog))
		r.Method(http.MethodGet, "/authors", getAuthors(svc.Catalog))
		r.Method(http.MethodGet, "/authors/{id}", getAuthor(svc.Catalog))
		r.Method(http.MethodGet, "/mybooks", getMyBooks(svc.Catalog))

		r.Group(func(r chi.Router) {
			r.Use(requireCapability(user.CanManageCirculation))
			r.Method(http.MethodGet, "/instances", getInstances(svc.Catalog))
			r.Method(http.MethodGet, "/borrowed", getBorrowed(svc.Catalog))
			r.Method(http.MethodGet, "/instances/{id}/renew", getRenew(svc.Renewal))
			r.Method(http.MethodPost, "/instances/{id}/renew", postRenew(svc.Renewal))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireCapability(user.CanManageCatalog))
			r.Method(http.MethodPost, "/authors", postAuthor(svc.Catalog))
			r.Method(http.MethodPut, "/authors/{id}", putAuthor(svc.Catalog))
			r.Method(http.MethodDelete, "/authors/{id}", deleteAuthor(svc.Catalog))
			r.Method(http.MethodPost, "/books", postBook(svc.Catalog))
			r.Method(http.MethodPut, "/books/{id}", putBook(svc.Catalog))
			r.Method(http.MethodDelete, "/books/{id}", deleteBook(svc.Catalog))
			r.Method(http.MethodGet, "/genres", getGenres(svc.Catalog))
			r.Method(http.MethodPost, "/genres", postGenre(svc.Catalog))
			r.Method(http.MethodGet, "/languages", getLanguages(svc.Catalog))
			r.Method(http.MethodPost, "/languages", postLanguage(svc.Catalog))
			r.Method(http.MethodPost, "/instances", postInstance(svc.Catalog))
			r.Method(http.MethodPut, "/instances/{id}", putInstance(svc.Catalog))
		})
	})

	return r
}
