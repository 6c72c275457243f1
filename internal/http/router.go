package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/documents"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/email"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/importcsv"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/pos"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/vat"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(
	opts Options,
	importV1 *importcsv.Handler,
	emailV1 *email.Handler,
	posV1 *pos.Handler,
	vatV1 *vat.Handler,
	documentsV1 *documents.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/import", importV1.Routes)
		r.Route("/email", emailV1.Routes)
		r.Route("/pos", posV1.Routes)
		r.Route("/vat", vatV1.Routes)
		r.Route("/documents", documentsV1.Routes)
	})

	return router
}
