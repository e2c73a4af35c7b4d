// Package api exposes the diary facade over HTTP: a chi router with an
// unlock endpoint issuing session tokens and CRUD routes for entries and
// tags. Responses use a JSON error envelope mapping the domain error
// taxonomy onto status codes.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/guncedev/gunce/internal/logging"
	"github.com/guncedev/gunce/internal/server/auth"
	"github.com/guncedev/gunce/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler bundles the facade and the session-token settings behind the
// HTTP routes.
type Handler struct {
	svc           *service.DiaryService
	logger        logging.Logger
	secretKey     string
	tokenValidity time.Duration
	// protected mirrors the gate configuration; when false the API skips
	// token checks entirely.
	protected bool
}

func NewHandler(svc *service.DiaryService, logger logging.Logger,
	secretKey string, tokenValidity time.Duration, protected bool) *Handler {
	return &Handler{
		svc:           svc,
		logger:        logger,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
		protected:     protected,
	}
}

// Router assembles the chi router with the standard middleware chain.
func (h *Handler) Router() chi.Router {
	registerMetrics()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/unlock", h.unlock)

		r.Group(func(r chi.Router) {
			r.Use(h.requireToken)

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", h.listEntries)
				r.Post("/", h.createEntry)
				r.Get("/{id}", h.getEntry)
				r.Get("/{id}/content", h.getEntryContent)
				r.Patch("/{id}", h.updateEntry)
				r.Delete("/{id}", h.deleteEntry)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", h.listTags)
				r.Post("/", h.createTag)
			})
		})
	})

	return r
}

// requireToken validates the Bearer token on every gated route. With
// protection disabled it is a pass-through.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.protected {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing token"})
			return
		}
		if err := auth.VerifyToken(token, []byte(h.secretKey)); err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
