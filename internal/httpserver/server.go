// internal/httpserver/server.go
//
// HTTP server wiring for the glyphword backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health", "/glyphs".
//   - Stateless scoring: POST /score/preview.
//   - Run endpoints (optional auth): mounted under /run.
//   - Daily run endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//
// Notes:
//   - The glyph catalogue is swapped atomically on hot reload; runs look
//     glyphs up through the server so purchases always see the latest catalogue.
//   - Persistence of run history and stats is best effort; failures are logged.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/glyphword/internal/auth"
	"github.com/robalobadob/glyphword/internal/config"
	"github.com/robalobadob/glyphword/internal/daily"
	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/run"
	"github.com/robalobadob/glyphword/internal/store"
)

// Server bundles router, in-memory run store, and DB handle.
type Server struct {
	r      *chi.Mux
	cfg    config.Config
	store  store.Store
	db     *sql.DB
	users  *auth.Users
	signer *auth.Signer
	daily  *daily.Store
	dict   run.Dictionary

	catalog atomic.Pointer[glyph.Catalog]
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB, dict run.Dictionary, cat *glyph.Catalog) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		store:  st,
		db:     db,
		users:  auth.NewUsers(db),
		signer: auth.NewSigner(cfg.JWTSecret, cfg.JWTTTL),
		daily:  daily.NewStore(db),
		dict:   dict,
		now:    time.Now,
	}
	s.catalog.Store(cat)

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"glyphword","endpoints":["/health","/glyphs","POST /score/preview","/run/*","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/glyphs", s.handleGlyphs)

	s.r.Post("/score/preview", s.handleScorePreview)

	// Runs and daily runs: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountRuns(r)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()
	if err := hs.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// SetCatalog replaces the glyph catalogue used for listings, previews and purchases.
func (s *Server) SetCatalog(c *glyph.Catalog) { s.catalog.Store(c) }

// Catalog returns the current glyph catalogue.
func (s *Server) Catalog() *glyph.Catalog { return s.catalog.Load() }

// Get implements run.Shop against the current catalogue.
func (s *Server) Get(id string) (glyph.Glyph, bool) { return s.Catalog().Get(id) }

func (s *Server) handleGlyphs(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{"glyphs": s.Catalog().All()})
}
