// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily run.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's run
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same bag and lucky rolls on a given UTC date (seed is
// HMAC(salt, date)). Each identity can finish the daily run once; the
// result is written when the run ends (see recordProgress). The run itself
// is played through the ordinary /run endpoints.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/glyphword/internal/daily"
	"github.com/robalobadob/glyphword/internal/run"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	mu       sync.Mutex        // guards sessions
	sessions map[string]string // identity|date → active run ID
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, sessions: make(map[string]string)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// newRes is returned by /daily/new.
type newRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Run    *run.View `json:"run,omitempty"`
}

// handleNew creates or resumes the caller's daily run for the current date.
//   - If the caller already has a result for today → Played=true, no run.
//   - Otherwise reuse the in-memory run for today or deal a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	s := d.srv
	uid := s.ownerID(w, r)
	now := s.now()
	date := daily.DateKey(now)

	if played, err := s.daily.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(newRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.sessions[key]; ok {
		if rn, err := s.store.Get(r.Context(), id); err == nil && !rn.Finished() {
			v := rn.View()
			_ = json.NewEncoder(w).Encode(newRes{Date: date, Run: &v})
			return
		}
	}

	rn := run.New(daily.Seed(now, s.cfg.DailySalt), s.deps())
	rn.OwnerID = uid
	rn.Daily = date
	if !s.saveNewRun(w, r, rn) {
		return
	}
	d.sessions[key] = rn.ID
	v := rn.View()
	_ = json.NewEncoder(w).Encode(newRes{Date: date, Run: &v})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, limit)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
