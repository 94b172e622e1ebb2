// internal/httpserver/routes_run.go
//
// HTTP routes for runs:
//   - POST /run/new      → start a run (optional fixed seed)
//   - GET  /run/{id}     → current state
//   - POST /run/play     → play tiles by grid position
//   - POST /run/preview  → score a play without applying it
//   - POST /run/discard  → swap tiles back into the bag
//   - POST /run/buy      → buy a catalogue glyph
//
// Active runs live in the in-memory store. Each run also has a row in the
// runs table, updated after every play; when a run ends the owner's stats
// and (for daily runs) the daily result are recorded.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/glyphword/internal/daily"
	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/run"
)

// mountRuns registers all /run routes.
func (s *Server) mountRuns(r chi.Router) {
	r.Route("/run", func(r chi.Router) {
		r.Post("/new", s.handleNewRun)
		r.Get("/{id}", s.handleGetRun)
		r.Post("/play", s.handlePlay)
		r.Post("/preview", s.handlePreview)
		r.Post("/discard", s.handleDiscard)
		r.Post("/buy", s.handleBuy)
	})
}

// newRunReq is the request payload for POST /run/new.
type newRunReq struct {
	Seed *uint64 `json:"seed"` // optional, reproduces a bag and its lucky rolls
}

// playReq is shared by play, preview and discard.
type playReq struct {
	RunID     string          `json:"runId"`
	Positions []int           `json:"positions"` // grid indices in play order
	Grid      glyph.GridState `json:"grid"`
}

type buyReq struct {
	RunID   string `json:"runId"`
	GlyphID string `json:"glyphId"`
}

type playRes struct {
	Outcome run.Outcome `json:"outcome"`
	Run     run.View    `json:"run"`
}

func (s *Server) deps() run.Deps {
	return run.Deps{Dict: s.dict, Shop: s, LegacyMirror: s.cfg.LegacyMirror}
}

// handleNewRun creates a run owned by the caller and records its history row.
func (s *Server) handleNewRun(w http.ResponseWriter, r *http.Request) {
	var req newRunReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body is fine

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rn := run.New(seed, s.deps())
	rn.OwnerID = s.ownerID(w, r)
	if !s.saveNewRun(w, r, rn) {
		return
	}
	_ = json.NewEncoder(w).Encode(rn.View())
}

// saveNewRun stores rn and inserts its runs row. It writes the error
// response itself and reports false on failure.
func (s *Server) saveNewRun(w http.ResponseWriter, r *http.Request, rn *run.Run) bool {
	if err := s.store.Save(r.Context(), rn); err != nil {
		log.Error().Err(err).Msg("save run")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return false
	}

	var userID, anon any
	if me := currentUser(r); me != nil {
		userID = me.ID
	} else {
		anon = rn.OwnerID
	}
	var day any
	if rn.Daily != "" {
		day = rn.Daily
	}
	if _, err := s.db.ExecContext(r.Context(),
		`INSERT INTO runs (id, user_id, anonymous_id, daily, seed, status, started_at)
		 VALUES (?,?,?,?,?,?,?)`,
		rn.ID, userID, anon, day, int64(rn.Seed), string(run.StatusPlaying), s.now().UTC().Format(time.RFC3339),
	); err != nil {
		log.Warn().Err(err).Str("runId", rn.ID).Msg("insert run row")
	}
	return true
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rn, ok := s.loadRun(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(rn.View())
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rn, ok := s.loadRun(w, r, req.RunID)
	if !ok {
		return
	}
	out, err := rn.Play(req.Positions, req.Grid)
	if err != nil {
		runError(w, err)
		return
	}
	v := rn.View()
	s.recordProgress(r.Context(), rn, v, currentUser(r))
	_ = json.NewEncoder(w).Encode(playRes{Outcome: out, Run: v})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rn, ok := s.loadRun(w, r, req.RunID)
	if !ok {
		return
	}
	out, err := rn.Preview(req.Positions, req.Grid)
	if err != nil {
		runError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rn, ok := s.loadRun(w, r, req.RunID)
	if !ok {
		return
	}
	if err := rn.Discard(req.Positions); err != nil {
		runError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(rn.View())
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req buyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rn, ok := s.loadRun(w, r, req.RunID)
	if !ok {
		return
	}
	if _, err := rn.Buy(req.GlyphID); err != nil {
		runError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(rn.View())
}

// loadRun fetches a run the caller owns, writing 404 otherwise.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request, id string) (*run.Run, bool) {
	rn, err := s.store.Get(r.Context(), id)
	if err != nil || !owns(r, rn.OwnerID) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return rn, true
}

// runError maps run and engine failures to HTTP responses.
func runError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, run.ErrNotAWord):
		http.Error(w, `{"error":"not_a_word"}`, http.StatusBadRequest)
	case errors.Is(err, run.ErrBadPosition):
		http.Error(w, `{"error":"bad_position"}`, http.StatusBadRequest)
	case errors.Is(err, run.ErrUnknownGlyph):
		http.Error(w, `{"error":"unknown_glyph"}`, http.StatusNotFound)
	case errors.Is(err, run.ErrRunOver):
		http.Error(w, `{"error":"run_over"}`, http.StatusConflict)
	case errors.Is(err, run.ErrNoDiscards):
		http.Error(w, `{"error":"no_discards"}`, http.StatusConflict)
	case errors.Is(err, run.ErrInsufficientFunds):
		http.Error(w, `{"error":"insufficient_funds"}`, http.StatusConflict)
	case errors.Is(err, run.ErrSlotsFull):
		http.Error(w, `{"error":"slots_full"}`, http.StatusConflict)
	default:
		invalidInput(w, err)
	}
}

// recordProgress updates the runs row and, once the run has ended, the
// owner's stats and daily result, then drops the run from the live store.
// The runs row keeps the final state. Failures are logged, not returned.
func (s *Server) recordProgress(ctx context.Context, rn *run.Run, v run.View, me *authUser) {
	var finished any
	if v.Status != run.StatusPlaying {
		finished = s.now().UTC().Format(time.RFC3339)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status=?, round=?, total_score=?, plays=?, finished_at=? WHERE id=?`,
		string(v.Status), v.Round, v.TotalScore, v.Plays, finished, v.ID,
	); err != nil {
		log.Warn().Err(err).Str("runId", v.ID).Msg("update run row")
	}
	if v.Status == run.StatusPlaying {
		return
	}

	won := v.Status == run.StatusWon
	log.Info().Str("runId", v.ID).Str("status", string(v.Status)).Int("round", v.Round).Int64("score", v.TotalScore).Msg("run finished")
	if me != nil {
		if err := s.users.RecordRun(ctx, me.ID, won, v.TotalScore); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("record run stats")
		}
	}
	if v.Daily != "" {
		uid := rn.OwnerID
		if me != nil {
			uid = me.ID
		}
		if err := s.daily.InsertResult(ctx, daily.Result{
			UserID: uid, Date: v.Daily, Score: v.TotalScore, Round: v.Round, Won: won,
		}); err != nil {
			log.Warn().Err(err).Str("runId", v.ID).Msg("insert daily result")
		}
	}
	if err := s.store.Delete(ctx, v.ID); err != nil {
		log.Warn().Err(err).Str("runId", v.ID).Msg("drop finished run")
	}
}
