// internal/httpserver/routes_score.go
//
// POST /score/preview scores an arbitrary play without any run state.
// Clients (and tests) can describe the tiles in full, or send a plain
// "word" shorthand that is turned into unmodified tiles.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/rng"
	"github.com/robalobadob/glyphword/internal/scoring"
	"github.com/robalobadob/glyphword/internal/tile"
	"github.com/robalobadob/glyphword/internal/words"
)

// scorePreviewReq is the request payload for POST /score/preview.
type scorePreviewReq struct {
	Word           string                `json:"word"`   // shorthand for plain tiles
	Tiles          []tile.Tile           `json:"tiles"`  // played, in order
	Held           []tile.Tile           `json:"held"`   // unplayed grid tiles
	Glyphs         []string              `json:"glyphs"` // catalogue ids, in scoring order
	Custom         []glyph.Glyph         `json:"customGlyphs"`
	Props          *glyph.WordProperties `json:"props"` // derived from tiles when omitted
	Grid           glyph.GridState       `json:"grid"`
	AvailableTiles int                   `json:"availableTiles"`
	Seed           *uint64               `json:"seed"`         // fixes lucky rolls
	LegacyMirror   *bool                 `json:"legacyMirror"` // overrides server default
}

type scorePreviewRes struct {
	Word   string         `json:"word"`
	IsWord bool           `json:"isWord"`
	Result scoring.Result `json:"result"`
}

func (s *Server) handleScorePreview(w http.ResponseWriter, r *http.Request) {
	var req scorePreviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	played := req.Tiles
	if len(played) == 0 && req.Word != "" {
		ts, err := tile.FromWord(req.Word)
		if err != nil {
			invalidInput(w, err)
			return
		}
		played = ts
	}
	gs, err := s.Catalog().Resolve(req.Glyphs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gs = append(gs, req.Custom...)

	props := words.Properties(played)
	if req.Props != nil {
		props = *req.Props
	}
	opts := scoring.Options{LegacyMirrorDiscard: s.cfg.LegacyMirror}
	if req.LegacyMirror != nil {
		opts.LegacyMirrorDiscard = *req.LegacyMirror
	}
	if req.Seed != nil {
		opts.Rand = rng.New(*req.Seed)
	}

	res, err := scoring.NewEngine(opts).Calculate(scoring.Input{
		Played:         played,
		Held:           req.Held,
		Glyphs:         gs,
		Props:          props,
		Grid:           req.Grid,
		AvailableTiles: req.AvailableTiles,
	})
	if err != nil {
		invalidInput(w, err)
		return
	}
	text := words.Text(played)
	_ = json.NewEncoder(w).Encode(scorePreviewRes{Word: text, IsWord: s.dict.IsWord(text), Result: res})
}

// invalidInput maps engine validation failures to 400 invalid_input.
func invalidInput(w http.ResponseWriter, err error) {
	var (
		te *tile.InvalidTileError
		me *glyph.InvalidModifierError
	)
	kind := "input" // *scoring.InvalidInputError
	switch {
	case errors.As(err, &te):
		kind = "tile"
	case errors.As(err, &me):
		kind = "modifier"
	}
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_input", "kind": kind, "detail": err.Error()})
}
