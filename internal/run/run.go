// internal/run/run.go
//
// Run orchestration around the scoring engine.
// Responsibilities:
//   - Deal a grid from a seeded bag and keep it topped up.
//   - Validate and score played words, paying gold stamps and round rewards.
//   - Track rounds, targets, hands and discards; transition playing → won/lost.
//   - Sell glyphs from the catalogue.
//
// Every play scores with an engine seeded from (run seed, play number), so a
// preview and the play that follows it roll the same lucky outcomes.

package run

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/rng"
	"github.com/robalobadob/glyphword/internal/scoring"
	"github.com/robalobadob/glyphword/internal/tile"
	"github.com/robalobadob/glyphword/internal/words"
)

const (
	GridSize         = 12
	StartingHands    = 4
	StartingDiscards = 3
	StartingMoney    = 4
	MaxGlyphs        = 5
	MaxRounds        = 8
	BaseTarget       = 100
	RoundReward      = 3
)

var (
	ErrRunOver           = errors.New("run is over")
	ErrNotAWord          = errors.New("not in word list")
	ErrBadPosition       = errors.New("invalid tile position")
	ErrNoDiscards        = errors.New("no discards left")
	ErrInsufficientFunds = errors.New("not enough gold")
	ErrSlotsFull         = errors.New("glyph slots full")
	ErrUnknownGlyph      = errors.New("unknown glyph")
)

// TargetFor returns the score needed to clear round n (1-based).
func TargetFor(n int) int64 {
	return int64(BaseTarget * n * (n + 1) / 2)
}

// New starts a run whose bag and lucky rolls are determined by seed.
func New(seed uint64, deps Deps) *Run {
	r := &Run{
		ID:           randomID(),
		Seed:         seed,
		Round:        1,
		Target:       TargetFor(1),
		Money:        StartingMoney,
		HandsLeft:    StartingHands,
		DiscardsLeft: StartingDiscards,
		Glyphs:       []glyph.Glyph{},
		Status:       StatusPlaying,
		rand:         rng.New(seed),
		deps:         deps,
	}
	r.bag = tile.NewBag(r.rand)
	r.refill()
	return r
}

// Play scores the tiles at positions (grid indices, in play order) and
// applies the result to the run.
func (r *Run) Play(positions []int, grid glyph.GridState) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusPlaying {
		return Outcome{}, ErrRunOver
	}
	w, res, err := r.score(positions, grid)
	if err != nil {
		return Outcome{}, err
	}

	r.Plays++
	r.HandsLeft--
	r.RoundScore += res.FinalScore
	r.TotalScore += res.FinalScore
	r.Money += res.GoldBonus
	r.removeAndRefill(positions)

	out := Outcome{Word: w, Result: res}
	switch {
	case r.RoundScore >= r.Target:
		out.RoundCleared = true
		r.advance()
	case r.HandsLeft == 0:
		r.Status = StatusLost
		log.Debug().Str("run", r.ID).Int("round", r.Round).Int64("total", r.TotalScore).Msg("run lost")
	}
	out.Status = r.Status
	return out, nil
}

// Preview scores the tiles at positions exactly as Play would, without
// changing the run.
func (r *Run) Preview(positions []int, grid glyph.GridState) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusPlaying {
		return Outcome{}, ErrRunOver
	}
	w, res, err := r.score(positions, grid)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Word: w, Result: res, RoundCleared: r.RoundScore+res.FinalScore >= r.Target, Status: r.Status}, nil
}

// Discard returns the tiles at positions to the bag and deals replacements.
func (r *Run) Discard(positions []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusPlaying {
		return ErrRunOver
	}
	if r.DiscardsLeft == 0 {
		return ErrNoDiscards
	}
	if err := r.checkPositions(positions); err != nil {
		return err
	}
	discarded := make([]tile.Tile, 0, len(positions))
	for _, p := range positions {
		discarded = append(discarded, r.Grid[p])
	}
	r.DiscardsLeft--
	r.removeAndRefill(positions)
	r.bag.Return(discarded...)
	return nil
}

// Buy adds the catalogue glyph id to the run's owned glyphs.
func (r *Run) Buy(id string) (glyph.Glyph, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusPlaying {
		return glyph.Glyph{}, ErrRunOver
	}
	g, ok := r.deps.Shop.Get(id)
	if !ok {
		return glyph.Glyph{}, ErrUnknownGlyph
	}
	if len(r.Glyphs) >= MaxGlyphs {
		return glyph.Glyph{}, ErrSlotsFull
	}
	if r.Money < g.Price {
		return glyph.Glyph{}, ErrInsufficientFunds
	}
	r.Money -= g.Price
	r.Glyphs = append(r.Glyphs, g)
	return g, nil
}

// View returns a snapshot safe to serialise.
func (r *Run) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return View{
		ID:           r.ID,
		Daily:        r.Daily,
		Round:        r.Round,
		Target:       r.Target,
		RoundScore:   r.RoundScore,
		TotalScore:   r.TotalScore,
		Money:        r.Money,
		HandsLeft:    r.HandsLeft,
		DiscardsLeft: r.DiscardsLeft,
		Plays:        r.Plays,
		Grid:         append([]tile.Tile(nil), r.Grid...),
		Glyphs:       append([]glyph.Glyph(nil), r.Glyphs...),
		BagCount:     r.bag.Len(),
		Status:       r.Status,
	}
}

// Finished reports whether the run has ended.
func (r *Run) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status != StatusPlaying
}

// score validates the play and runs the engine. Caller holds r.mu.
func (r *Run) score(positions []int, grid glyph.GridState) (string, scoring.Result, error) {
	if err := r.checkPositions(positions); err != nil {
		return "", scoring.Result{}, err
	}
	played := make([]tile.Tile, 0, len(positions))
	chosen := make(map[int]bool, len(positions))
	for _, p := range positions {
		played = append(played, r.Grid[p])
		chosen[p] = true
	}
	held := make([]tile.Tile, 0, len(r.Grid)-len(positions))
	for i, t := range r.Grid {
		if !chosen[i] {
			held = append(held, t)
		}
	}

	w := words.Text(played)
	if !r.deps.Dict.IsWord(w) {
		return w, scoring.Result{}, ErrNotAWord
	}

	eng := scoring.NewEngine(scoring.Options{
		Rand:                rng.New(r.Seed ^ uint64(r.Plays+1)*0x9e3779b97f4a7c15),
		LegacyMirrorDiscard: r.deps.LegacyMirror,
	})
	res, err := eng.Calculate(scoring.Input{
		Played:         played,
		Held:           held,
		Glyphs:         r.Glyphs,
		Props:          words.Properties(played),
		Grid:           grid,
		AvailableTiles: r.bag.Len(),
	})
	return w, res, err
}

// checkPositions rejects empty, out-of-range and repeated positions.
func (r *Run) checkPositions(positions []int) error {
	if len(positions) == 0 {
		return ErrBadPosition
	}
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(r.Grid) || seen[p] {
			return ErrBadPosition
		}
		seen[p] = true
	}
	return nil
}

// removeAndRefill drops the tiles at positions and tops the grid back up.
func (r *Run) removeAndRefill(positions []int) {
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		drop[p] = true
	}
	kept := r.Grid[:0:0]
	for i, t := range r.Grid {
		if !drop[i] {
			kept = append(kept, t)
		}
	}
	r.Grid = kept
	r.refill()
}

// refill draws until the grid is full or the bag is empty and renumbers slots.
func (r *Run) refill() {
	if need := GridSize - len(r.Grid); need > 0 {
		r.Grid = append(r.Grid, r.bag.Draw(need)...)
	}
	for i := range r.Grid {
		r.Grid[i].Position = i
	}
}

// advance pays the round reward and either starts the next round or wins the run.
func (r *Run) advance() {
	r.Money += RoundReward + r.HandsLeft
	log.Debug().Str("run", r.ID).Int("round", r.Round).Int64("score", r.RoundScore).Int("money", r.Money).Msg("round cleared")

	if r.Round >= MaxRounds {
		r.Status = StatusWon
		return
	}
	r.Round++
	r.Target = TargetFor(r.Round)
	r.RoundScore = 0
	r.HandsLeft = StartingHands
	r.DiscardsLeft = StartingDiscards

	r.bag.Return(r.Grid...)
	r.Grid = nil
	r.refill()
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
