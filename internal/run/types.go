// internal/run/types.go
//
// Core type definitions for a run: one playthrough across several rounds.
// Defines:
//   - Status:  playing → won/lost.
//   - Run:     state of a single run (grid, bag, glyphs, money, round progress).
//   - View:    JSON snapshot of a run for clients.
//   - Outcome: result of one played word.

package run

import (
	"sync"

	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/rng"
	"github.com/robalobadob/glyphword/internal/scoring"
	"github.com/robalobadob/glyphword/internal/tile"
)

// Status is the coarse state of a run.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Dictionary is the word oracle a run validates plays against.
type Dictionary interface {
	IsWord(s string) bool
}

// Shop is the glyph catalogue a run buys from.
type Shop interface {
	Get(id string) (glyph.Glyph, bool)
}

// Deps are the collaborators a run needs.
type Deps struct {
	Dict         Dictionary
	Shop         Shop
	LegacyMirror bool // score with scoring.Options.LegacyMirrorDiscard
}

// Run holds the state of a single run.
type Run struct {
	mu sync.Mutex

	ID           string        // Unique run identifier (random hex string).
	OwnerID      string        // User or anonymous id; empty for detached runs.
	Daily        string        // Date key for daily runs, empty otherwise.
	Seed         uint64        // Drives the bag and every lucky roll.
	Round        int           // 1-based.
	Target       int64         // Score needed to clear the round.
	RoundScore   int64         // Score so far this round.
	TotalScore   int64         // Score across the whole run.
	Money        int           // Gold available in the shop.
	HandsLeft    int           // Words that may still be played this round.
	DiscardsLeft int           // Discards left this round.
	Plays        int           // Words played across the run.
	Grid         []tile.Tile   // Tiles available to play.
	Glyphs       []glyph.Glyph // Owned glyphs, in scoring order.
	Status       Status

	bag  *tile.Bag
	rand *rng.Rand
	deps Deps
}

// View is a read-only snapshot of a run.
type View struct {
	ID           string        `json:"id"`
	Daily        string        `json:"daily,omitempty"`
	Round        int           `json:"round"`
	Target       int64         `json:"target"`
	RoundScore   int64         `json:"roundScore"`
	TotalScore   int64         `json:"totalScore"`
	Money        int           `json:"money"`
	HandsLeft    int           `json:"handsLeft"`
	DiscardsLeft int           `json:"discardsLeft"`
	Plays        int           `json:"plays"`
	Grid         []tile.Tile   `json:"grid"`
	Glyphs       []glyph.Glyph `json:"glyphs"`
	BagCount     int           `json:"bagCount"`
	Status       Status        `json:"status"`
}

// Outcome describes one played word.
type Outcome struct {
	Word         string         `json:"word"`
	Result       scoring.Result `json:"result"`
	RoundCleared bool           `json:"roundCleared"`
	Status       Status         `json:"status"`
}
