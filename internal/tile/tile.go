// internal/tile/tile.go
//
// Tile construction and validation.
// Responsibilities:
//   - Map letters to their fixed point values (Scrabble-like distribution).
//   - Build tiles from raw letters (normalising case).
//   - Validate tile shape before it reaches the scoring engine.

package tile

import (
	"fmt"
	"strings"
)

// letterValues is the fixed letter → point table. Special symbols are absent (0).
var letterValues = map[Letter]int{
	"A": 1, "E": 1, "I": 1, "L": 1, "N": 1, "O": 1, "R": 1, "S": 1, "T": 1, "U": 1,
	"D": 2, "G": 2,
	"B": 3, "C": 3, "M": 3, "P": 3,
	"F": 4, "H": 4, "V": 4, "W": 4, "Y": 4,
	"K": 5,
	"J": 8, "X": 8,
	"Q": 10, "Z": 10,
}

// InvalidTileError reports a malformed tile.
type InvalidTileError struct {
	Position int
	Letter   Letter
	Reason   string
}

func (e *InvalidTileError) Error() string {
	return fmt.Sprintf("invalid tile %q at position %d: %s", e.Letter, e.Position, e.Reason)
}

// Value returns the point value of a letter; special symbols are worth 0.
func Value(l Letter) int { return letterValues[l] }

// ParseLetter normalises s into a Letter, rejecting anything that is not
// A–Z (any case) or a special symbol.
func ParseLetter(s string) (Letter, error) {
	l := Letter(strings.ToUpper(strings.TrimSpace(s)))
	if l.IsAlpha() || l.IsSpecial() {
		return l, nil
	}
	return "", &InvalidTileError{Letter: Letter(s), Reason: "unknown letter"}
}

// New builds a plain tile for the given letter with its table value.
func New(letter string) (Tile, error) {
	l, err := ParseLetter(letter)
	if err != nil {
		return Tile{}, err
	}
	return Tile{Letter: l, BaseValue: Value(l)}, nil
}

// MustNew is New for literals known to be valid; it panics otherwise.
func MustNew(letter string) Tile {
	t, err := New(letter)
	if err != nil {
		panic(err)
	}
	return t
}

// FromWord builds plain tiles for every rune of w. The two-rune Mirror
// symbol "||" is recognised as a single tile.
func FromWord(w string) ([]Tile, error) {
	out := make([]Tile, 0, len(w))
	for i := 0; i < len(w); i++ {
		s := w[i : i+1]
		if s == "|" && i+1 < len(w) && w[i+1] == '|' {
			s = string(Mirror)
			i++
		}
		t, err := New(s)
		if err != nil {
			return nil, err
		}
		t.Position = len(out)
		out = append(out, t)
	}
	return out, nil
}

// Validate checks the tile's shape. It returns *InvalidTileError on failure.
func (t Tile) Validate() error {
	fail := func(reason string) error {
		return &InvalidTileError{Position: t.Position, Letter: t.Letter, Reason: reason}
	}
	if t.Letter == "" {
		return fail("missing letter")
	}
	if !t.Letter.IsAlpha() && !t.Letter.IsSpecial() {
		return fail("unknown letter")
	}
	if t.BaseValue < 0 {
		return fail("negative base value")
	}
	if t.MultiplicativeBonus < 0 {
		return fail("negative multiplicative bonus")
	}
	switch t.Enhancement {
	case EnhNone, EnhBonusPoints, EnhMultTile, EnhGlassTile, EnhSteelTile, EnhGoldTile:
	default:
		return fail("unknown enhancement " + string(t.Enhancement))
	}
	if !t.Edition.Valid() {
		return fail("unknown edition " + string(t.Edition))
	}
	switch t.Stamp {
	case StampNone, StampGold, StampRed, StampBlue, StampPurple, StampBlack:
	default:
		return fail("unknown stamp " + string(t.Stamp))
	}
	return nil
}

// Valid reports whether e is a known edition (including base).
func (e Edition) Valid() bool {
	switch e {
	case EditionBase, EditionFoil, EditionHolographic, EditionPolychrome:
		return true
	}
	return false
}
