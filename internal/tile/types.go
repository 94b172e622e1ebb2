// internal/tile/types.go
//
// Core type definitions for letter tiles.
// Defines:
//   - Letter:      the face of a tile (A–Z or a special symbol).
//   - Enhancement: per-tile scoring tag (bonus, mult, glass, steel, gold).
//   - Edition:     tiered bonus tag shared by tiles and glyphs.
//   - Stamp:       per-tile tag granting repeats or side payments.
//   - Flags:       capability set for passive effects (lucky, steel).
//   - Tile:        one played or held letter instance.
//
// All tag types are strings so tiles travel unchanged through JSON and TOML.
// The empty string is always "none".

package tile

// Letter is the face of a tile: one uppercase A–Z or a special symbol.
type Letter string

// Special symbols. They carry no intrinsic value and score by position.
const (
	Anchor      Letter = "#"
	Mirror      Letter = "||"
	Exclamation Letter = "!"
	Wildcard    Letter = "*"
)

// Enhancement alters a tile's own scoring contribution.
type Enhancement string

const (
	EnhNone        Enhancement = ""
	EnhBonusPoints Enhancement = "bonus"
	EnhMultTile    Enhancement = "mult"
	EnhGlassTile   Enhancement = "glass"
	EnhSteelTile   Enhancement = "steel"
	EnhGoldTile    Enhancement = "gold"
)

// Edition is a tiered bonus carried by a tile or a glyph.
type Edition string

const (
	EditionBase        Edition = ""
	EditionFoil        Edition = "foil"
	EditionHolographic Edition = "holographic"
	EditionPolychrome  Edition = "polychrome"
)

// Stamp is a per-tile tag with a repeat or payout effect.
type Stamp string

const (
	StampNone   Stamp = ""
	StampGold   Stamp = "gold"
	StampRed    Stamp = "red"
	StampBlue   Stamp = "blue"
	StampPurple Stamp = "purple"
	StampBlack  Stamp = "black"
)

// Flags is the set of passive capabilities a tile may carry.
// Add a field per capability; the scoring engine reads them by name.
type Flags struct {
	Lucky bool `json:"lucky,omitempty" toml:"lucky"` // 1-in-5 chance of +20 mult per run
	Steel bool `json:"steel,omitempty" toml:"steel"` // ×1.2 mult while held unplayed
}

// Tile is one letter instance, either played or held on the grid.
type Tile struct {
	Letter              Letter      `json:"letter" toml:"letter"`
	BaseValue           int         `json:"baseValue" toml:"base_value"`                   // from the letter table
	AdditiveBonus       int         `json:"additiveBonus,omitempty" toml:"additive_bonus"` // persistent upgrades
	MultiplicativeBonus float64     `json:"multiplicativeBonus,omitempty" toml:"multiplicative_bonus"`
	Enhancement         Enhancement `json:"enhancement,omitempty" toml:"enhancement"`
	Edition             Edition     `json:"edition,omitempty" toml:"edition"`
	Stamp               Stamp       `json:"stamp,omitempty" toml:"stamp"`
	Flags               Flags       `json:"flags,omitempty" toml:"flags"`
	Position            int         `json:"position" toml:"position"` // grid slot index
}

// PointValue is the stored point value of the tile, inclusive of any
// persistent additive upgrades applied before this scoring pass.
func (t Tile) PointValue() int { return t.BaseValue + t.AdditiveBonus }

// IsAnchor reports whether the tile is an Anchor (#).
func (t Tile) IsAnchor() bool { return t.Letter == Anchor }

// IsMirror reports whether the tile is a Mirror (||).
func (t Tile) IsMirror() bool { return t.Letter == Mirror }

// IsExclamation reports whether the tile is an Exclamation (!).
func (t Tile) IsExclamation() bool { return t.Letter == Exclamation }

// IsWildcard reports whether the tile is a Wildcard (*).
func (t Tile) IsWildcard() bool { return t.Letter == Wildcard }

// IsSpecial reports whether the tile is any non-alphabetic symbol.
func (t Tile) IsSpecial() bool { return t.Letter.IsSpecial() }

// IsSpecial reports whether l is one of the special symbols.
func (l Letter) IsSpecial() bool {
	switch l {
	case Anchor, Mirror, Exclamation, Wildcard:
		return true
	}
	return false
}

// IsAlpha reports whether l is a single uppercase A–Z.
func (l Letter) IsAlpha() bool {
	return len(l) == 1 && l[0] >= 'A' && l[0] <= 'Z'
}
