// internal/tile/bag.go
//
// Bag is the pool of undrawn tiles for a run.
// The standard distribution mirrors a Scrabble set (blanks become wildcards)
// plus one of each positional special tile.

package tile

// distribution is the number of copies of each letter in a fresh bag.
var distribution = map[Letter]int{
	"A": 9, "B": 2, "C": 2, "D": 4, "E": 12, "F": 2, "G": 3, "H": 2, "I": 9,
	"J": 1, "K": 1, "L": 4, "M": 2, "N": 6, "O": 8, "P": 2, "Q": 1, "R": 6,
	"S": 4, "T": 6, "U": 4, "V": 2, "W": 2, "X": 1, "Y": 2, "Z": 1,
	Wildcard: 2, Anchor: 1, Mirror: 1, Exclamation: 1,
}

// Shuffler permutes a sequence; *rng.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Bag holds undrawn tiles. Draws come off the end of the slice.
type Bag struct {
	tiles []Tile
	shuf  Shuffler
}

// NewBag returns a shuffled bag with the standard distribution.
func NewBag(s Shuffler) *Bag {
	b := &Bag{shuf: s}
	for _, l := range sortedLetters() {
		for i := 0; i < distribution[l]; i++ {
			b.tiles = append(b.tiles, Tile{Letter: l, BaseValue: Value(l)})
		}
	}
	b.shuffle()
	return b
}

// Len is the number of undrawn tiles.
func (b *Bag) Len() int { return len(b.tiles) }

// Draw removes up to n tiles from the bag.
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	if n <= 0 {
		return nil
	}
	cut := len(b.tiles) - n
	out := make([]Tile, n)
	copy(out, b.tiles[cut:])
	b.tiles = b.tiles[:cut]
	return out
}

// Return puts tiles back and reshuffles. Upgrades on the tiles are kept.
func (b *Bag) Return(ts ...Tile) {
	b.tiles = append(b.tiles, ts...)
	b.shuffle()
}

func (b *Bag) shuffle() {
	if b.shuf == nil {
		return
	}
	b.shuf.Shuffle(len(b.tiles), func(i, j int) { b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i] })
}

// sortedLetters gives map iteration a stable order so seeded bags repeat.
func sortedLetters() []Letter {
	out := make([]Letter, 0, len(distribution))
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, Letter(string(c)))
	}
	return append(out, Wildcard, Anchor, Mirror, Exclamation)
}
