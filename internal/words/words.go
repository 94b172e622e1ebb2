// internal/words/words.go
//
// Dictionary oracle and word facts for played tiles.
//
// Responsibilities:
//   - Load the dictionary from an environment-provided file or fall back to the embedded default.
//   - Answer "is this a word?" with wildcard support ('*' matches any letter).
//   - Spell the text of a tile sequence and derive WordProperties from it.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from it.
//   2. Otherwise use the embedded assets/words.txt.
//
// Constraints:
//   • Words are normalised to lowercase a–z; anything else is dropped.
//   • Initialization is run once (sync.Once).

package words

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/glyphword/assets"
	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/tile"
)

// Dictionary is an immutable word set indexed for wildcard lookups.
type Dictionary struct {
	set      map[string]struct{}
	byLength map[int][]string
}

var (
	initOnce   sync.Once
	global     *Dictionary
	initialErr error
)

// Init loads the process-wide dictionary exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path := os.Getenv("WORDS_FILE"); path != "" {
			list, err = readWordFile(path)
		} else {
			list, err = assets.WordList()
		}
		if err != nil {
			initialErr = err
			return
		}
		global = New(list)
		if len(global.set) == 0 {
			initialErr = errors.New("words: dictionary is empty")
		}
	})
	return initialErr
}

// Default returns the process-wide dictionary, initialising it if needed.
// It is empty if initialisation failed.
func Default() *Dictionary {
	if err := Init(); err != nil || global == nil {
		return New(nil)
	}
	return global
}

// New builds a dictionary from list, keeping only alphabetic entries.
func New(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list)), byLength: make(map[int][]string)}
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.byLength[len(w)] = append(d.byLength[len(w)], w)
	}
	return d
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsWord reports whether s is in the dictionary. Each '*' in s matches any
// single letter.
func (d *Dictionary) IsWord(s string) bool {
	s = strings.ToLower(s)
	if s == "" {
		return false
	}
	if !strings.Contains(s, string(tile.Wildcard)) {
		_, ok := d.set[s]
		return ok
	}
	for _, w := range d.byLength[len(s)] {
		if matches(s, w) {
			return true
		}
	}
	return false
}

// matches compares a wildcard pattern against a word of the same length.
func matches(pattern, w string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '*' && pattern[i] != w[i] {
			return false
		}
	}
	return true
}

// Stats returns the number of loaded words.
func (d *Dictionary) Stats() int { return len(d.set) }

// IsWord checks s against the process-wide dictionary.
func IsWord(s string) bool { return Default().IsWord(s) }

// Stats returns the size of the process-wide dictionary.
func Stats() int { return Default().Stats() }

// Text spells the word a tile sequence forms. Alphabetic tiles and
// wildcards contribute; Anchor, Mirror and Exclamation are positional and
// are skipped.
func Text(ts []tile.Tile) string {
	var b strings.Builder
	for _, t := range ts {
		if t.Letter.IsAlpha() || t.IsWildcard() {
			b.WriteString(string(t.Letter))
		}
	}
	return b.String()
}

// Properties derives word facts from the played tiles. Length counts every
// tile; the palindrome check runs over the spelled text, ignores case and
// needs at least two letters. A wildcard matches any letter it faces.
func Properties(ts []tile.Tile) glyph.WordProperties {
	return glyph.WordProperties{Length: len(ts), IsPalindrome: isPalindrome(Text(ts))}
}

func isPalindrome(s string) bool {
	s = strings.ToLower(s)
	if len(s) < 2 {
		return false
	}
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] && s[i] != '*' && s[j] != '*' {
			return false
		}
	}
	return true
}
