// internal/glyph/catalog.go
//
// Catalog holds glyph definitions loaded from TOML data.
//
// Sources:
//   1. GLYPH_CATALOG_FILE, when set (see LoadCatalogFile).
//   2. The embedded default assets/catalog.toml.
//
// A Catalog is immutable after load; hot reload swaps whole catalogs.

package glyph

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/robalobadob/glyphword/assets"
)

// catalogFile is the on-disk TOML shape.
type catalogFile struct {
	Glyphs []Glyph `toml:"glyph"`
}

// Catalog is a validated, id-indexed set of glyph definitions.
type Catalog struct {
	byID map[string]Glyph
	ids  []string // sorted
}

// LoadCatalog decodes and validates a TOML catalogue. A catalogue with no
// glyphs is an error; it is usually a file caught mid-write.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Glyphs) == 0 {
		return nil, errors.New("catalog has no glyphs")
	}
	return NewCatalog(f.Glyphs...)
}

// LoadCatalogFile reads a catalogue from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	c, err := LoadCatalog(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// DefaultCatalog returns the embedded catalogue. It panics if the embedded
// data is invalid, which is a build defect.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		src, err := assets.CatalogTOML()
		if err != nil {
			panic(fmt.Sprintf("glyph: embedded catalog: %v", err))
		}
		c, err := LoadCatalog(strings.NewReader(src))
		if err != nil {
			panic(fmt.Sprintf("glyph: embedded catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// NewCatalog validates gs and indexes them by id. Duplicate ids are rejected.
func NewCatalog(gs ...Glyph) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Glyph, len(gs))}
	for _, g := range gs {
		if err := g.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[g.ID]; dup {
			return nil, &InvalidModifierError{ID: g.ID, Reason: "duplicate id"}
		}
		c.byID[g.ID] = g
		c.ids = append(c.ids, g.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// Get looks up a glyph by id.
func (c *Catalog) Get(id string) (Glyph, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// Resolve maps ids to glyphs in the given order.
func (c *Catalog) Resolve(ids []string) ([]Glyph, error) {
	out := make([]Glyph, 0, len(ids))
	for _, id := range ids {
		g, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown glyph %q", id)
		}
		out = append(out, g)
	}
	return out, nil
}

// All returns every glyph ordered by id.
func (c *Catalog) All() []Glyph {
	out := make([]Glyph, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Len is the number of glyphs in the catalogue.
func (c *Catalog) Len() int { return len(c.ids) }
