// Package assets embeds the default data files shipped with the server:
// the dictionary (words.txt) and the glyph catalogue (catalog.toml).
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed words.txt catalog.toml
var FS embed.FS

// ReadLines returns the non-blank, non-comment lines of r, lowercased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded dictionary.
func WordList() ([]string, error) {
	f, err := FS.Open("words.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// CatalogTOML returns the embedded glyph catalogue source.
func CatalogTOML() (string, error) {
	b, err := FS.ReadFile("catalog.toml")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
