// internal/breeds/catalog.go
//
// Provides the breed catalog for the game engine.
//
// Responsibilities:
//   - Load the built-in catalog from the embedded assets exactly once.
//   - Validate its shape (exactly CatalogSize entries, names and traits present).
//   - Format breed names for display.
//
// The catalog is never mutated after loading; callers receive a copy of the slice.

package breeds

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/robalobadob/dogmatch/assets"
)

// CatalogSize is the number of breeds shipped with the game.
const CatalogSize = 12

// ErrInvalidCatalog reports a malformed built-in catalog.
var ErrInvalidCatalog = errors.New("breeds: invalid catalog")

// Breed is one catalog entry.
type Breed struct {
	Localized string   // Native-language name; may be empty.
	Canonical string   // English/international standard name.
	Traits    []string // Short descriptive facts; never empty.
}

// DisplayName renders "Localized / Canonical", or just the canonical name
// when there is no localized one.
func (b Breed) DisplayName() string {
	if b.Localized == "" {
		return b.Canonical
	}
	return b.Localized + " / " + b.Canonical
}

var (
	loadOnce sync.Once
	catalog  []Breed
	loadErr  error
)

// Catalog returns the built-in catalog, loading it on first use.
func Catalog() ([]Breed, error) {
	loadOnce.Do(func() {
		recs, err := assets.BreedRecords()
		if err != nil {
			loadErr = fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
			return
		}
		catalog, loadErr = fromRecords(recs)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]Breed(nil), catalog...), nil
}

// fromRecords converts and validates decoded records.
func fromRecords(recs []assets.BreedRecord) ([]Breed, error) {
	if len(recs) != CatalogSize {
		return nil, fmt.Errorf("%w: want %d breeds, got %d", ErrInvalidCatalog, CatalogSize, len(recs))
	}
	out := make([]Breed, 0, len(recs))
	for i, r := range recs {
		b := Breed{
			Localized: strings.TrimSpace(r.Localized),
			Canonical: strings.TrimSpace(r.Canonical),
		}
		for _, t := range r.Traits {
			if t = strings.TrimSpace(t); t != "" {
				b.Traits = append(b.Traits, t)
			}
		}
		if b.Canonical == "" {
			return nil, fmt.Errorf("%w: entry %d has no canonical name", ErrInvalidCatalog, i+1)
		}
		if len(b.Traits) == 0 {
			return nil, fmt.Errorf("%w: %s has no traits", ErrInvalidCatalog, b.Canonical)
		}
		out = append(out, b)
	}
	return out, nil
}
