// assets/embed.go
//
// Static data compiled into the binary:
//   - breeds.json: the built-in breed catalog.
//   - sql/*.sql:   SQLite migrations for the optional results database.

package assets

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed breeds.json sql/*.sql
var FS embed.FS

// BreedRecord is the on-disk shape of one catalog entry.
type BreedRecord struct {
	Localized string   `json:"localized"`
	Canonical string   `json:"canonical"`
	Traits    []string `json:"traits"`
}

// BreedRecords decodes the embedded catalog.
func BreedRecords() ([]BreedRecord, error) {
	b, err := FS.ReadFile("breeds.json")
	if err != nil {
		return nil, err
	}
	var out []BreedRecord
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parsing breeds.json: %w", err)
	}
	return out, nil
}

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded sql/*.sql files in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := FS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		out = append(out, Migration{Name: name, SQL: string(b)})
	}
	return out, nil
}
