package storage

import (
	"path/filepath"
	"strings"

	"github.com/jwnbm/familytree/internal/tree"
)

// Format identifies a persistence backend.
type Format int

const (
	// FormatJSON is the whole-document JSON backend.
	FormatJSON Format = iota
	// FormatSQLite is the normalized relational backend.
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// FormatForPath picks the backend for a path by its extension. ".db" and
// ".sqlite" (case-insensitive) select SQLite; everything else, including
// paths with no extension, selects JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Multi dispatches every call to one of two backends by path extension.
// The dispatch itself is pure and stateless.
type Multi struct {
	json   Repository
	sqlite Repository
}

// NewMulti builds a dispatching repository over the given backends.
func NewMulti(json, sqlite Repository) *Multi {
	return &Multi{json: json, sqlite: sqlite}
}

func (m *Multi) forPath(path string) Repository {
	if FormatForPath(path) == FormatSQLite {
		return m.sqlite
	}
	return m.json
}

// Load reads the tree at path with the backend its extension selects.
func (m *Multi) Load(path string) (*tree.FamilyTree, error) {
	return m.forPath(path).Load(path)
}

// Save writes the tree to path with the backend its extension selects.
func (m *Multi) Save(path string, t *tree.FamilyTree) error {
	return m.forPath(path).Save(path, t)
}
