// Package jsonfile persists a family tree as one pretty-printed JSON
// document. The whole tree is read and written in a single call; unknown
// fields are ignored on read and absent fields take their documented
// defaults.
package jsonfile

import (
	"encoding/json"
	"os"

	"github.com/jwnbm/familytree/internal/storage"
	"github.com/jwnbm/familytree/internal/tree"
)

// Repository is the JSON document backend.
type Repository struct{}

// New returns a JSON file repository.
func New() *Repository { return &Repository{} }

// Load reads and decodes the document at path.
func (*Repository) Load(path string) (*tree.FamilyTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, storage.Readf("read %s: %v", path, err)
	}
	t := tree.New()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, storage.Deserializef("decode %s: %v", path, err)
	}
	t.SetDefaults()
	return t, nil
}

// Save encodes the tree and writes it to path, replacing any previous
// content.
func (*Repository) Save(path string, t *tree.FamilyTree) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return storage.Serializef("encode tree: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return storage.Writef("write %s: %v", path, err)
	}
	return nil
}
