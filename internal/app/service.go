// Package app wires the domain model, storage backends, and supporting
// resources into the services the UI and CLI call.
package app

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jwnbm/familytree/internal/storage"
	"github.com/jwnbm/familytree/internal/storage/jsonfile"
	"github.com/jwnbm/familytree/internal/storage/sqlite"
	"github.com/jwnbm/familytree/internal/tree"
)

// DefaultRepository returns the format-dispatching repository over the JSON
// and SQLite backends.
func DefaultRepository() storage.Repository {
	return storage.NewMulti(jsonfile.New(), sqlite.New())
}

// FileService mediates between the in-memory tree and its file. It
// remembers the path of the currently open file so saves can go back to it,
// and logs every load and save outcome.
//
// The service is safe for use from one goroutine at a time per call; the
// current-path bookkeeping is locked so a background save and a UI path
// query do not race.
type FileService struct {
	repo   storage.Repository
	logger *log.Logger

	mu      sync.Mutex
	current string
}

// NewFileService builds a service over repo. logger may be nil, in which
// case outcomes are not logged.
func NewFileService(repo storage.Repository, logger *log.Logger) *FileService {
	return &FileService{repo: repo, logger: logger}
}

// Load reads the tree at path and records path as current on success.
func (s *FileService) Load(path string) (*tree.FamilyTree, error) {
	t, err := s.repo.Load(path)
	if err != nil {
		s.logf(func(l *log.Logger) { l.Error("load failed", "path", path, "err", err) })
		return nil, err
	}
	s.setCurrent(path)
	s.logf(func(l *log.Logger) {
		l.Info("loaded tree", "path", path, "persons", len(t.Persons))
	})
	return t, nil
}

// Save writes the tree to path and records path as current on success.
func (s *FileService) Save(path string, t *tree.FamilyTree) error {
	if err := s.repo.Save(path, t); err != nil {
		s.logf(func(l *log.Logger) { l.Error("save failed", "path", path, "err", err) })
		return err
	}
	s.setCurrent(path)
	s.logf(func(l *log.Logger) {
		l.Info("saved tree", "path", path, "persons", len(t.Persons))
	})
	return nil
}

// SaveCurrent writes the tree back to the current file. It fails with a
// write error when no file has been opened or saved yet.
func (s *FileService) SaveCurrent(t *tree.FamilyTree) error {
	path := s.CurrentPath()
	if path == "" {
		return storage.Writef("no current file to save to")
	}
	return s.Save(path, t)
}

// CurrentPath returns the path of the currently open file, or "" when no
// file is open.
func (s *FileService) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *FileService) setCurrent(path string) {
	s.mu.Lock()
	s.current = path
	s.mu.Unlock()
}

func (s *FileService) logf(fn func(*log.Logger)) {
	if s.logger != nil {
		fn(s.logger)
	}
}
