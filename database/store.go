package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// document is the entire persisted state: a single JSON file holding
// every collection. It is loaded into memory once and rewritten
// wholesale on every mutation.
type document struct {
	Users    []models.User    `json:"users"`
	Projects []models.Project `json:"projects"`
	Settings models.Settings  `json:"settings"`
}

// store owns the in-memory document and its file on disk. The mutex
// serializes every read-modify-write cycle, so no handler ever sees a
// partially applied mutation. Repos that mutate the document restore
// the prior state when flush fails, keeping memory and disk in step.
type store struct {
	mu   sync.Mutex
	path string
	doc  document
}

func openStore(path string) (*store, error) {
	s := &store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the document from disk. A missing file is not an error:
// it reads as the empty skeleton, indistinguishable from a store that
// was never written.
func (s *store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.doc = emptyDocument()
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading database file %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing database file %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	s.doc = doc
	return nil
}

// flush serializes the whole document back to disk via a temp-file
// rename, so a crash mid-write never leaves a truncated file behind.
// Callers must hold s.mu.
func (s *store) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing database: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing database file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing database file: %w", err)
	}
	return nil
}

func emptyDocument() document {
	return document{
		Users:    []models.User{},
		Projects: []models.Project{},
	}
}
