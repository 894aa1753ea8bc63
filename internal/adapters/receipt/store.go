// Package receipt implements install-receipt storage as a flat JSON file.
package receipt

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ReceiptStore backed by a single JSON file under
// the target directory.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[domain.Component]domain.InstallReceipt
}

// NewStore creates a ReceiptStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[domain.Component]domain.InstallReceipt),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read receipt store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal receipt store"), "path", s.path)
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal receipt store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for receipt store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write receipt store")
	}

	return nil
}

// Get retrieves the receipt for a component.
func (s *Store) Get(component domain.Component) (*domain.InstallReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.cache[component]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// Put stores the receipt.
func (s *Store) Put(receipt domain.InstallReceipt) error {
	s.mu.Lock()
	s.cache[receipt.Component] = receipt
	s.mu.Unlock()

	return s.save()
}

// Ensure Store satisfies the interface.
var _ ports.ReceiptStore = (*Store)(nil)
