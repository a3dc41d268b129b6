package memstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgo/agenda/internal/model"
)

// snapshot is the on-disk layout of a Store
type snapshot struct {
	Users      []*model.User     `json:"users"`
	Categories []*model.Category `json:"categories"`
	Events     []*model.Event    `json:"events"`
}

// Save writes the store to path atomically: the JSON goes to path.tmp
// first and is renamed over path, so readers see the old or the new file.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	snap := snapshot{
		Users:      make([]*model.User, 0, len(s.users)),
		Categories: make([]*model.Category, 0, len(s.categories)),
		Events:     make([]*model.Event, 0, len(s.events)),
	}
	for _, u := range s.users {
		out := *u
		snap.Users = append(snap.Users, &out)
	}
	for _, c := range s.categories {
		out := *c
		snap.Categories = append(snap.Categories, &out)
	}
	for _, e := range s.events {
		snap.Events = append(snap.Events, copyEvent(e))
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("memstore: encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("memstore: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("memstore: writing snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load replaces the store contents with the snapshot at path. A missing
// file leaves the store empty and is not an error.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("memstore: reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("memstore: decoding snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*model.User, len(snap.Users))
	for _, u := range snap.Users {
		s.users[u.Email] = u
	}
	s.categories = make(map[string]*model.Category, len(snap.Categories))
	for _, c := range snap.Categories {
		s.categories[c.Name] = c
	}
	s.events = make(map[model.EventKey]*model.Event, len(snap.Events))
	for _, e := range snap.Events {
		s.events[e.EventKey] = e
	}
	return nil
}
