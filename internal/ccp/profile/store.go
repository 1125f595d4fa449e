// Package profile implements durable JSON persistence for the three document
// kinds the tool manages (profiles, active settings, backups) plus profile
// enumeration and current-pointer tracking.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/example/claude-code-profiles/internal/ccp/paths"
	"github.com/example/claude-code-profiles/internal/ccp/storage"
)

// Store performs JSON load/save for profiles, settings and backups, tracks
// the current profile pointer, and enumerates stored documents.
type Store struct {
	storage *storage.Storage
	layout  *paths.Layout
	logger  *slog.Logger
}

// NewStore creates a new Store. A nil logger discards all log output.
func NewStore(st *storage.Storage, layout *paths.Layout, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{storage: st, layout: layout, logger: logger}
}

// Layout returns the storage layout the store operates on.
func (s *Store) Layout() *paths.Layout {
	return s.layout
}

// EnsureDirs creates the profiles and backups directories if missing.
func (s *Store) EnsureDirs() error {
	if err := s.storage.MkdirAll(s.layout.ProfilesDir()); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if err := s.storage.MkdirAll(s.layout.BackupsDir()); err != nil {
		return fmt.Errorf("failed to create backups directory: %w", err)
	}
	return nil
}

// ListProfiles returns the sorted names of all stored profiles. A missing
// profiles directory yields an empty list.
func (s *Store) ListProfiles() ([]string, error) {
	return s.listJSONNames(s.layout.ProfilesDir())
}

// ListBackups returns the sorted names of all stored backups. A missing
// backups directory yields an empty list.
func (s *Store) ListBackups() ([]string, error) {
	return s.listJSONNames(s.layout.BackupsDir())
}

func (s *Store) listJSONNames(dir string) ([]string, error) {
	exists, err := s.storage.Exists(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	if !exists {
		return []string{}, nil
	}
	entries, err := s.storage.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// The .current pointer carries no .json extension and falls out here.
		if strings.HasSuffix(name, ".json") {
			names = append(names, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// CurrentProfile returns the trimmed name recorded in the current pointer
// file, or the empty string when the pointer is absent. The name is not
// validated against existing profiles.
func (s *Store) CurrentProfile() (string, error) {
	data, err := s.storage.ReadFile(s.layout.CurrentPointerPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read current profile pointer: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetCurrentProfile overwrites the current pointer file with the raw name.
// Callers are expected to verify the profile exists first.
func (s *Store) SetCurrentProfile(name string) error {
	if err := s.storage.WriteFile(s.layout.CurrentPointerPath(), []byte(name)); err != nil {
		return fmt.Errorf("failed to write current profile pointer: %w", err)
	}
	s.logger.Debug("current profile updated", "name", name)
	return nil
}

// ProfileExists reports whether the named profile's file exists. No parse is
// attempted.
func (s *Store) ProfileExists(name string) (bool, error) {
	return s.storage.Exists(s.layout.ProfilePath(name))
}

// BackupExists reports whether the named backup's file exists.
func (s *Store) BackupExists(name string) (bool, error) {
	return s.storage.Exists(s.layout.BackupPath(name))
}

// SettingsExists reports whether the active settings file exists.
func (s *Store) SettingsExists() (bool, error) {
	return s.storage.Exists(s.layout.SettingsPath())
}

// LoadProfile reads and parses the named profile.
func (s *Store) LoadProfile(name string) (any, error) {
	return s.loadJSON(s.layout.ProfilePath(name))
}

// SaveProfile serializes the document into the named profile file.
func (s *Store) SaveProfile(name string, doc any) error {
	return s.saveJSON(s.layout.ProfilePath(name), doc)
}

// LoadSettings reads and parses the active settings file.
func (s *Store) LoadSettings() (any, error) {
	return s.loadJSON(s.layout.SettingsPath())
}

// SaveSettings serializes the document into the active settings file.
func (s *Store) SaveSettings(doc any) error {
	return s.saveJSON(s.layout.SettingsPath(), doc)
}

// LoadBackup reads and parses the named backup.
func (s *Store) LoadBackup(name string) (any, error) {
	return s.loadJSON(s.layout.BackupPath(name))
}

// SaveBackup serializes the document into the named backup file. An existing
// backup with the same name is overwritten.
func (s *Store) SaveBackup(name string, doc any) error {
	return s.saveJSON(s.layout.BackupPath(name), doc)
}

// DeleteProfile removes the named profile's backing file. Deleting a missing
// profile is an error.
func (s *Store) DeleteProfile(name string) error {
	if err := s.storage.Remove(s.layout.ProfilePath(name)); err != nil {
		return fmt.Errorf("failed to delete profile '%s': %w", name, err)
	}
	s.logger.Info("profile deleted", "name", name)
	return nil
}

func (s *Store) loadJSON(path string) (any, error) {
	data, err := s.storage.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	return doc, nil
}

// saveJSON writes the document pretty-printed. The write is a plain single
// write; there is no temp-file+rename discipline.
func (s *Store) saveJSON(path string, doc any) error {
	data, err := MarshalPretty(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize JSON for %s: %w", path, err)
	}
	if err := s.storage.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MarshalPretty serializes a document with stable two-space indentation and a
// trailing newline.
func MarshalPretty(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
