// Package ccp contains the core logic for managing named Claude Code
// configuration profiles: switching, creating, editing by dotted key path,
// diffing, backing up and restoring. It performs no user interaction and
// produces no formatted output; callers render its structured results.
package ccp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/example/claude-code-profiles/internal/ccp/domain"
	"github.com/example/claude-code-profiles/internal/ccp/keypath"
	"github.com/example/claude-code-profiles/internal/ccp/profile"
	"github.com/example/claude-code-profiles/internal/ccp/validator"
)

const (
	// DefaultProfileName is the profile bootstrapped by init and the fallback
	// target when no current profile is recorded.
	DefaultProfileName = "default"

	settingsSchemaURL = "https://json.schemastore.org/claude-code-settings.json"

	backupTimeFormat = "20060102-150405"
)

// Service exposes the profile lifecycle operations. Each invocation re-reads
// everything from disk; no state is retained between calls.
type Service struct {
	store     *profile.Store
	validator *validator.Validator
	nowFunc   func() time.Time
	logger    *slog.Logger
}

// NewService creates a Service over the given store. A nil logger discards
// all log output.
func NewService(store *profile.Store, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:     store,
		validator: validator.New(),
		nowFunc:   time.Now,
		logger:    logger,
	}, nil
}

// SetNow overrides the clock used for generated backup names. Passing nil
// restores the real clock.
func (s *Service) SetNow(now func() time.Time) {
	if now == nil {
		s.nowFunc = time.Now
		return
	}
	s.nowFunc = now
}

// Store returns the underlying profile store.
func (s *Service) Store() *profile.Store {
	return s.store
}

// EmptySettings returns the schema stub used when no settings file exists yet.
func EmptySettings() map[string]any {
	return map[string]any{"$schema": settingsSchemaURL}
}

// InitResult describes what Init did.
type InitResult struct {
	CreatedDefault bool
	FromSettings   bool
	ProfilesDir    string
	BackupsDir     string
}

// Init ensures the directory structure exists and bootstraps a default
// profile: from the existing settings file when one exists and no profiles are
// stored yet, or from an empty schema stub when there is no settings file.
func (s *Service) Init() (InitResult, error) {
	result := InitResult{
		ProfilesDir: s.store.Layout().ProfilesDir(),
		BackupsDir:  s.store.Layout().BackupsDir(),
	}
	if err := s.store.EnsureDirs(); err != nil {
		return result, err
	}

	settingsExists, err := s.store.SettingsExists()
	if err != nil {
		return result, err
	}
	profiles, err := s.store.ListProfiles()
	if err != nil {
		return result, err
	}

	switch {
	case settingsExists && len(profiles) == 0:
		settings, err := s.store.LoadSettings()
		if err != nil {
			return result, err
		}
		if err := s.store.SaveProfile(DefaultProfileName, settings); err != nil {
			return result, err
		}
		if err := s.store.SetCurrentProfile(DefaultProfileName); err != nil {
			return result, err
		}
		result.CreatedDefault = true
		result.FromSettings = true
	case !settingsExists:
		stub := EmptySettings()
		if err := s.store.SaveSettings(stub); err != nil {
			return result, err
		}
		if err := s.store.SaveProfile(DefaultProfileName, stub); err != nil {
			return result, err
		}
		if err := s.store.SetCurrentProfile(DefaultProfileName); err != nil {
			return result, err
		}
		result.CreatedDefault = true
	}
	return result, nil
}

// ListEntry is one profile in a listing.
type ListEntry struct {
	Name    string
	Current bool
}

// List returns all stored profiles, marking the one the current pointer names.
// A dangling pointer simply marks nothing.
func (s *Service) List() ([]ListEntry, error) {
	names, err := s.store.ListProfiles()
	if err != nil {
		return nil, err
	}
	current, err := s.store.CurrentProfile()
	if err != nil {
		return nil, err
	}
	entries := make([]ListEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, ListEntry{Name: name, Current: name == current})
	}
	return entries, nil
}

// Current returns the recorded current profile name, or the empty string when
// none is recorded. The name is not validated against existing profiles.
func (s *Service) Current() (string, error) {
	return s.store.CurrentProfile()
}

// ListBackups returns the sorted names of stored backups.
func (s *Service) ListBackups() ([]string, error) {
	return s.store.ListBackups()
}

// Use applies the named profile to the active settings file and records it as
// current.
func (s *Service) Use(name string) error {
	if err := s.requireProfile(name); err != nil {
		return err
	}
	doc, err := s.store.LoadProfile(name)
	if err != nil {
		return err
	}
	if err := s.store.SaveSettings(doc); err != nil {
		return err
	}
	if err := s.store.SetCurrentProfile(name); err != nil {
		return err
	}
	s.logger.Info("profile activated", "name", name)
	return nil
}

// Create stores a new profile. With a non-empty from, the source profile is
// copied; otherwise the active settings are used, or an empty schema stub when
// no settings file exists. Returns a description of the source used.
func (s *Service) Create(name, from string) (string, error) {
	normalized, err := s.validator.NormalizeName(name)
	if err != nil {
		return "", err
	}
	if err := s.store.EnsureDirs(); err != nil {
		return "", err
	}
	exists, err := s.store.ProfileExists(normalized)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("profile '%s': %w", normalized, domain.ErrProfileExists)
	}

	var doc any
	source := "current settings"
	if from != "" {
		if err := s.requireProfile(from); err != nil {
			return "", err
		}
		doc, err = s.store.LoadProfile(from)
		if err != nil {
			return "", err
		}
		source = fmt.Sprintf("'%s'", from)
	} else {
		settingsExists, err := s.store.SettingsExists()
		if err != nil {
			return "", err
		}
		if settingsExists {
			doc, err = s.store.LoadSettings()
			if err != nil {
				return "", err
			}
		} else {
			doc = EmptySettings()
			source = "empty template"
		}
	}

	if err := s.store.SaveProfile(normalized, doc); err != nil {
		return "", err
	}
	s.logger.Info("profile created", "name", normalized, "source", source)
	return source, nil
}

// Delete removes the named profile. When it was the current profile and a
// distinct default profile exists, the default is activated first; the name of
// the profile switched to is returned, or the empty string.
func (s *Service) Delete(name string) (string, error) {
	if err := s.requireProfile(name); err != nil {
		return "", err
	}

	switchedTo := ""
	current, err := s.store.CurrentProfile()
	if err != nil {
		return "", err
	}
	if current == name && name != DefaultProfileName {
		hasDefault, err := s.store.ProfileExists(DefaultProfileName)
		if err != nil {
			return "", err
		}
		if hasDefault {
			if err := s.Use(DefaultProfileName); err != nil {
				return "", err
			}
			switchedTo = DefaultProfileName
		}
	}

	if err := s.store.DeleteProfile(name); err != nil {
		return "", err
	}
	return switchedTo, nil
}

// Copy duplicates src under the new name dst.
func (s *Service) Copy(src, dst string) error {
	normalized, err := s.validator.NormalizeName(dst)
	if err != nil {
		return err
	}
	if err := s.requireProfile(src); err != nil {
		return err
	}
	exists, err := s.store.ProfileExists(normalized)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("profile '%s': %w", normalized, domain.ErrProfileExists)
	}
	doc, err := s.store.LoadProfile(src)
	if err != nil {
		return err
	}
	return s.store.SaveProfile(normalized, doc)
}

// Rename moves a profile to a new name, updating the current pointer when it
// named the old profile.
func (s *Service) Rename(old, new string) error {
	normalized, err := s.validator.NormalizeName(new)
	if err != nil {
		return err
	}
	if err := s.requireProfile(old); err != nil {
		return err
	}
	exists, err := s.store.ProfileExists(normalized)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("profile '%s': %w", normalized, domain.ErrProfileExists)
	}
	doc, err := s.store.LoadProfile(old)
	if err != nil {
		return err
	}
	if err := s.store.SaveProfile(normalized, doc); err != nil {
		return err
	}
	if err := s.store.DeleteProfile(old); err != nil {
		return err
	}
	current, err := s.store.CurrentProfile()
	if err != nil {
		return err
	}
	if current == old {
		return s.store.SetCurrentProfile(normalized)
	}
	return nil
}

// ResolveProfileArg maps an optional --profile argument to a concrete profile
// name: the argument itself, else the current profile, else "default".
func (s *Service) ResolveProfileArg(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	current, err := s.store.CurrentProfile()
	if err != nil {
		return "", err
	}
	if current == "" {
		return DefaultProfileName, nil
	}
	return current, nil
}

// ParseValue interprets a user-supplied value string: valid JSON is taken as
// JSON, anything else as a plain string literal.
func ParseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}

// SetValue sets a dotted key path inside the resolved profile and reports the
// profile name and whether the change was mirrored into the active settings.
func (s *Service) SetValue(profileArg, key string, value any) (string, bool, error) {
	name, err := s.ResolveProfileArg(profileArg)
	if err != nil {
		return "", false, err
	}
	if err := s.requireProfile(name); err != nil {
		return "", false, err
	}
	doc, err := s.store.LoadProfile(name)
	if err != nil {
		return name, false, err
	}
	if err := keypath.Set(doc, key, value); err != nil {
		return name, false, err
	}
	if err := s.store.SaveProfile(name, doc); err != nil {
		return name, false, err
	}
	applied, err := s.applyIfCurrent(name, doc)
	return name, applied, err
}

// GetValue resolves a dotted key path inside the resolved profile. A missing
// path is reported as found=false, not an error.
func (s *Service) GetValue(profileArg, key string) (any, bool, string, error) {
	name, err := s.ResolveProfileArg(profileArg)
	if err != nil {
		return nil, false, "", err
	}
	if err := s.requireProfile(name); err != nil {
		return nil, false, "", err
	}
	doc, err := s.store.LoadProfile(name)
	if err != nil {
		return nil, false, name, err
	}
	value, found := keypath.Get(doc, key)
	return value, found, name, nil
}

// UnsetValue removes a dotted key path from the resolved profile, reporting
// whether a removal occurred and whether settings were updated.
func (s *Service) UnsetValue(profileArg, key string) (bool, bool, string, error) {
	name, err := s.ResolveProfileArg(profileArg)
	if err != nil {
		return false, false, "", err
	}
	if err := s.requireProfile(name); err != nil {
		return false, false, "", err
	}
	doc, err := s.store.LoadProfile(name)
	if err != nil {
		return false, false, name, err
	}
	if !keypath.Unset(doc, key) {
		return false, false, name, nil
	}
	if err := s.store.SaveProfile(name, doc); err != nil {
		return true, false, name, err
	}
	applied, err := s.applyIfCurrent(name, doc)
	return true, applied, name, err
}

// Export returns the resolved profile pretty-printed.
func (s *Service) Export(profileArg string) ([]byte, string, error) {
	name, err := s.ResolveProfileArg(profileArg)
	if err != nil {
		return nil, "", err
	}
	if err := s.requireProfile(name); err != nil {
		return nil, "", err
	}
	doc, err := s.store.LoadProfile(name)
	if err != nil {
		return nil, name, err
	}
	data, err := profile.MarshalPretty(doc)
	if err != nil {
		return nil, name, err
	}
	return data, name, nil
}

// Import stores a new profile from a JSON stream, rejecting existing names.
func (s *Service) Import(name string, r io.Reader) error {
	normalized, err := s.validator.NormalizeName(name)
	if err != nil {
		return err
	}
	if err := s.store.EnsureDirs(); err != nil {
		return err
	}
	exists, err := s.store.ProfileExists(normalized)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("profile '%s': %w", normalized, domain.ErrProfileExists)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON from stdin: %w", err)
	}
	return s.store.SaveProfile(normalized, doc)
}

// DiffResult carries both profiles pretty-printed for the caller to render.
type DiffResult struct {
	Left      []byte
	Right     []byte
	Identical bool
}

// Diff loads both profiles and returns their pretty-printed forms.
func (s *Service) Diff(a, b string) (DiffResult, error) {
	var result DiffResult
	if err := s.requireProfile(a); err != nil {
		return result, err
	}
	if err := s.requireProfile(b); err != nil {
		return result, err
	}
	docA, err := s.store.LoadProfile(a)
	if err != nil {
		return result, err
	}
	docB, err := s.store.LoadProfile(b)
	if err != nil {
		return result, err
	}
	result.Left, err = profile.MarshalPretty(docA)
	if err != nil {
		return result, err
	}
	result.Right, err = profile.MarshalPretty(docB)
	if err != nil {
		return result, err
	}
	result.Identical = string(result.Left) == string(result.Right)
	return result, nil
}

// Backup snapshots the active settings under the given name, or under a
// timestamped name when empty. Returns the backup name and its path.
func (s *Service) Backup(name string) (string, string, error) {
	if err := s.store.EnsureDirs(); err != nil {
		return "", "", err
	}
	exists, err := s.store.SettingsExists()
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", errors.New("no settings.json found to backup")
	}
	if name == "" {
		name = "backup-" + s.nowFunc().Format(backupTimeFormat)
	}
	doc, err := s.store.LoadSettings()
	if err != nil {
		return "", "", err
	}
	if err := s.store.SaveBackup(name, doc); err != nil {
		return "", "", err
	}
	s.logger.Info("backup created", "name", name)
	return name, s.store.Layout().BackupPath(name), nil
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	From       string
	AutoBackup string
}

// Restore overwrites the active settings from a backup, or from a profile when
// no backup carries the name. The current settings are snapshotted under an
// auto-generated pre-restore name first.
func (s *Service) Restore(ref string) (RestoreResult, error) {
	var result RestoreResult

	var doc any
	backupExists, err := s.store.BackupExists(ref)
	if err != nil {
		return result, err
	}
	if backupExists {
		doc, err = s.store.LoadBackup(ref)
	} else {
		profileExists, perr := s.store.ProfileExists(ref)
		if perr != nil {
			return result, perr
		}
		if !profileExists {
			return result, fmt.Errorf("backup '%s': %w", ref, domain.ErrBackupNotFound)
		}
		doc, err = s.store.LoadProfile(ref)
	}
	if err != nil {
		return result, err
	}

	settingsExists, err := s.store.SettingsExists()
	if err != nil {
		return result, err
	}
	if settingsExists {
		if err := s.store.EnsureDirs(); err != nil {
			return result, err
		}
		current, err := s.store.LoadSettings()
		if err != nil {
			return result, err
		}
		autoName := "pre-restore-" + s.nowFunc().Format(backupTimeFormat)
		if err := s.store.SaveBackup(autoName, current); err != nil {
			return result, err
		}
		result.AutoBackup = autoName
	}

	if err := s.store.SaveSettings(doc); err != nil {
		return result, err
	}
	result.From = ref
	s.logger.Info("settings restored", "from", ref, "auto_backup", result.AutoBackup)
	return result, nil
}

func (s *Service) requireProfile(name string) error {
	exists, err := s.store.ProfileExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("profile '%s': %w", name, domain.ErrProfileNotFound)
	}
	return nil
}

func (s *Service) applyIfCurrent(name string, doc any) (bool, error) {
	current, err := s.store.CurrentProfile()
	if err != nil {
		return false, err
	}
	if current != name {
		return false, nil
	}
	if err := s.store.SaveSettings(doc); err != nil {
		return false, err
	}
	return true, nil
}
