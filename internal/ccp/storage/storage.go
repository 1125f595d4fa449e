package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Storage provides low-level file operations with security validations.
type Storage struct {
	fs afero.Fs
}

// New creates a new Storage instance.
func New(fs afero.Fs) *Storage {
	return &Storage{fs: fs}
}

// FileSystem returns the underlying filesystem.
func (s *Storage) FileSystem() afero.Fs {
	return s.fs
}

// ValidatePathSafety checks that the path is not a symlink, preventing symlink attacks.
// It returns nil if the path doesn't exist or is a regular file/directory.
func (s *Storage) ValidatePathSafety(path string) error {
	// Try to use Lstat if the filesystem supports it
	if lstater, ok := s.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil // Non-existent paths are safe to write to
			}
			return fmt.Errorf("failed to check path: %w", err)
		}

		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("refusing to operate on symlink: %s", path)
		}
	}
	// If Lstat not available, fall through (in-memory filesystems don't support symlinks anyway)
	return nil
}

// ReadFile reads the entire file.
func (s *Storage) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

// WriteFile writes data to a file with secure permissions after checking the
// destination is not a symlink.
func (s *Storage) WriteFile(path string, data []byte) error {
	if err := s.ValidatePathSafety(path); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, path, data, 0o600)
}

// Exists checks if a path exists.
func (s *Storage) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// Stat returns file information.
func (s *Storage) Stat(path string) (os.FileInfo, error) {
	return s.fs.Stat(path)
}

// MkdirAll creates a directory and any missing parents with secure permissions.
func (s *Storage) MkdirAll(path string) error {
	return s.fs.MkdirAll(path, 0o700)
}

// ReadDir reads directory contents.
func (s *Storage) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(s.fs, path)
}

// Remove deletes a file.
func (s *Storage) Remove(path string) error {
	return s.fs.Remove(path)
}
