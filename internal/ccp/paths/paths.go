package paths

import "path/filepath"

// Directory and file name constants for the Claude Code configuration tree.
const (
	ClaudeDirName      = ".claude"
	SettingsFileName   = "settings.json"
	ProfilesDirName    = "profiles"
	BackupsDirName     = "backups"
	CurrentPointerName = ".current"
)

// Layout computes canonical paths for profiles, backups, the active settings
// file, and the current-profile pointer relative to a home directory.
type Layout struct {
	homeDir string
}

// New creates a new Layout rooted at the given home directory.
func New(homeDir string) *Layout {
	return &Layout{homeDir: homeDir}
}

// ClaudeDir returns the .claude directory path.
func (l *Layout) ClaudeDir() string {
	return filepath.Join(l.homeDir, ClaudeDirName)
}

// SettingsPath returns the path to the active settings.json file.
func (l *Layout) SettingsPath() string {
	return filepath.Join(l.ClaudeDir(), SettingsFileName)
}

// ProfilesDir returns the directory where named profiles are stored.
func (l *Layout) ProfilesDir() string {
	return filepath.Join(l.ClaudeDir(), ProfilesDirName)
}

// BackupsDir returns the directory where backups are stored.
func (l *Layout) BackupsDir() string {
	return filepath.Join(l.ClaudeDir(), BackupsDirName)
}

// CurrentPointerPath returns the path of the plain-text file recording the
// current profile name. It lives inside the profiles directory and carries no
// .json extension, so profile listings never pick it up.
func (l *Layout) CurrentPointerPath() string {
	return filepath.Join(l.ProfilesDir(), CurrentPointerName)
}

// ProfilePath returns the path for a named profile.
func (l *Layout) ProfilePath(name string) string {
	return filepath.Join(l.ProfilesDir(), name+".json")
}

// BackupPath returns the path for a named backup.
func (l *Layout) BackupPath(name string) string {
	return filepath.Join(l.BackupsDir(), name+".json")
}
