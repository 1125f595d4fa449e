package profile

// Tests for the profile store: listing, current-pointer tracking, JSON
// load/save with distinguishable read and parse failures, deletion.

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/example/claude-code-profiles/internal/ccp/paths"
	"github.com/example/claude-code-profiles/internal/ccp/storage"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := NewStore(storage.New(fs), paths.New("/home/test"), nil)
	return store, fs
}

func TestListProfilesMissingDir(t *testing.T) {
	store, _ := newTestStore(t)

	names, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty list for missing dir, got %v", names)
	}
}

func TestListProfilesSortedAndFiltered(t *testing.T) {
	store, fs := newTestStore(t)
	dir := store.Layout().ProfilesDir()

	for _, name := range []string{"zeta.json", "alpha.json", "beta.json", ".current", "notes.txt"} {
		if err := afero.WriteFile(fs, dir+"/"+name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("setup %s: %v", name, err)
		}
	}

	names, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	want := []string{"alpha", "beta", "zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListProfiles = %v, want %v", names, want)
	}
}

func TestListProfilesCaseSensitive(t *testing.T) {
	store, fs := newTestStore(t)
	dir := store.Layout().ProfilesDir()

	for _, name := range []string{"Work.json", "work.json"} {
		if err := afero.WriteFile(fs, dir+"/"+name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	names, err := store.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("profile names are case-sensitive, expected both, got %v", names)
	}
}

func TestListBackups(t *testing.T) {
	store, fs := newTestStore(t)
	dir := store.Layout().BackupsDir()

	if err := afero.WriteFile(fs, dir+"/my-backup.json", []byte("{}"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	names, err := store.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"my-backup"}) {
		t.Errorf("ListBackups = %v", names)
	}
}

func TestCurrentProfileAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	name, err := store.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if name != "" {
		t.Errorf("expected empty name when pointer absent, got %q", name)
	}
}

func TestCurrentProfileTrimsWhitespace(t *testing.T) {
	store, fs := newTestStore(t)

	if err := afero.WriteFile(fs, store.Layout().CurrentPointerPath(), []byte("  work\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	name, err := store.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if name != "work" {
		t.Errorf("expected trimmed name, got %q", name)
	}
}

func TestSetCurrentProfileRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	if err := store.SetCurrentProfile("personal"); err != nil {
		t.Fatalf("SetCurrentProfile failed: %v", err)
	}
	name, err := store.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if name != "personal" {
		t.Errorf("expected personal, got %q", name)
	}
}

// The pointer is not validated against existing profiles; a dangling name is
// returned as-is.
func TestCurrentProfileDanglingPointer(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if err := store.SetCurrentProfile("deleted-profile"); err != nil {
		t.Fatalf("SetCurrentProfile failed: %v", err)
	}

	name, err := store.CurrentProfile()
	if err != nil {
		t.Fatalf("CurrentProfile failed: %v", err)
	}
	if name != "deleted-profile" {
		t.Errorf("expected stale name to be returned, got %q", name)
	}
	exists, err := store.ProfileExists(name)
	if err != nil {
		t.Fatalf("ProfileExists failed: %v", err)
	}
	if exists {
		t.Error("fixture error: profile should not exist")
	}
}

func TestSaveLoadProfileRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	doc := map[string]any{"model": "sonnet-4", "env": map[string]any{"KEY": "value"}}
	if err := store.SaveProfile("work", doc); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := store.LoadProfile("work")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, map[string]any{"model": "sonnet-4", "env": map[string]any{"KEY": "value"}}) {
		t.Errorf("round trip mismatch: %v", loaded)
	}
}

func TestSaveProfilePrettyPrinted(t *testing.T) {
	store, fs := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	if err := store.SaveProfile("work", map[string]any{"model": "sonnet-4"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	raw, err := afero.ReadFile(fs, store.Layout().ProfilePath("work"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "\n  \"model\": \"sonnet-4\"\n") {
		t.Errorf("expected indented output, got %q", content)
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestLoadProfileMissingIsReadError(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.LoadProfile("ghost")
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error naming the path, got %v", err)
	}
	if !strings.Contains(err.Error(), store.Layout().ProfilePath("ghost")) {
		t.Errorf("expected offending path in error, got %v", err)
	}
}

func TestLoadProfileInvalidJSONIsParseError(t *testing.T) {
	store, fs := newTestStore(t)

	path := store.Layout().ProfilePath("broken")
	if err := afero.WriteFile(fs, path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := store.LoadProfile("broken")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "failed to parse JSON") {
		t.Errorf("expected parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected offending path in error, got %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	exists, err := store.SettingsExists()
	if err != nil {
		t.Fatalf("SettingsExists: %v", err)
	}
	if exists {
		t.Fatal("settings should not exist yet")
	}

	if err := store.SaveSettings(map[string]any{"model": "opus-4"}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	doc, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !reflect.DeepEqual(doc, map[string]any{"model": "opus-4"}) {
		t.Errorf("unexpected settings: %v", doc)
	}
}

func TestBackupRoundTripAndOverwrite(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	if err := store.SaveBackup("snap", map[string]any{"v": float64(1)}); err != nil {
		t.Fatalf("SaveBackup failed: %v", err)
	}
	// Name collisions overwrite
	if err := store.SaveBackup("snap", map[string]any{"v": float64(2)}); err != nil {
		t.Fatalf("SaveBackup overwrite failed: %v", err)
	}

	doc, err := store.LoadBackup("snap")
	if err != nil {
		t.Fatalf("LoadBackup failed: %v", err)
	}
	if !reflect.DeepEqual(doc, map[string]any{"v": float64(2)}) {
		t.Errorf("expected overwritten backup, got %v", doc)
	}
}

func TestDeleteProfile(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if err := store.SaveProfile("doomed", map[string]any{}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	if err := store.DeleteProfile("doomed"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	exists, err := store.ProfileExists("doomed")
	if err != nil {
		t.Fatalf("ProfileExists failed: %v", err)
	}
	if exists {
		t.Error("profile should be gone")
	}

	if err := store.DeleteProfile("doomed"); err == nil {
		t.Error("expected error deleting a missing profile")
	}
}

func TestEnsureDirsIdempotent(t *testing.T) {
	store, fs := newTestStore(t)

	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs should be idempotent: %v", err)
	}

	for _, dir := range []string{store.Layout().ProfilesDir(), store.Layout().BackupsDir()} {
		info, err := fs.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}
}
