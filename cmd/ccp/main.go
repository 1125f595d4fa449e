package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/example/claude-code-profiles/internal/ccp"
	"github.com/example/claude-code-profiles/internal/ccp/paths"
	"github.com/example/claude-code-profiles/internal/ccp/profile"
	"github.com/example/claude-code-profiles/internal/ccp/storage"
	"github.com/example/claude-code-profiles/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := resolveHomeDir()
	if err != nil {
		return err
	}

	logger := newLogger()
	store := profile.NewStore(storage.New(afero.NewOsFs()), paths.New(home), logger)
	svc, err := ccp.NewService(store, logger)
	if err != nil {
		return err
	}

	root := cli.NewRootCommand(svc, cli.NewPromptUI(), os.Stdout, os.Stderr)
	return root.Execute()
}

// resolveHomeDir returns the directory holding .claude. CCP_HOME overrides the
// user's home directory for tests and automation.
func resolveHomeDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("CCP_HOME")); override != "" {
		return override, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return home, nil
}

// newLogger returns a debug logger on stderr when CCP_DEBUG is set, nil
// (discard) otherwise.
func newLogger() *slog.Logger {
	if os.Getenv("CCP_DEBUG") == "" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
