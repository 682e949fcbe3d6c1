package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ReadFile returns the contents of path as text.
func (a *App) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(b), nil
}

// WriteFile writes content to path, creating parent directories as needed.
func (a *App) WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// SaveBundle writes files into bundleDir/bundleName and returns that path.
// File names must stay inside the bundle directory.
func (a *App) SaveBundle(bundleDir, bundleName string, files map[string]string) (string, error) {
	if !filepath.IsLocal(bundleName) {
		return "", fmt.Errorf("invalid bundle name %q", bundleName)
	}
	bundlePath := filepath.Join(bundleDir, bundleName)
	if err := os.MkdirAll(bundlePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create bundle directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !filepath.IsLocal(name) {
			return "", fmt.Errorf("failed to write %s: %w", name, errInvalidBundleFile)
		}
		target := filepath.Join(bundlePath, name)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := os.WriteFile(target, []byte(files[name]), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	a.logf(a.logInfo, "saved bundle %s (%d files)", bundlePath, len(names))
	return bundlePath, nil
}

var errInvalidBundleFile = errors.New("file name escapes the bundle directory")

// GetHomeDir returns the current user's home directory.
func (a *App) GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("could not determine home directory")
	}
	return home, nil
}
