// Package osutil resolves lifelog's per-user directories through a
// swappable provider so tests can redirect or fail the OS lookups.
package osutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirPerm is the mode used for directories lifelog creates.
const DirPerm os.FileMode = 0755

// PathProvider is the set of OS lookups lifelog's paths depend on.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	Getenv(key string) string
}

// DefaultPathProvider talks to the real OS.
type DefaultPathProvider struct{}

func (DefaultPathProvider) UserConfigDir() (string, error) { return os.UserConfigDir() }

func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (DefaultPathProvider) Getenv(key string) string { return os.Getenv(key) }

// Provider is consulted by every path helper.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider swaps the provider; pair with ResetProvider in tests.
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider restores DefaultPathProvider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns <user config dir>/<name>, creating it when missing.
func AppDir(name string) (string, error) {
	base, err := Provider.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}

	dir := filepath.Join(base, name)
	if err := Provider.MkdirAll(dir, DirPerm); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// FileIn returns AppDir(name) joined with file, unless the environment
// variable env names a path, which is returned untouched.
func FileIn(env, name, file string) (string, error) {
	if env != "" {
		if p := Provider.Getenv(env); p != "" {
			return p, nil
		}
	}
	dir, err := AppDir(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}
