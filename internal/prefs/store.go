package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, one file each, mirroring the mobile clients' key-value
// entries.
const (
	KeyTheme         = "theme"
	KeyAccentColor   = "accentColor"
	KeyTextSize      = "textSize"
	KeyNotifications = "notificationSettings"
)

// Store is a tiny file-backed key-value store for device preferences.
// Each key lives in its own file so entries stay independently readable
// and writable.
type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// DefaultDir returns ~/.config/quotevault.
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "quotevault"), nil
}

// Get returns the stored value, or "" when the key was never written.
func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read pref %q: %w", key, err)
	}
	return string(data), nil
}

// Set writes the value durably via a temp file and rename.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write pref %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit pref %q: %w", key, err)
	}
	return nil
}
