// Package storage persists the alert collection, the API token, and UI
// preferences as JSON files under a base directory. Every mutation rewrites
// the whole file atomically (temp file then rename) so readers always see
// either the old or the new complete state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkretz/budgetwatch/internal/model"
)

// BaseDir returns the root data directory (~/.budgetwatch).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".budgetwatch"), nil
}

// Store owns the persisted files. The alert collection is exclusively owned
// here; callers operate on copies.
type Store struct {
	base string
}

// New creates a store rooted at base.
func New(base string) *Store {
	return &Store{base: base}
}

func (s *Store) alertsPath() string { return filepath.Join(s.base, "alerts.json") }
func (s *Store) tokenPath() string  { return filepath.Join(s.base, "auth", "token") }
func (s *Store) prefsPath() string  { return filepath.Join(s.base, "prefs.json") }

// alertsFile is the top-level structure of alerts.json.
type alertsFile struct {
	Alerts []model.AlertConfig `json:"alerts"`
}

// GetAlerts loads all persisted alerts sorted by order. A missing file means
// an empty collection.
func (s *Store) GetAlerts() ([]model.AlertConfig, error) {
	path := s.alertsPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []model.AlertConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var f alertsFile
	if err := json.Unmarshal(data, &f); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	model.SortAlerts(f.Alerts)
	return f.Alerts, nil
}

// SetAlerts replaces the whole persisted collection atomically and returns
// it re-sorted by order.
func (s *Store) SetAlerts(alerts []model.AlertConfig) ([]model.AlertConfig, error) {
	if alerts == nil {
		alerts = []model.AlertConfig{}
	}
	model.SortAlerts(alerts)
	data, err := json.MarshalIndent(alertsFile{Alerts: alerts}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling alerts: %w", err)
	}
	if err := s.writeAtomic(s.alertsPath(), data); err != nil {
		return nil, err
	}
	return alerts, nil
}

// AddAlert appends a new alert at the end of the ordering and persists.
func (s *Store) AddAlert(alert model.AlertConfig) ([]model.AlertConfig, error) {
	alerts, err := s.GetAlerts()
	if err != nil {
		return nil, err
	}
	alert.Order = len(alerts)
	return s.SetAlerts(append(alerts, alert))
}

// DeleteAlert removes an alert by id and renormalizes the remaining order
// values so they stay contiguous from zero.
func (s *Store) DeleteAlert(id string) (bool, error) {
	alerts, err := s.GetAlerts()
	if err != nil {
		return false, err
	}
	kept := alerts[:0]
	removed := false
	for _, a := range alerts {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return false, nil
	}
	model.NormalizeOrder(kept)
	_, err = s.SetAlerts(kept)
	return true, err
}

// UpdateAlert replaces the stored alert with the same id and persists.
func (s *Store) UpdateAlert(alert model.AlertConfig) error {
	alerts, err := s.GetAlerts()
	if err != nil {
		return err
	}
	for i := range alerts {
		if alerts[i].ID == alert.ID {
			alerts[i] = alert
			_, err := s.SetAlerts(alerts)
			return err
		}
	}
	return fmt.Errorf("no alert with id %s", alert.ID)
}

// GetToken returns the stored API token, or "" when none is configured.
func (s *Store) GetToken() (string, error) {
	data, err := os.ReadFile(s.tokenPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage error reading token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetToken persists the API token with owner-only permissions.
func (s *Store) SetToken(token string) error {
	return s.writeAtomic(s.tokenPath(), []byte(strings.TrimSpace(token)+"\n"))
}

// ClearToken removes the stored token. Removing a missing token is not an
// error.
func (s *Store) ClearToken() error {
	err := os.Remove(s.tokenPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error removing token: %w", err)
	}
	return nil
}

// HasToken reports whether a non-empty token is stored.
func (s *Store) HasToken() bool {
	token, err := s.GetToken()
	return err == nil && token != ""
}

// GetUIPreferences loads the display preferences, defaulting on first use.
func (s *Store) GetUIPreferences() (model.UIPreferences, error) {
	data, err := os.ReadFile(s.prefsPath())
	if os.IsNotExist(err) {
		return model.UIPreferences{}, nil
	}
	if err != nil {
		return model.UIPreferences{}, fmt.Errorf("storage error reading preferences: %w", err)
	}
	var prefs model.UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return model.UIPreferences{}, fmt.Errorf("corrupt preferences file %s: %w", s.prefsPath(), err)
	}
	return prefs, nil
}

// SetUIPreferences applies a partial update and persists the merged result.
func (s *Store) SetUIPreferences(patch model.UIPreferencesPatch) (model.UIPreferences, error) {
	prefs, err := s.GetUIPreferences()
	if err != nil {
		return prefs, err
	}
	prefs.Apply(patch)
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return prefs, fmt.Errorf("storage error marshalling preferences: %w", err)
	}
	return prefs, s.writeAtomic(s.prefsPath(), data)
}

// writeAtomic writes data via a temp file and rename.
func (s *Store) writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
