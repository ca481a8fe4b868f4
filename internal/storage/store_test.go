package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkretz/budgetwatch/internal/model"
	"github.com/mkretz/budgetwatch/internal/storage"
)

func alert(id string, order int) model.AlertConfig {
	return model.AlertConfig{
		ID:                   id,
		Name:                 "Alert " + id,
		ScopeType:            model.ScopeFolder,
		TeamID:               "t1",
		FolderID:             "f1",
		RangeMode:            model.RangeMonthly,
		BudgetHours:          10,
		WarningThresholdPct:  80,
		CriticalThresholdPct: 100,
		Active:               true,
		Order:                order,
	}
}

func TestGetAlertsMissingFile(t *testing.T) {
	s := storage.New(t.TempDir())
	alerts, err := s.GetAlerts()
	if err != nil {
		t.Fatalf("GetAlerts on missing file: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("GetAlerts = %d alerts, want 0", len(alerts))
	}
}

func TestSetAlertsAndGetAlerts(t *testing.T) {
	s := storage.New(t.TempDir())

	// Stored out of order; reads come back sorted by order.
	_, err := s.SetAlerts([]model.AlertConfig{alert("b", 1), alert("a", 0)})
	if err != nil {
		t.Fatalf("SetAlerts: %v", err)
	}

	alerts, err := s.GetAlerts()
	if err != nil {
		t.Fatalf("GetAlerts after save: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("GetAlerts = %d alerts, want 2", len(alerts))
	}
	if alerts[0].ID != "a" || alerts[1].ID != "b" {
		t.Errorf("GetAlerts order = %q, %q, want a, b", alerts[0].ID, alerts[1].ID)
	}
}

func TestGetAlertsCorruptFileBackedUp(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "alerts.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := storage.New(base)
	if _, err := s.GetAlerts(); err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}

	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupt original should be moved away, stat err = %v", err)
	}
}

func TestAddAlertAssignsNextOrder(t *testing.T) {
	s := storage.New(t.TempDir())

	for _, id := range []string{"a", "b", "c"} {
		if _, err := s.AddAlert(alert(id, 99)); err != nil {
			t.Fatalf("AddAlert %s: %v", id, err)
		}
	}

	alerts, err := s.GetAlerts()
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range alerts {
		if a.Order != i {
			t.Errorf("alert %s order = %d, want %d", a.ID, a.Order, i)
		}
	}
}

func TestDeleteAlertRenormalizesOrder(t *testing.T) {
	s := storage.New(t.TempDir())
	_, err := s.SetAlerts([]model.AlertConfig{alert("a", 0), alert("b", 1), alert("c", 2)})
	if err != nil {
		t.Fatal(err)
	}

	removed, err := s.DeleteAlert("b")
	if err != nil {
		t.Fatalf("DeleteAlert: %v", err)
	}
	if !removed {
		t.Fatal("DeleteAlert = false, want true")
	}

	alerts, err := s.GetAlerts()
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts after delete = %d, want 2", len(alerts))
	}
	if alerts[0].ID != "a" || alerts[0].Order != 0 {
		t.Errorf("first = %s/%d, want a/0", alerts[0].ID, alerts[0].Order)
	}
	if alerts[1].ID != "c" || alerts[1].Order != 1 {
		t.Errorf("second = %s/%d, want c/1", alerts[1].ID, alerts[1].Order)
	}
}

func TestDeleteAlertUnknownID(t *testing.T) {
	s := storage.New(t.TempDir())
	removed, err := s.DeleteAlert("nope")
	if err != nil {
		t.Fatalf("DeleteAlert: %v", err)
	}
	if removed {
		t.Error("DeleteAlert = true for unknown id, want false")
	}
}

func TestUpdateAlert(t *testing.T) {
	s := storage.New(t.TempDir())
	if _, err := s.AddAlert(alert("a", 0)); err != nil {
		t.Fatal(err)
	}

	updated := alert("a", 0)
	updated.Name = "renamed"
	if err := s.UpdateAlert(updated); err != nil {
		t.Fatalf("UpdateAlert: %v", err)
	}

	alerts, _ := s.GetAlerts()
	if alerts[0].Name != "renamed" {
		t.Errorf("name = %q, want %q", alerts[0].Name, "renamed")
	}

	missing := alert("ghost", 0)
	if err := s.UpdateAlert(missing); err == nil {
		t.Error("UpdateAlert for unknown id: expected error, got nil")
	}
}

func TestTokenLifecycle(t *testing.T) {
	s := storage.New(t.TempDir())

	if s.HasToken() {
		t.Error("HasToken on fresh store = true, want false")
	}
	token, err := s.GetToken()
	if err != nil || token != "" {
		t.Errorf("GetToken on fresh store = %q, %v", token, err)
	}

	if err := s.SetToken("  pk_secret  "); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	token, err = s.GetToken()
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if token != "pk_secret" {
		t.Errorf("GetToken = %q, want trimmed %q", token, "pk_secret")
	}
	if !s.HasToken() {
		t.Error("HasToken after set = false, want true")
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if s.HasToken() {
		t.Error("HasToken after clear = true, want false")
	}
	// Clearing twice is fine.
	if err := s.ClearToken(); err != nil {
		t.Errorf("ClearToken on missing token: %v", err)
	}
}

func TestUIPreferencesPartialUpdate(t *testing.T) {
	s := storage.New(t.TempDir())

	prefs, err := s.GetUIPreferences()
	if err != nil {
		t.Fatalf("GetUIPreferences on fresh store: %v", err)
	}
	if prefs.CompactCards || prefs.ShowInactive {
		t.Errorf("fresh preferences not zero: %+v", prefs)
	}

	yes := true
	team := "t1"
	prefs, err = s.SetUIPreferences(model.UIPreferencesPatch{CompactCards: &yes, LastSelectedTeamID: &team})
	if err != nil {
		t.Fatalf("SetUIPreferences: %v", err)
	}
	if !prefs.CompactCards || prefs.LastSelectedTeamID != "t1" {
		t.Errorf("after first patch: %+v", prefs)
	}

	// A later patch touching one field leaves the others alone.
	no := false
	prefs, err = s.SetUIPreferences(model.UIPreferencesPatch{ShowInactive: &no})
	if err != nil {
		t.Fatal(err)
	}
	if !prefs.CompactCards || prefs.LastSelectedTeamID != "t1" {
		t.Errorf("patch clobbered untouched fields: %+v", prefs)
	}
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	base := t.TempDir()
	s := storage.New(base)
	if _, err := s.SetAlerts([]model.AlertConfig{alert("a", 0)}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(base, "alerts.json.tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file left behind, stat err = %v", err)
	}
}
