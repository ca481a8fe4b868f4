package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mkretz/budgetwatch/internal/model"
)

func validAlert() model.AlertConfig {
	return model.AlertConfig{
		ID:                   "a1",
		Name:                 "Backend",
		ScopeType:            model.ScopeFolder,
		TeamID:               "t1",
		FolderID:             "f1",
		RangeMode:            model.RangeMonthly,
		BudgetHours:          50,
		WarningThresholdPct:  80,
		CriticalThresholdPct: 100,
	}
}

func TestValidateAlert(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.AlertConfig)
		wantErr bool
	}{
		{"valid folder alert", func(a *model.AlertConfig) {}, false},
		{"valid list alert", func(a *model.AlertConfig) {
			a.ScopeType = model.ScopeList
			a.ListID = "l1"
		}, false},
		{"valid custom scope", func(a *model.AlertConfig) {
			a.ScopeType = model.ScopeCustom
			a.CustomScope = model.ScopeList
			a.ListID = "l1"
		}, false},
		{"valid custom range", func(a *model.AlertConfig) {
			a.RangeMode = model.RangeCustom
			a.StartDate = "2026-08-01"
			a.EndDate = "2026-08-31"
		}, false},
		{"custom range with open bounds", func(a *model.AlertConfig) {
			a.RangeMode = model.RangeCustom
		}, false},
		{"unknown scope type", func(a *model.AlertConfig) { a.ScopeType = "project" }, true},
		{"custom scope without discriminator", func(a *model.AlertConfig) {
			a.ScopeType = model.ScopeCustom
			a.CustomScope = ""
		}, true},
		{"missing team", func(a *model.AlertConfig) { a.TeamID = "" }, true},
		{"folder scope without folder", func(a *model.AlertConfig) { a.FolderID = "" }, true},
		{"list scope without list", func(a *model.AlertConfig) {
			a.ScopeType = model.ScopeList
			a.ListID = ""
		}, true},
		{"unknown range mode", func(a *model.AlertConfig) { a.RangeMode = "weekly" }, true},
		{"malformed date", func(a *model.AlertConfig) {
			a.RangeMode = model.RangeCustom
			a.StartDate = "08/01/2026"
		}, true},
		{"zero budget", func(a *model.AlertConfig) { a.BudgetHours = 0 }, true},
		{"negative budget", func(a *model.AlertConfig) { a.BudgetHours = -5 }, true},
		{"zero warning threshold", func(a *model.AlertConfig) { a.WarningThresholdPct = 0 }, true},
		{"warning at critical", func(a *model.AlertConfig) {
			a.WarningThresholdPct = 100
			a.CriticalThresholdPct = 100
		}, true},
		{"warning above critical", func(a *model.AlertConfig) {
			a.WarningThresholdPct = 120
		}, true},
		{"critical beyond cap", func(a *model.AlertConfig) {
			a.CriticalThresholdPct = 1500
		}, true},
		{"negative refresh frequency", func(a *model.AlertConfig) {
			a.RefreshFrequencyMinutes = -1
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAlert()
			tt.mutate(&a)
			err := model.ValidateAlert(&a)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, model.ErrValidation) {
					t.Errorf("error %v does not wrap ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEffectiveScope(t *testing.T) {
	a := validAlert()
	if got := a.EffectiveScope(); got != model.ScopeFolder {
		t.Errorf("EffectiveScope = %q, want folder", got)
	}

	a.ScopeType = model.ScopeCustom
	a.CustomScope = model.ScopeList
	if got := a.EffectiveScope(); got != model.ScopeList {
		t.Errorf("EffectiveScope for custom = %q, want list", got)
	}
}

func TestNormalizeOrder(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	alerts := []model.AlertConfig{
		{ID: "c", Order: 7},
		{ID: "a", Order: 2, CreatedAt: early},
		{ID: "b", Order: 2, CreatedAt: late},
	}
	model.NormalizeOrder(alerts)

	wantIDs := []string{"a", "b", "c"}
	for i, want := range wantIDs {
		if alerts[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, alerts[i].ID, want)
		}
		if alerts[i].Order != i {
			t.Errorf("alert %s order = %d, want %d", alerts[i].ID, alerts[i].Order, i)
		}
	}
}
