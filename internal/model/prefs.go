package model

// UIPreferences are the persisted display preferences consumed by the
// status command.
type UIPreferences struct {
	CompactCards       bool   `json:"compact_cards"`
	ShowInactive       bool   `json:"show_inactive"`
	LastSelectedTeamID string `json:"last_selected_team_id,omitempty"`
}

// UIPreferencesPatch is a partial update; nil fields are left unchanged.
type UIPreferencesPatch struct {
	CompactCards       *bool   `json:"compact_cards,omitempty"`
	ShowInactive       *bool   `json:"show_inactive,omitempty"`
	LastSelectedTeamID *string `json:"last_selected_team_id,omitempty"`
}

// Apply merges the patch into p.
func (p *UIPreferences) Apply(patch UIPreferencesPatch) {
	if patch.CompactCards != nil {
		p.CompactCards = *patch.CompactCards
	}
	if patch.ShowInactive != nil {
		p.ShowInactive = *patch.ShowInactive
	}
	if patch.LastSelectedTeamID != nil {
		p.LastSelectedTeamID = *patch.LastSelectedTeamID
	}
}
