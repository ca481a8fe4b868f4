package model

// ScopeTree is a read-through hierarchical view of the workspace:
// Team → Folder[] → List[]. It is used to validate that an alert's configured
// scope still exists and to hydrate display names; it is never persisted.
type ScopeTree struct {
	Teams []Team `json:"teams"`
}

// Team is a workspace in provider terms.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Folders []Folder `json:"folders"`
}

// Folder groups lists inside a team.
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Lists []List `json:"lists"`
}

// List is the smallest container tasks live in.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FindTeam returns the team with the given id, or nil.
func (t *ScopeTree) FindTeam(id string) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

// FindFolder returns the folder with the given id, or nil.
func (t *Team) FindFolder(id string) *Folder {
	for i := range t.Folders {
		if t.Folders[i].ID == id {
			return &t.Folders[i]
		}
	}
	return nil
}

// FindList searches all folders of the team for the list with the given id.
func (t *Team) FindList(id string) *List {
	for i := range t.Folders {
		for j := range t.Folders[i].Lists {
			if t.Folders[i].Lists[j].ID == id {
				return &t.Folders[i].Lists[j]
			}
		}
	}
	return nil
}
