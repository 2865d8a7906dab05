package models

// Snapshot is the portable export of one user's data. Its key names are the
// backup file contract and must not change.
type Snapshot struct {
	Prefs   Preferences `json:"prefs"`
	Tasks   []Task      `json:"tasks"`
	Checks  []Check     `json:"checks"`
	Planned PlannedDays `json:"planned"`
}
