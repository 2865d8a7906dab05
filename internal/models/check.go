package models

// Check records that a task was completed on a date. Checks are immutable
// history: TaskID is a reference only and may outlive the task it names.
type Check struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD format
	TaskID   string `json:"taskId"`
	Template bool   `json:"template,omitempty"` // TaskID is a template reference, not a task id
	InTime   bool   `json:"inTime"`
	MakeUp   bool   `json:"makeUp"`
}
