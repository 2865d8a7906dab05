package models

// Account is a locally registered user.
type Account struct {
	Username  string `json:"username"`
	PassHash  string `json:"passHash"`
	CreatedAt string `json:"createdAt"` // RFC3339 timestamp
}
