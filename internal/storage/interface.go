package storage

import "github.com/julianstephens/upbeat/internal/models"

// Provider is a storage backend. Accounts and the session are global;
// everything else is namespaced by username through ForUser.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Accounts() AccountRepository
	ForUser(username string) UserRepository

	// Utils
	GetConfigPath() string
}

type AccountRepository interface {
	ListAccounts() ([]models.Account, error)
	// GetAccount returns errors.ErrNotFound when no account has username.
	GetAccount(username string) (models.Account, error)
	// AddAccount returns errors.ErrDuplicateUsername when username is taken.
	AddAccount(models.Account) error

	// GetSession returns the active username, or "" when nobody is logged in.
	GetSession() (string, error)
	SetSession(username string) error
	ClearSession() error
}

// UserRepository reads and replaces one user's collections. Every Save
// replaces the whole collection.
type UserRepository interface {
	GetTasks() ([]models.Task, error)
	SaveTasks([]models.Task) error

	GetChecks() ([]models.Check, error)
	SaveChecks([]models.Check) error

	// GetPreferences returns the defaults when nothing was saved yet.
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	GetPlanned() (models.PlannedDays, error)
	SavePlanned(models.PlannedDays) error
}
