package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
)

// Document is the on-disk layout of a JSON store: the global account list
// and session plus one namespace per user.
type Document struct {
	Version int                  `json:"version"`
	Users   []models.Account     `json:"users"`
	Session string               `json:"session,omitempty"`
	Data    map[string]*UserData `json:"data"`
}

// UserData is one user's namespace.
type UserData struct {
	Tasks   []models.Task       `json:"tasks"`
	Checks  []models.Check      `json:"checks"`
	Prefs   *models.Preferences `json:"prefs,omitempty"`
	Planned models.PlannedDays  `json:"planned"`
}

type JSONStore struct {
	path string
	doc  *Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &Document{
		Version: 1,
		Users:   []models.Account{},
		Data:    make(map[string]*UserData),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &Document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.doc.Data == nil {
		s.doc.Data = make(map[string]*UserData)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a torn document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) Accounts() AccountRepository {
	return jsonAccounts{s}
}

func (s *JSONStore) ForUser(username string) UserRepository {
	return jsonUser{s: s, username: username}
}

type jsonAccounts struct {
	s *JSONStore
}

func (a jsonAccounts) ListAccounts() ([]models.Account, error) {
	if err := a.s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.Account{}, a.s.doc.Users...), nil
}

func (a jsonAccounts) GetAccount(username string) (models.Account, error) {
	if err := a.s.loaded(); err != nil {
		return models.Account{}, err
	}
	for _, acc := range a.s.doc.Users {
		if acc.Username == username {
			return acc, nil
		}
	}
	return models.Account{}, fmt.Errorf("account %q: %w", username, errors.ErrNotFound)
}

func (a jsonAccounts) AddAccount(acc models.Account) error {
	if err := a.s.loaded(); err != nil {
		return err
	}
	for _, existing := range a.s.doc.Users {
		if existing.Username == acc.Username {
			return fmt.Errorf("account %q: %w", acc.Username, errors.ErrDuplicateUsername)
		}
	}
	a.s.doc.Users = append(a.s.doc.Users, acc)
	return a.s.save()
}

func (a jsonAccounts) GetSession() (string, error) {
	if err := a.s.loaded(); err != nil {
		return "", err
	}
	return a.s.doc.Session, nil
}

func (a jsonAccounts) SetSession(username string) error {
	if err := a.s.loaded(); err != nil {
		return err
	}
	a.s.doc.Session = username
	return a.s.save()
}

func (a jsonAccounts) ClearSession() error {
	return a.SetSession("")
}

type jsonUser struct {
	s        *JSONStore
	username string
}

// data returns the user's namespace, creating it when create is set.
func (u jsonUser) data(create bool) (*UserData, error) {
	if err := u.s.loaded(); err != nil {
		return nil, err
	}
	d, ok := u.s.doc.Data[u.username]
	if !ok {
		if !create {
			return &UserData{}, nil
		}
		d = &UserData{}
		u.s.doc.Data[u.username] = d
	}
	return d, nil
}

func (u jsonUser) GetTasks() ([]models.Task, error) {
	d, err := u.data(false)
	if err != nil {
		return nil, err
	}
	return append([]models.Task{}, d.Tasks...), nil
}

func (u jsonUser) SaveTasks(tasks []models.Task) error {
	d, err := u.data(true)
	if err != nil {
		return err
	}
	d.Tasks = append([]models.Task{}, tasks...)
	return u.s.save()
}

func (u jsonUser) GetChecks() ([]models.Check, error) {
	d, err := u.data(false)
	if err != nil {
		return nil, err
	}
	return append([]models.Check{}, d.Checks...), nil
}

func (u jsonUser) SaveChecks(checks []models.Check) error {
	d, err := u.data(true)
	if err != nil {
		return err
	}
	d.Checks = append([]models.Check{}, checks...)
	return u.s.save()
}

func (u jsonUser) GetPreferences() (models.Preferences, error) {
	d, err := u.data(false)
	if err != nil {
		return models.Preferences{}, err
	}
	if d.Prefs == nil {
		return models.DefaultPreferences(), nil
	}
	p := *d.Prefs
	p.DayTemplate = models.CloneTemplate(p.DayTemplate)
	return p, nil
}

func (u jsonUser) SavePreferences(p models.Preferences) error {
	d, err := u.data(true)
	if err != nil {
		return err
	}
	p.DayTemplate = models.CloneTemplate(p.DayTemplate)
	d.Prefs = &p
	return u.s.save()
}

func (u jsonUser) GetPlanned() (models.PlannedDays, error) {
	d, err := u.data(false)
	if err != nil {
		return nil, err
	}
	return d.Planned.Clone(), nil
}

func (u jsonUser) SavePlanned(planned models.PlannedDays) error {
	d, err := u.data(true)
	if err != nil {
		return err
	}
	d.Planned = planned.Clone()
	return u.s.save()
}
