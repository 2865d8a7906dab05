// Package tracker is the application layer: it resolves the logged-in user,
// runs the domain operations against that user's collections and persists
// the results.
package tracker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/upbeat/internal/auth"
	"github.com/julianstephens/upbeat/internal/checkin"
	"github.com/julianstephens/upbeat/internal/constants"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/logger"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/notifier"
	"github.com/julianstephens/upbeat/internal/scheduler"
	"github.com/julianstephens/upbeat/internal/storage"
	"github.com/julianstephens/upbeat/internal/utils"
	"github.com/julianstephens/upbeat/internal/validation"
)

// Backuper takes a copy of the underlying database.
type Backuper interface {
	CreateBackup() (string, error)
}

type Service struct {
	store     storage.Provider
	cost      int
	scheduler *scheduler.Scheduler
	evaluator *checkin.Evaluator
	clock     utils.Clock
	notify    notifier.Sink
	backups   Backuper
	windows   []int
	newID     func() string
}

type Option func(*Service)

// WithNotifier sets the sink that receives confirmation toasts.
func WithNotifier(sink notifier.Sink) Option {
	return func(s *Service) { s.notify = sink }
}

// WithBackups makes Import take a database backup before writing.
func WithBackups(b Backuper) Option {
	return func(s *Service) { s.backups = b }
}

// WithStatsWindows overrides the trailing windows of Stats.
func WithStatsWindows(days []int) Option {
	return func(s *Service) {
		if len(days) > 0 {
			s.windows = append([]int{}, days...)
		}
	}
}

func New(store storage.Provider, clock utils.Clock, opts ...Option) *Service {
	s := &Service{
		store:     store,
		cost:      bcrypt.DefaultCost,
		scheduler: scheduler.New(),
		evaluator: checkin.New(clock),
		clock:     clock,
		notify:    notifier.Discard{},
		windows:   append([]int{}, constants.DefaultStatsWindows...),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifying returns a copy of s that sends its toasts to sink.
func (s *Service) Notifying(sink notifier.Sink) *Service {
	c := *s
	c.notify = sink
	return &c
}

// auth is built per call; SQL stores expose repositories only after Load.
func (s *Service) auth() *auth.Service {
	a := auth.New(s.store.Accounts(), s.clock)
	a.Cost = s.cost
	return a
}

// Clock returns the clock the service evaluates dates with.
func (s *Service) Clock() utils.Clock {
	return s.clock
}

// Register creates an account and logs it in.
func (s *Service) Register(username, password string) (models.Account, error) {
	acc, err := s.auth().Register(username, password)
	if err != nil {
		return models.Account{}, err
	}
	logger.Info("Account registered", "user", acc.Username)
	return acc, nil
}

func (s *Service) Login(username, password string) (models.Account, error) {
	acc, err := s.auth().Login(username, password)
	if err != nil {
		logger.Debug("Login failed", "user", username, "error", err)
		return models.Account{}, err
	}
	logger.Info("Logged in", "user", acc.Username)
	return acc, nil
}

func (s *Service) Logout() error {
	if err := s.auth().Logout(); err != nil {
		return err
	}
	logger.Info("Logged out")
	return nil
}

// Current returns the logged-in account or errors.ErrNoSession.
func (s *Service) Current() (models.Account, error) {
	return s.auth().Current()
}

// user returns the repository of the logged-in user.
func (s *Service) user() (storage.UserRepository, string, error) {
	acc, err := s.auth().Current()
	if err != nil {
		return nil, "", err
	}
	return s.store.ForUser(acc.Username), acc.Username, nil
}

func (s *Service) toast(text string) {
	if err := s.notify.Notify(text); err != nil {
		logger.Warn("Notification failed", "error", err)
	}
}

// AddTask validates the task and puts it at the top of the list.
func (s *Service) AddTask(title, category string, window models.TimeWindow) (models.Task, error) {
	title, err := validation.ValidateTaskTitle(title)
	if err != nil {
		return models.Task{}, err
	}
	if err := validation.ValidateWindow(window); err != nil {
		return models.Task{}, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = constants.CategoryStudy
	}

	repo, username, err := s.user()
	if err != nil {
		return models.Task{}, err
	}
	tasks, err := repo.GetTasks()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	task := models.Task{ID: s.newID(), Title: title, Category: category, Window: window}
	if err := repo.SaveTasks(append([]models.Task{task}, tasks...)); err != nil {
		return models.Task{}, fmt.Errorf("failed to save tasks: %w", err)
	}

	logger.Info("Task added", "user", username, "id", task.ID, "title", task.Title)
	return task, nil
}

// RemoveTask deletes the task whose id or title matches query. Check history
// referencing it is kept.
func (s *Service) RemoveTask(query string) (models.Task, error) {
	repo, username, err := s.user()
	if err != nil {
		return models.Task{}, err
	}
	tasks, err := repo.GetTasks()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	idx := findTask(tasks, query)
	if idx < 0 {
		return models.Task{}, fmt.Errorf("task %q: %w", query, errors.ErrNotFound)
	}
	removed := tasks[idx]
	rest := append(append([]models.Task{}, tasks[:idx]...), tasks[idx+1:]...)
	if err := repo.SaveTasks(rest); err != nil {
		return models.Task{}, fmt.Errorf("failed to save tasks: %w", err)
	}

	logger.Info("Task removed", "user", username, "id", removed.ID, "title", removed.Title)
	return removed, nil
}

func findTask(tasks []models.Task, query string) int {
	query = strings.TrimSpace(query)
	for i, t := range tasks {
		if t.ID == query {
			return i
		}
	}
	for i, t := range tasks {
		if strings.EqualFold(t.Title, query) {
			return i
		}
	}
	return -1
}

func (s *Service) ListTasks() ([]models.Task, error) {
	repo, _, err := s.user()
	if err != nil {
		return nil, err
	}
	return repo.GetTasks()
}

// Today returns the projection for the clock's current date.
func (s *Service) Today() ([]scheduler.Entry, error) {
	return s.Day(utils.Today(s.clock))
}

// Day returns the projection for date.
func (s *Service) Day(date string) ([]scheduler.Entry, error) {
	repo, _, err := s.user()
	if err != nil {
		return nil, err
	}
	tasks, err := repo.GetTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	planned, err := repo.GetPlanned()
	if err != nil {
		return nil, fmt.Errorf("failed to load planned days: %w", err)
	}
	return s.scheduler.ProjectDay(tasks, planned, date), nil
}

// Checks returns the check history, newest first.
func (s *Service) Checks() ([]models.Check, error) {
	repo, _, err := s.user()
	if err != nil {
		return nil, err
	}
	return repo.GetChecks()
}

// CheckIn records a check for the entry of today's projection whose ref or
// title matches query. See CheckInEntry for target.
func (s *Service) CheckIn(query, target string) (models.Check, error) {
	entries, err := s.Today()
	if err != nil {
		return models.Check{}, err
	}
	entry, ok := FindEntry(entries, query)
	if !ok {
		return models.Check{}, fmt.Errorf("nothing named %q on today's list: %w", query, errors.ErrNotFound)
	}
	return s.CheckInEntry(entry, target)
}

// FindEntry looks an entry up by ref, then by case-insensitive title.
func FindEntry(entries []scheduler.Entry, query string) (scheduler.Entry, bool) {
	query = strings.TrimSpace(query)
	for _, e := range entries {
		if e.Ref() == query {
			return e, true
		}
	}
	for _, e := range entries {
		if strings.EqualFold(e.Title(), query) {
			return e, true
		}
	}
	return nil, false
}

// CheckInEntry records a check for entry. An empty target checks in for
// today; an earlier date records a make-up.
func (s *Service) CheckInEntry(entry scheduler.Entry, target string) (models.Check, error) {
	repo, username, err := s.user()
	if err != nil {
		return models.Check{}, err
	}
	check, err := s.evaluator.Evaluate(entry, target)
	if err != nil {
		return models.Check{}, err
	}

	checks, err := repo.GetChecks()
	if err != nil {
		return models.Check{}, fmt.Errorf("failed to load checks: %w", err)
	}
	if err := repo.SaveChecks(append([]models.Check{check}, checks...)); err != nil {
		return models.Check{}, fmt.Errorf("failed to save checks: %w", err)
	}

	logger.Info("Checked in", "user", username, "ref", check.TaskID, "date", check.Date,
		"inTime", check.InTime, "makeUp", check.MakeUp)
	s.toast(checkin.Message(check))
	return check, nil
}
