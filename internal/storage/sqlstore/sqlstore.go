// Package sqlstore implements the storage repositories on top of any
// database/sql driver. The sqlite and postgres providers share it and
// differ only in their Dialect.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/storage"
)

// Dialect describes the differences between supported databases.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
}

var (
	SQLite   = Dialect{Name: "sqlite", Placeholder: sq.Question}
	Postgres = Dialect{Name: "postgres", Placeholder: sq.Dollar}
)

// insertBatch bounds the rows per INSERT to stay under bind variable limits.
const insertBatch = 500

type Store struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Accounts() storage.AccountRepository {
	return accounts{s}
}

func (s *Store) ForUser(username string) storage.UserRepository {
	return user{s: s, username: username}
}

// inTx runs fn in a transaction, committing when it returns nil.
func (s *Store) inTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertRows inserts rows in batches. Each row must match columns.
func (s *Store) insertRows(tx *sqlx.Tx, table string, columns []string, rows [][]interface{}) error {
	for start := 0; start < len(rows); start += insertBatch {
		end := start + insertBatch
		if end > len(rows) {
			end = len(rows)
		}
		ins := s.sb.Insert(table).Columns(columns...)
		for _, r := range rows[start:end] {
			ins = ins.Values(r...)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

// replace deletes username's rows from table and inserts rows instead.
func (s *Store) replace(table, username string, columns []string, rows [][]interface{}) error {
	return s.inTx(func(tx *sqlx.Tx) error {
		query, args, err := s.sb.Delete(table).Where(sq.Eq{"username": username}).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		return s.insertRows(tx, table, columns, rows)
	})
}

type accounts struct {
	s *Store
}

type accountRow struct {
	Username  string `db:"username"`
	PassHash  string `db:"pass_hash"`
	CreatedAt string `db:"created_at"`
}

func (r accountRow) model() models.Account {
	return models.Account{Username: r.Username, PassHash: r.PassHash, CreatedAt: r.CreatedAt}
}

var accountColumns = []string{"username", "pass_hash", "created_at"}

func (a accounts) ListAccounts() ([]models.Account, error) {
	query, args, err := a.s.sb.Select(accountColumns...).From("accounts").OrderBy("created_at", "username").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []accountRow
	if err := a.s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	out := make([]models.Account, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (a accounts) GetAccount(username string) (models.Account, error) {
	query, args, err := a.s.sb.Select(accountColumns...).From("accounts").Where(sq.Eq{"username": username}).ToSql()
	if err != nil {
		return models.Account{}, err
	}
	var row accountRow
	if err := a.s.db.Get(&row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, fmt.Errorf("account %q: %w", username, apperrors.ErrNotFound)
		}
		return models.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return row.model(), nil
}

func (a accounts) AddAccount(acc models.Account) error {
	return a.s.inTx(func(tx *sqlx.Tx) error {
		query, args, err := a.s.sb.Select("count(*)").From("accounts").Where(sq.Eq{"username": acc.Username}).ToSql()
		if err != nil {
			return err
		}
		var n int
		if err := tx.Get(&n, query, args...); err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("account %q: %w", acc.Username, apperrors.ErrDuplicateUsername)
		}
		return a.s.insertRows(tx, "accounts", accountColumns, [][]interface{}{
			{acc.Username, acc.PassHash, acc.CreatedAt},
		})
	})
}

func (a accounts) GetSession() (string, error) {
	query, args, err := a.s.sb.Select("username").From("session").Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return "", err
	}
	var username string
	if err := a.s.db.Get(&username, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return username, nil
}

func (a accounts) SetSession(username string) error {
	return a.s.inTx(func(tx *sqlx.Tx) error {
		if err := a.clearSession(tx); err != nil {
			return err
		}
		return a.s.insertRows(tx, "session", []string{"id", "username"}, [][]interface{}{{1, username}})
	})
}

func (a accounts) ClearSession() error {
	return a.s.inTx(a.clearSession)
}

func (a accounts) clearSession(tx *sqlx.Tx) error {
	query, args, err := a.s.sb.Delete("session").ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

type user struct {
	s        *Store
	username string
}

type taskRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Category      string `db:"category"`
	WindowEnabled bool   `db:"window_enabled"`
	WindowStart   string `db:"window_start"`
	WindowEnd     string `db:"window_end"`
}

var taskColumns = []string{"username", "position", "id", "title", "category", "window_enabled", "window_start", "window_end"}

func (u user) GetTasks() ([]models.Task, error) {
	query, args, err := u.s.sb.Select(taskColumns[2:]...).From("tasks").
		Where(sq.Eq{"username": u.username}).OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []taskRow
	if err := u.s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	tasks := make([]models.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, models.Task{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Window:   models.TimeWindow{Enabled: r.WindowEnabled, Start: r.WindowStart, End: r.WindowEnd},
		})
	}
	return tasks, nil
}

func (u user) SaveTasks(tasks []models.Task) error {
	rows := make([][]interface{}, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, []interface{}{
			u.username, i, t.ID, t.Title, t.Category, t.Window.Enabled, t.Window.Start, t.Window.End,
		})
	}
	return u.s.replace("tasks", u.username, taskColumns, rows)
}

type checkRow struct {
	ID       string `db:"id"`
	Date     string `db:"date"`
	TaskID   string `db:"task_id"`
	Template bool   `db:"template"`
	InTime   bool   `db:"in_time"`
	MakeUp   bool   `db:"make_up"`
}

var checkColumns = []string{"username", "position", "id", "date", "task_id", "template", "in_time", "make_up"}

func (u user) GetChecks() ([]models.Check, error) {
	query, args, err := u.s.sb.Select(checkColumns[2:]...).From("checks").
		Where(sq.Eq{"username": u.username}).OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []checkRow
	if err := u.s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get checks: %w", err)
	}
	checks := make([]models.Check, 0, len(rows))
	for _, r := range rows {
		checks = append(checks, models.Check(r))
	}
	return checks, nil
}

func (u user) SaveChecks(checks []models.Check) error {
	rows := make([][]interface{}, 0, len(checks))
	for i, c := range checks {
		rows = append(rows, []interface{}{
			u.username, i, c.ID, c.Date, c.TaskID, c.Template, c.InTime, c.MakeUp,
		})
	}
	return u.s.replace("checks", u.username, checkColumns, rows)
}

type preferencesRow struct {
	Avatar           string `db:"avatar"`
	Motto            string `db:"motto"`
	RequiredWeekdays string `db:"required_weekdays"`
	DayTemplate      string `db:"day_template"`
}

var preferencesColumns = []string{"username", "avatar", "motto", "required_weekdays", "day_template"}

func (u user) GetPreferences() (models.Preferences, error) {
	query, args, err := u.s.sb.Select(preferencesColumns[1:]...).From("preferences").
		Where(sq.Eq{"username": u.username}).ToSql()
	if err != nil {
		return models.Preferences{}, err
	}
	var row preferencesRow
	if err := u.s.db.Get(&row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultPreferences(), nil
		}
		return models.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	p := models.DefaultPreferences()
	p.Avatar = row.Avatar
	p.Motto = row.Motto
	if err := json.Unmarshal([]byte(row.RequiredWeekdays), &p.RequiredWeekdays); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to decode required weekdays: %w", err)
	}
	if err := json.Unmarshal([]byte(row.DayTemplate), &p.DayTemplate); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to decode day template: %w", err)
	}
	p.DayTemplate = models.CloneTemplate(p.DayTemplate)
	return p, nil
}

func (u user) SavePreferences(p models.Preferences) error {
	weekdays, err := json.Marshal(p.RequiredWeekdays)
	if err != nil {
		return err
	}
	template, err := json.Marshal(models.CloneTemplate(p.DayTemplate))
	if err != nil {
		return err
	}
	return u.s.replace("preferences", u.username, preferencesColumns, [][]interface{}{
		{u.username, p.Avatar, p.Motto, string(weekdays), string(template)},
	})
}

type plannedRow struct {
	Date  string `db:"date"`
	Items string `db:"items"`
}

func (u user) GetPlanned() (models.PlannedDays, error) {
	query, args, err := u.s.sb.Select("date", "items").From("planned_days").
		Where(sq.Eq{"username": u.username}).OrderBy("date").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []plannedRow
	if err := u.s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get planned days: %w", err)
	}
	planned := make(models.PlannedDays, len(rows))
	for _, r := range rows {
		var items []models.TemplateItem
		if err := json.Unmarshal([]byte(r.Items), &items); err != nil {
			return nil, fmt.Errorf("failed to decode planned day %s: %w", r.Date, err)
		}
		planned[r.Date] = models.CloneTemplate(items)
	}
	return planned, nil
}

func (u user) SavePlanned(planned models.PlannedDays) error {
	rows := make([][]interface{}, 0, len(planned))
	for date, items := range planned {
		data, err := json.Marshal(models.CloneTemplate(items))
		if err != nil {
			return err
		}
		rows = append(rows, []interface{}{u.username, date, string(data)})
	}
	return u.s.replace("planned_days", u.username, []string{"username", "date", "items"}, rows)
}
