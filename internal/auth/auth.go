// Package auth registers local accounts and tracks the active session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/logger"
	"github.com/julianstephens/upbeat/internal/models"
	"github.com/julianstephens/upbeat/internal/storage"
	"github.com/julianstephens/upbeat/internal/utils"
	"github.com/julianstephens/upbeat/internal/validation"
)

type Service struct {
	accounts storage.AccountRepository
	clock    utils.Clock

	// Cost is the bcrypt cost for new hashes.
	Cost int
}

func New(accounts storage.AccountRepository, clock utils.Clock) *Service {
	return &Service{
		accounts: accounts,
		clock:    clock,
		Cost:     bcrypt.DefaultCost,
	}
}

// Register creates an account and logs it in.
func (s *Service) Register(username, password string) (models.Account, error) {
	username, err := validation.ValidateCredentials(username, password)
	if err != nil {
		return models.Account{}, err
	}

	if _, err := s.accounts.GetAccount(username); err == nil {
		return models.Account{}, fmt.Errorf("account %q: %w", username, apperrors.ErrDuplicateUsername)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return models.Account{}, err
	}

	hash, err := HashPassword(password, s.Cost)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := models.Account{
		Username:  username,
		PassHash:  hash,
		CreatedAt: s.clock.Now().UTC().Format(time.RFC3339),
	}
	if err := s.accounts.AddAccount(acc); err != nil {
		return models.Account{}, err
	}
	if err := s.accounts.SetSession(username); err != nil {
		return models.Account{}, fmt.Errorf("failed to start session: %w", err)
	}

	logger.Info("Registered account", "user", username)
	return acc, nil
}

// Login checks the credentials and makes username the active session.
func (s *Service) Login(username, password string) (models.Account, error) {
	username, err := validation.ValidateCredentials(username, password)
	if err != nil {
		return models.Account{}, err
	}

	acc, err := s.accounts.GetAccount(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.Account{}, apperrors.ErrInvalidCredentials
		}
		return models.Account{}, err
	}
	if !VerifyPassword(acc.PassHash, password) {
		logger.Warn("Login failed", "user", username)
		return models.Account{}, apperrors.ErrInvalidCredentials
	}

	if err := s.accounts.SetSession(username); err != nil {
		return models.Account{}, fmt.Errorf("failed to start session: %w", err)
	}

	logger.Info("Logged in", "user", username)
	return acc, nil
}

// Logout ends the active session. It is not an error when nobody is logged in.
func (s *Service) Logout() error {
	if err := s.accounts.ClearSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logger.Info("Logged out")
	return nil
}

// Current returns the logged-in account or errors.ErrNoSession.
func (s *Service) Current() (models.Account, error) {
	username, err := s.accounts.GetSession()
	if err != nil {
		return models.Account{}, err
	}
	if username == "" {
		return models.Account{}, apperrors.ErrNoSession
	}
	acc, err := s.accounts.GetAccount(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.Account{}, apperrors.ErrNoSession
		}
		return models.Account{}, err
	}
	return acc, nil
}
