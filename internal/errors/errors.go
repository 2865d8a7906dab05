package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/upbeat/internal/logger"
)

var (
	// ErrValidation marks missing or malformed user input; no state was changed.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateUsername is returned when registering a username that exists.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned when a login does not match any account.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNoSession is returned when an operation needs a logged-in user.
	ErrNoSession = errors.New("not logged in, run 'upbeat login' first")
	// ErrImportFailed is returned when a backup file cannot be imported.
	ErrImportFailed = errors.New("import failed")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// Invalid wraps ErrValidation with a user-facing message.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Is is errors.Is, re-exported so callers importing this package under the
// name "errors" keep access to it.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
