package account

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/upbeat/internal/cli"
	"github.com/julianstephens/upbeat/internal/config"
	"github.com/julianstephens/upbeat/internal/errors"
	"github.com/julianstephens/upbeat/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx, err := cli.NewContext(store, config.Default(), filepath.Join(tempDir, "config.yaml"))
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&RegisterCmd{Username: "alice", Password: "pw123"}).Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := (&WhoamiCmd{}).Run(ctx); err != nil {
		t.Errorf("whoami failed after register: %v", err)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := (&WhoamiCmd{}).Run(ctx); !errors.Is(err, errors.ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}

	if err := (&LoginCmd{Username: "alice", Password: "pw123"}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	acc, err := ctx.Tracker.Current()
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if acc.Username != "alice" {
		t.Errorf("expected alice, got %s", acc.Username)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&RegisterCmd{Username: "alice", Password: "pw123"}).Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	err := (&RegisterCmd{Username: " alice ", Password: "other"}).Run(ctx)
	if !errors.Is(err, errors.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&RegisterCmd{Username: "alice", Password: "pw123"}).Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	err := (&LoginCmd{Username: "alice", Password: "nope"}).Run(ctx)
	if !errors.Is(err, errors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
