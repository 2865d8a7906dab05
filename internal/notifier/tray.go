package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/upbeat/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

const trayExecutable = constants.AppName + "-tray"

// Tray forwards notifications to the tray companion app through the local
// webhook advertised in its lockfile.
type Tray struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func NewTray() *Tray {
	return &Tray{client: &http.Client{Timeout: 2 * time.Second}}
}

func (t *Tray) Notify(text string) error {
	lock, err := runningTray()
	if err != nil {
		return err
	}
	return t.send(lock, WebhookPayload{
		Text:       text,
		DurationMs: uint32(constants.ToastDuration.Milliseconds()),
	})
}

// Ping reports whether the tray app is running, without notifying.
func (t *Tray) Ping() error {
	_, err := runningTray()
	return err
}

func runningTray() (trayLock, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return trayLock{}, err
	}
	lock, err := readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return trayLock{}, err
	}
	if err := lock.checkProcess(); err != nil {
		return trayLock{}, err
	}
	return lock, nil
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray's settings.json may point it elsewhere via settings.lockfile_dir.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
			return *dir, nil
		}
	}
	return trayConfigDir, nil
}

// trayLock is the content of the lockfile: "port|pid|secret".
type trayLock struct {
	Port   int
	PID    int
	Secret string
}

func readLockfile(path string) (trayLock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayLock{}, fmt.Errorf("%s is not running", trayExecutable)
	}
	return parseLockfile(string(content))
}

func parseLockfile(content string) (trayLock, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return trayLock{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}

	return trayLock{Port: port, PID: pid, Secret: secret}, nil
}

// checkProcess guards against a stale lockfile whose PID was reused.
func (l trayLock) checkProcess() error {
	process, err := findProcessFunc(l.PID)
	if err != nil || process == nil {
		return fmt.Errorf("%s process not running", trayExecutable)
	}
	if !strings.HasPrefix(process.Executable(), trayExecutable) {
		return fmt.Errorf("process with PID %d is not %s (is %s)", l.PID, trayExecutable, process.Executable())
	}
	return nil
}

func (t *Tray) send(lock trayLock, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", lock.Port)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Upbeat-Secret", lock.Secret)

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
