package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName             = "upbeat"
	DefaultKeyringUser  = "database-connection"
	DefaultConfigPath   = "~/.config/upbeat/upbeat.db"
	DefaultSettingsPath = "~/.config/upbeat/config.yaml"
	Version             = "v0.1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "upbeat-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName = "upbeat-notifier.lock"
	TrayAppIdentifier    = "com.julianstephens.upbeat"
	ToastDuration        = 1500 * time.Millisecond
)

// Session States
const (
	StateTasks SessionState = iota
	StateStats
	StateSettings
	StateLogin
	StateAddTask
	StateMakeUp
	StateEditMotto
	StateEditWeekdays
	StateAddTemplateItem
	StateApplyTemplate
	StateConfirmRemove
)

// Tabs lists the top-level TUI tabs in display order.
var Tabs = []SessionState{StateTasks, StateStats, StateSettings}
