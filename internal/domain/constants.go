package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Console constants
const (
	// DefaultSessionName is the session loaded when none is requested.
	DefaultSessionName = "default"
	// ReservedKey holds the builtins scope inside a namespace. It is never
	// offered as a completion candidate.
	ReservedKey = "__builtins__"
	// DefaultTermWidth is used when every terminal probe fails.
	DefaultTermWidth = 80
	// DefaultHistorySize bounds the persisted history file.
	DefaultHistorySize = 1000
	// DefaultPager is used by external_view when neither config nor $PAGER is set.
	DefaultPager = "less"
)

// File names under the configuration directory
const (
	ConfigFileName   = "config.yaml"
	HistoryFileName  = ".history"
	SessionsFileName = "sessions.db"
	PayloadsDirName  = "payloads"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
