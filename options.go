package backup

import (
	"github.com/mwantia/backup/log"
	"github.com/mwantia/backup/storage"
	"github.com/mwantia/backup/storage/local"
)

type BackupServiceOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool

	// Backend is the backup store. Leaving it nil disables the feature;
	// every service operation then degrades to a no-op.
	Backend storage.Backend
}

type BackupServiceOption func(*BackupServiceOptions) error

func newDefaultBackupServiceOptions() *BackupServiceOptions {
	return &BackupServiceOptions{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) BackupServiceOption {
	return func(opts *BackupServiceOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithLogFile(logFile string) BackupServiceOption {
	return func(opts *BackupServiceOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() BackupServiceOption {
	return func(opts *BackupServiceOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithBackend(backend storage.Backend) BackupServiceOption {
	return func(opts *BackupServiceOptions) error {
		opts.Backend = backend
		return nil
	}
}

// WithLocalRoot configures an on-disk store rooted at the given directory.
func WithLocalRoot(root string) BackupServiceOption {
	return func(opts *BackupServiceOptions) error {
		backend, err := local.NewLocalBackend(root)
		if err != nil {
			return err
		}

		opts.Backend = backend
		return nil
	}
}
