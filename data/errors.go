package data

import (
	"errors"
	"sync"
)

// Standard backup errors that storage backends and the service should use.
var (
	// Resource and location errors
	ErrInvalidResource = errors.New("backup: invalid resource identifier")

	// Storage errors
	ErrNotExist   = errors.New("backup: object does not exist")
	ErrPermission = errors.New("backup: permission denied")
	ErrOpenFailed = errors.New("backup: backend open failed")
	ErrClosed     = errors.New("backup: service already closed")

	// Metadata errors
	ErrMetadataMalformed = errors.New("backup: backup metadata malformed")
)

// Errors collects failures from multi-entry operations so that one bad
// entry never aborts the rest.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
