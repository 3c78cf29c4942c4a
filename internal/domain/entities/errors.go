package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised by the remote store and the save pipeline.
type ErrorKind string

const (
	KindAuth          ErrorKind = "auth"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindRateLimited   ErrorKind = "rate_limited"
	KindNetwork       ErrorKind = "network"
	KindValidation    ErrorKind = "validation"
	KindNotConfigured ErrorKind = "not_configured"
)

var (
	ErrAuth          = errors.New("authentication failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("stale concurrency token")
	ErrRateLimited   = errors.New("rate limited")
	ErrNetwork       = errors.New("network failure")
	ErrValidation    = errors.New("invalid input")
	ErrNotConfigured = errors.New("not configured")
)

var sentinels = map[ErrorKind]error{
	KindAuth:          ErrAuth,
	KindNotFound:      ErrNotFound,
	KindConflict:      ErrConflict,
	KindRateLimited:   ErrRateLimited,
	KindNetwork:       ErrNetwork,
	KindValidation:    ErrValidation,
	KindNotConfigured: ErrNotConfigured,
}

// SyncError is the typed failure every remote operation returns.
// It matches its kind's sentinel with errors.Is and unwraps to the cause.
type SyncError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// NewSyncError builds a SyncError. err may be nil.
func NewSyncError(kind ErrorKind, op, path string, err error) *SyncError {
	return &SyncError{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *SyncError) Error() string {
	msg := string(e.Kind)
	if sentinel, ok := sentinels[e.Kind]; ok {
		msg = sentinel.Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	} else if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyncError) Unwrap() error { return e.Err }

func (e *SyncError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// KindOf returns the kind of the first SyncError in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}
	return ""
}

// NewValidationError reports malformed user input such as a bad note path.
func NewValidationError(op, path, reason string) *SyncError {
	return NewSyncError(KindValidation, op, path, errors.New(reason))
}

// NewNotConfiguredError reports a missing repository or credential. The reason
// is shown to the user as-is, so it should say which setting to fill.
func NewNotConfiguredError(op, reason string) *SyncError {
	return NewSyncError(KindNotConfigured, op, "", errors.New(reason))
}
