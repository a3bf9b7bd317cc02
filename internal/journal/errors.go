package journal

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
	"github.com/trogers1052/stock-journal/internal/database"
	"github.com/trogers1052/stock-journal/internal/validation"
)

// ErrNotReady is returned by every mutation while the session has no user
var ErrNotReady = errors.New("journal: no signed-in user")

// Kind is the coarse classification of a failed operation
type Kind string

// Error kinds
const (
	KindValidation Kind = "validation"
	KindDatabase   Kind = "database"
	KindNetwork    Kind = "network"
	KindUnknown    Kind = "unknown"
)

// Error is the failure recorded as a store's last error and returned to the caller
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps err onto a Kind. Errors that match nothing are KindUnknown.
func Classify(err error) *Error {
	return classify(err, KindUnknown)
}

// classify maps err onto a Kind, using fallback for errors that match nothing
func classify(err error, fallback Kind) *Error {
	if err == nil {
		return nil
	}

	var jerr *Error
	if errors.As(err, &jerr) {
		return jerr
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: verr.Message, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) || errors.Is(err, database.ErrNotFound) {
		return &Error{Kind: KindDatabase, Message: err.Error(), Err: err}
	}

	return &Error{Kind: fallback, Message: err.Error(), Err: err}
}
