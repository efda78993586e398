package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DeclineCode identifies why a checkout was declined. Declines are clean
// business-rule rejections: the atomic unit aborts and nothing is written.
type DeclineCode string

const (
	CodeValidation         DeclineCode = "VALIDATION"
	CodeItemNotFound       DeclineCode = "ITEM_NOT_FOUND"
	CodeInvalidQuantity    DeclineCode = "INVALID_QUANTITY"
	CodeInsufficientStock  DeclineCode = "INSUFFICIENT_STOCK"
	CodeUnknownTender      DeclineCode = "UNKNOWN_TENDER"
	CodeInsufficientTender DeclineCode = "INSUFFICIENT_TENDER"
)

// DeclineError is a structured checkout rejection with a reason code.
type DeclineError struct {
	Code    DeclineCode
	Message string
}

func (e *DeclineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func declinef(code DeclineCode, format string, args ...interface{}) *DeclineError {
	return &DeclineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsDecline unwraps err into a DeclineError, if it is one.
func AsDecline(err error) (*DeclineError, bool) {
	var d *DeclineError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// ErrTransientStore marks connectivity, timeout, or lock-contention
// failures. The unit aborted, no partial state exists, and the checkout is
// safe to retry.
var ErrTransientStore = errors.New("transient store error")

// ErrFatalWrite marks a write that violated the atomic-unit contract
// mid-flight. It is never expected; it is logged and surfaced as an
// internal error rather than a decline.
var ErrFatalWrite = errors.New("fatal write error")

// pq error codes that indicate the unit lost a race or a lock and can be
// retried once the contending transaction finishes.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
	pqQueryCanceled        = "57014"
	pqUniqueViolation      = "23505"
)

// classifyStoreError maps driver and context failures onto the checkout
// error taxonomy. Declines and fatal writes pass through untouched.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsDecline(err); ok {
		return err
	}
	if errors.Is(err, ErrFatalWrite) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable, pqQueryCanceled, pqUniqueViolation:
			return fmt.Errorf("%w: %v", ErrTransientStore, err)
		}
	}
	return err
}
