package leave

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")

	ErrRequestNotFound = errors.New("leave request not found")

	// ErrMissingHiringDate marks a data-integrity fault: an employee
	// without an anchor date has no defined leave year, so the balance
	// must fail rather than default to zero.
	ErrMissingHiringDate = errors.New("employee has no hiring date")

	// ErrStoreUnavailable wraps transient store failures; safe to retry.
	ErrStoreUnavailable = errors.New("leave store unavailable")

	ErrInvalidRange = errors.New("end date before start date")

	ErrInsufficientBalance = errors.New("insufficient leave balance")

	ErrInvalidState = errors.New("invalid request state")

	ErrForbidden = errors.New("forbidden")
)

// InsufficientBalanceError reports both sides of a failed admission so
// callers can surface requested vs. available to the requester.
type InsufficientBalanceError struct {
	Requested int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: requested %d days, %d available", e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
