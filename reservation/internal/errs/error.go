package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("reservation not found")
	ErrNoAvailability          = errors.New("no availability")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ServiceCommunicationError is returned when a cross-service call fails or
// comes back with an unexpected status. StatusCode is the remote status when
// one was received, zero otherwise.
type ServiceCommunicationError struct {
	StatusCode int
	Err        error
}

func (e *ServiceCommunicationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("service communication failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("service communication failed: %v", e.Err)
}

func (e *ServiceCommunicationError) Unwrap() error {
	return e.Err
}
