package errs

import "fmt"

// InvalidTransitionError is returned when a guided status change is not
// listed in the transition table for the order's fulfillment mode.
// The order must be left unchanged.
type InvalidTransitionError struct {
	From string
	To   string
	Mode string
}

func NewInvalidTransitionError(from, to, mode string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Mode: mode}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed for %s orders", ErrInvalidTransition, e.From, e.To, e.Mode)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// MalformedOrderError is returned when an order lacks data it must carry,
// for example a delivery address on an ENTREGA order.
type MalformedOrderError struct {
	Reason string
	Cause  error
}

func NewMalformedOrderError(reason string) *MalformedOrderError {
	return &MalformedOrderError{Reason: reason}
}

func NewMalformedOrderErrorWithCause(reason string, cause error) *MalformedOrderError {
	return &MalformedOrderError{Reason: reason, Cause: cause}
}

func (e *MalformedOrderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrMalformedOrder, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedOrder, e.Reason)
}

func (e *MalformedOrderError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMalformedOrder, e.Cause}
	}
	return []error{ErrMalformedOrder}
}

// PersistenceUnavailableError wraps a storage or network failure met while
// running Operation. Local state is left as it was; the operation is retryable.
type PersistenceUnavailableError struct {
	Operation string
	Cause     error
}

func NewPersistenceUnavailableError(operation string, cause error) *PersistenceUnavailableError {
	return &PersistenceUnavailableError{Operation: operation, Cause: cause}
}

func (e *PersistenceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistenceUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPersistenceUnavailable, e.Operation)
}

func (e *PersistenceUnavailableError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPersistenceUnavailable, e.Cause}
	}
	return []error{ErrPersistenceUnavailable}
}
