package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrResolveCartConflictCommandIsNotConstructed = errors.New(
	"ResolveCartConflictCommand must be created via NewResolveCartConflictCommand constructor",
)

// ResolveCartConflictCommand carries the customer's answer to the
// "start a new cart?" question.
type ResolveCartConflictCommand struct { //nolint:recvcheck //using for validation
	session   string
	confirmed bool

	guard guard.ConstructorGuard
}

func NewResolveCartConflictCommand(session string, confirmed bool) (ResolveCartConflictCommand, error) {
	s, err := validateSession(session)
	if err != nil {
		return ResolveCartConflictCommand{}, err
	}

	return ResolveCartConflictCommand{
		session:   s,
		confirmed: confirmed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveCartConflictCommand) Validate() error {
	return c.guard.Validate(ErrResolveCartConflictCommandIsNotConstructed)
}

func (c ResolveCartConflictCommand) Session() string {
	return c.session
}

// Confirmed is true when the customer accepted replacing the cart.
func (c ResolveCartConflictCommand) Confirmed() bool {
	return c.confirmed
}
