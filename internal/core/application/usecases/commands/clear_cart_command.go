package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

type ClearCartCommand struct {
	session string

	guard guard.ConstructorGuard
}

func NewClearCartCommand(session string) (ClearCartCommand, error) {
	s, err := validateSession(session)
	if err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{session: s, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) Session() string {
	return c.session
}
