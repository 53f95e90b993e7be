package queries

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads the cart of one session.
type GetCartQuery struct {
	session string

	guard guard.ConstructorGuard
}

func NewGetCartQuery(session string) (GetCartQuery, error) {
	s, err := validateSession(session)
	if err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{session: s, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) Session() string {
	return q.session
}
