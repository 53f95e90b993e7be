package commands

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrSessionIsRequired = errors.New("cart session is required")

func validateSession(session string) (string, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return "", ErrSessionIsRequired
	}
	return session, nil
}

// cartMutation loads the session's cart under its lock, applies fn and saves
// the result before returning. Nothing is saved when fn fails.
func cartMutation(
	ctx context.Context,
	storage ports.CartStorage,
	locks *SessionLocks,
	session string,
	fn func(c *cart.Cart) error,
) (*cart.Cart, error) {
	unlock := locks.Lock(session)
	defer unlock()

	c, err := storage.Load(ctx, session)
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("load cart", err)
	}

	if err = fn(c); err != nil {
		return nil, err
	}

	if err = storage.Save(ctx, session, c); err != nil {
		return nil, errs.NewPersistenceUnavailableError("save cart", err)
	}

	return c, nil
}
