// Package queries contains the read-only use cases: the customer's cart, the
// supplier's status board, an order's customer summary and its status history.
package queries

import (
	"errors"
	"strings"
)

var ErrSessionIsRequired = errors.New("cart session is required")

func validateSession(session string) (string, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return "", ErrSessionIsRequired
	}
	return session, nil
}
