package pelada

import "errors"

var (
	// ErrLimitExceeded is returned when an insert would push a roster past
	// the account's plan cap. The roster is left unchanged.
	ErrLimitExceeded = errors.New("roster is at the plan's player limit")

	// ErrLastMatch is returned when a delete would leave the store with no
	// matches at all.
	ErrLastMatch = errors.New("cannot delete the last remaining match")

	// ErrNoBaseDate is returned when replication is requested for a match
	// that has no date set yet.
	ErrNoBaseDate = errors.New("active match has no date to replicate from")

	// ErrMatchNotFound is returned for operations against an unknown match id.
	ErrMatchNotFound = errors.New("match not found")

	// ErrPlayerNotFound is returned for operations against an unknown player id.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrUnauthorized is returned when credentials do not match any account.
	ErrUnauthorized = errors.New("invalid email or password")
)
