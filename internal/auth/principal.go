package auth

import "errors"

// ErrInvalidToken is returned by verifiers for any token they reject.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the identity asserted by a verified bearer token.
// ID is the identity provider's stable subject; Email may be empty.
type Principal struct {
	ID    string
	Email string
}
