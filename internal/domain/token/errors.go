package token

import "errors"

// Token verification errors. All of them are rejection reasons returned to the
// scanner; none are retried and none are fatal to the service.
var (
	ErrMalformedToken = errors.New("token is not a valid QR payload")
	ErrBadSignature   = errors.New("token signature does not match")
	ErrExpired        = errors.New("token has expired")
	ErrReplayedNonce  = errors.New("token has already been used")
)
