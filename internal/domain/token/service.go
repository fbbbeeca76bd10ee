package token

import (
	"context"
	"time"
)

// Service issues and verifies the short-lived, single-use tokens a kiosk
// displays as a QR code.
type Service interface {
	// Issue creates a fresh signed token bound to kioskID and returns both the
	// payload and its serialized QR string.
	Issue(kioskID string, now time.Time) (QrTokenPayload, string, error)

	// Verify parses raw, checks the signature before trusting any other field,
	// then checks expiry. Returns ErrMalformedToken, ErrBadSignature or ErrExpired.
	Verify(raw string, now time.Time) (QrTokenPayload, error)

	// VerifyAndConsume runs Verify and then rejects nonces already present in
	// the replay cache with ErrReplayedNonce. It does NOT mark the nonce used;
	// the caller marks it only after the check-in has been committed.
	VerifyAndConsume(ctx context.Context, raw string, now time.Time) (QrTokenPayload, error)

	// MarkUsed records the payload's nonce in the replay cache until the
	// token's own expiry.
	MarkUsed(ctx context.Context, payload QrTokenPayload) error
}

// ReplayCache maps consumed nonces to their own expiry. Entries past their
// expiry may be purged lazily; an expired token is useless regardless.
// With a single verification point an in-process cache suffices; horizontally
// scaled verifiers must share one (the redis implementation).
type ReplayCache interface {
	HasBeenUsed(ctx context.Context, nonce string, now time.Time) (bool, error)
	MarkUsed(ctx context.Context, nonce string, expiresAt time.Time) error
}
