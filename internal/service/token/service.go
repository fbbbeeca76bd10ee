package token

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgate/checkin-backend-go/internal/domain/token"
)

type TokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
	replay token.ReplayCache
}

func NewTokenService(secret string, ttl time.Duration, replay token.ReplayCache) token.Service {
	return &TokenServiceImpl{
		secret: []byte(secret),
		ttl:    ttl,
		replay: replay,
	}
}

// signingString is the canonical byte sequence the HMAC covers:
// kioskId|nonce|issuedAt|expiresAt.
func signingString(kioskID, nonce string, issuedAt, expiresAt int64) string {
	return strings.Join([]string{
		kioskID,
		nonce,
		strconv.FormatInt(issuedAt, 10),
		strconv.FormatInt(expiresAt, 10),
	}, "|")
}

func (s *TokenServiceImpl) sign(kioskID, nonce string, issuedAt, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signingString(kioskID, nonce, issuedAt, expiresAt)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue implements token.Service.
func (s *TokenServiceImpl) Issue(kioskID string, now time.Time) (token.QrTokenPayload, string, error) {
	issuedAt := now.UnixMilli()
	expiresAt := now.Add(s.ttl).UnixMilli()
	nonce := uuid.NewString()

	payload := token.QrTokenPayload{
		KioskID:   kioskID,
		Nonce:     nonce,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Signature: s.sign(kioskID, nonce, issuedAt, expiresAt),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return token.QrTokenPayload{}, "", fmt.Errorf("failed to serialize token payload: %w", err)
	}

	return payload, string(raw), nil
}

// Verify implements token.Service. The signature is recomputed and compared in
// constant time before any other claimed field is trusted.
func (s *TokenServiceImpl) Verify(raw string, now time.Time) (token.QrTokenPayload, error) {
	var payload token.QrTokenPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return token.QrTokenPayload{}, token.ErrMalformedToken
	}

	expected := s.sign(payload.KioskID, payload.Nonce, payload.IssuedAt, payload.ExpiresAt)
	if !hmac.Equal([]byte(expected), []byte(payload.Signature)) {
		return token.QrTokenPayload{}, token.ErrBadSignature
	}

	if now.UnixMilli() > payload.ExpiresAt {
		return token.QrTokenPayload{}, token.ErrExpired
	}

	return payload, nil
}

// VerifyAndConsume implements token.Service.
func (s *TokenServiceImpl) VerifyAndConsume(ctx context.Context, raw string, now time.Time) (token.QrTokenPayload, error) {
	payload, err := s.Verify(raw, now)
	if err != nil {
		return token.QrTokenPayload{}, err
	}

	used, err := s.replay.HasBeenUsed(ctx, payload.Nonce, now)
	if err != nil {
		return token.QrTokenPayload{}, fmt.Errorf("failed to check replay cache: %w", err)
	}
	if used {
		return token.QrTokenPayload{}, token.ErrReplayedNonce
	}

	return payload, nil
}

// MarkUsed implements token.Service.
func (s *TokenServiceImpl) MarkUsed(ctx context.Context, payload token.QrTokenPayload) error {
	return s.replay.MarkUsed(ctx, payload.Nonce, payload.ExpiresAtTime())
}
