package token

import "time"

// QrTokenPayload is the literal QR payload a kiosk displays, serialized as JSON.
// Timestamps are epoch milliseconds; Signature is lowercase-hex HMAC-SHA256 over
// the other four fields keyed by the shared kiosk secret.
type QrTokenPayload struct {
	KioskID   string `json:"kioskId"`
	Nonce     string `json:"nonce"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
	Signature string `json:"signature"`
}

// ExpiresAtTime returns the expiry as a time.Time.
func (p QrTokenPayload) ExpiresAtTime() time.Time {
	return time.UnixMilli(p.ExpiresAt)
}
