package http

import (
	"net/http"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/domain/token"
	"github.com/shiftgate/checkin-backend-go/internal/handler/http/response"
)

type KioskHandler interface {
	IssueToken(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	tokenService token.Service
}

func NewKioskHandler(tokenService token.Service) KioskHandler {
	return &kioskHandlerImpl{
		tokenService: tokenService,
	}
}

// tokenResponse carries the serialized QR payload the kiosk renders, plus the
// expiry so the kiosk knows when to poll again.
type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// IssueToken implements KioskHandler. Kiosks poll this on their refresh
// interval; issuance itself is unbounded.
func (h *kioskHandlerImpl) IssueToken(w http.ResponseWriter, r *http.Request) {
	kioskID := r.URL.Query().Get("kiosk_id")
	if kioskID == "" {
		response.BadRequest(w, "kiosk_id query parameter is required", nil)
		return
	}

	payload, raw, err := h.tokenService.Issue(kioskID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse{
		Token:     raw,
		ExpiresAt: payload.ExpiresAt,
	})
}
