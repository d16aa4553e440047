package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/ordosuite/salesbridge/internal/auth"
)

type tokenRequest struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// issueToken exchanges the configured client credentials for a bearer
// token. The ERP's own auth stack is not involved; this token only guards
// the gateway surface.
func (r *Router) issueToken(w http.ResponseWriter, req *http.Request) {
	var in tokenRequest
	if err := decodeBody(req, &in); err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}
	if err := validate.Struct(in); err != nil {
		respondInvalid(w, http.StatusBadRequest, "missing_parameter",
			"Missing required parameters [client_id, client_secret]")
		return
	}

	idOK := subtle.ConstantTimeCompare([]byte(in.ClientID), []byte(r.cfg.Auth.ClientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(in.ClientSecret), []byte(r.cfg.Auth.ClientSecret)) == 1
	if !idOK || !secretOK {
		respondInvalid(w, http.StatusUnauthorized, "invalid_credentials", "Invalid client credentials")
		return
	}

	ttl := time.Duration(r.cfg.Auth.TokenTTL) * time.Minute
	token, err := auth.GenerateServiceToken(in.ClientID, r.cfg.JWTSecret, ttl)
	if err != nil {
		respondInvalid(w, http.StatusInternalServerError, "token_error", "Failed to generate token")
		return
	}

	respondData(w, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(ttl.Seconds()),
	})
}
