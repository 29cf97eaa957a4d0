package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/garage-api/config"
	"github.com/target/garage-api/internal/domain/model"
	"github.com/target/garage-api/internal/service"
)

// AuthHandlers serves login, logout and the current-identity endpoint.
type AuthHandlers struct {
	Svc          *service.AuthService
	CookieName   string
	CookieDomain string
	Delivery     config.LoginDelivery
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and hands back a credential.
// POST /users/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cred, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}

	if h.Delivery == config.LoginDeliveryBody {
		WriteJSON(w, http.StatusOK, tokenResponse{Token: cred})
		return
	}
	h.setAuthCookie(w, cred, int(h.Svc.TTL().Seconds()))
	w.WriteHeader(http.StatusNoContent)
}

// Logout revokes the credential the gate resolved and clears the cookie.
// POST /users/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context(), GetCredentialFromContext(r.Context())); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	h.setAuthCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the identity attached to the request.
// GET /users/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, id)
}

// setAuthCookie writes the credential cookie. maxAge < 0 deletes it.
func (h *AuthHandlers) setAuthCookie(w http.ResponseWriter, value string, maxAge int) {
	c := &http.Cookie{
		Name:     h.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   maxAge,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0).UTC()
	}
	http.SetCookie(w, c)
}
