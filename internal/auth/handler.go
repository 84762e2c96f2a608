package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/jobcard-management/internal/transport"
	"github.com/frahmantamala/jobcard-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service       ServiceAPI
	secureCookies bool
	cookieTTL     time.Duration
}

func NewHandler(svc ServiceAPI, secureCookies bool, cookieTTL time.Duration) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	if cookieTTL <= 0 {
		cookieTTL = 24 * time.Hour
	}
	return &Handler{
		BaseHandler:   transport.NewBaseHandler(lg),
		Service:       svc,
		secureCookies: secureCookies,
		cookieTTL:     cookieTTL,
	}
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials, ErrUserNotFound:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.cookieTTL),
	})

	h.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; deactivating the account is the revocation path.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}
