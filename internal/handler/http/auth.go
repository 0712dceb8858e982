package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/domain/auth"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/response"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/oauth"
)

const oauthStateCookie = "oauth_state"

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
	google      oauth.GoogleService
}

func NewAuthHandler(authService auth.Service, google oauth.GoogleService) AuthHandler {
	return &authHandlerImpl{authService: authService, google: google}
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, result)
	response.Success(w, result)
}

func (h *authHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	state := h.google.GenerateState(r.UserAgent())
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.RedirectURL(state), http.StatusTemporaryRedirect)
}

func (h *authHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		response.HandleError(w, auth.ErrOAuthStateMismatch)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	result, err := h.authService.LoginWithGoogle(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, result)
	response.Success(w, result)
}

func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, result)
	response.Success(w, result)
}

func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		_ = h.authService.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
	})
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (h *authHandlerImpl) setRefreshCookie(w http.ResponseWriter, result auth.LoginResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    result.RefreshToken,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(result.RefreshExpiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
