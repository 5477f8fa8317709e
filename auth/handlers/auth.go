package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/logging"
	"github.com/mlmarch/mlmarch-gateway/responses"
	"github.com/mlmarch/mlmarch-gateway/services"
	"github.com/mlmarch/mlmarch-gateway/tokens"
)

type AuthHandler struct {
	authSvc services.AuthService
	cookies cookieWriter
}

func NewAuthHandler(authSvc services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		cookies: cookieWriter{secure: secureCookies},
	}
}

type MeResponse struct {
	Email string `json:"email" example:"ada@example.com"`
}

// Refresh godoc
// @Summary      Refresh the session
// @Description  Exchanges the refresh_token cookie for a new token pair
// @Tags         auth
// @Produce      json
// @Success      200  {object}  responses.MessageResponse
// @Failure      401  {object}  errors.HTTPError
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(tokens.RefreshCookieName)
	if err != nil || refresh == "" {
		errors.UnauthorizedResponse(c, "missing refresh token")
		return
	}

	pair, err := h.authSvc.RefreshToken(c.Request.Context(), refresh)
	if err != nil {
		logging.FromContext(c.Request.Context()).Info("refresh rejected", "error", err)
		h.cookies.clear(c)
		if stderrors.Is(err, errors.ErrIdentityNotFound) {
			errors.UnauthorizedResponse(c, "unknown user")
			return
		}
		errors.UnauthorizedResponse(c, "invalid_token")
		return
	}

	h.cookies.setTokens(c, pair.AccessToken, pair.RefreshToken)
	responses.JSONSuccess(c, "token refreshed")
}

// Logout godoc
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  responses.MessageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.clear(c)
	responses.JSONSuccess(c, "logged out")
}

// Me godoc
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  errors.HTTPError
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	email := auth.CurrentEmail(c)
	if email == "" {
		errors.UnauthorizedResponse(c, "user not authenticated")
		return
	}
	c.JSON(http.StatusOK, MeResponse{Email: email})
}
