package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth/oauth"
	"github.com/mlmarch/mlmarch-gateway/crypt"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/logging"
	"github.com/mlmarch/mlmarch-gateway/responses"
	"github.com/mlmarch/mlmarch-gateway/services"
)

const stateBytes = 16

// OAuthHandler runs the sign-in flow for one provider.
type OAuthHandler struct {
	frontendURL string
	provider    oauth.Provider
	authSvc     services.AuthService
	cookies     cookieWriter
}

func NewOAuthHandler(frontendURL string, provider oauth.Provider, authSvc services.AuthService, secureCookies bool) *OAuthHandler {
	return &OAuthHandler{
		frontendURL: frontendURL,
		provider:    provider,
		authSvc:     authSvc,
		cookies:     cookieWriter{secure: secureCookies},
	}
}

func (h *OAuthHandler) Provider() string {
	return h.provider.Name()
}

type StateResponse struct {
	State string `json:"state" example:"pQ2x0v3n8kq1b7Yx"`
}

func (h *OAuthHandler) stateKey(state string) string {
	return oauth.OAuthPrefix + h.provider.Name() + ":" + state
}

// NewState godoc
// @Summary      Start OAuth sign-in
// @Description  Issues a one-time state value to pass to the provider's authorize URL
// @Tags         auth
// @Produce      json
// @Param        provider  path      string  true  "github or google"
// @Success      200  {object}  StateResponse
// @Failure      500  {object}  errors.HTTPError
// @Router       /auth/{provider}/state [get]
func (h *OAuthHandler) NewState(c *gin.Context) {
	state, err := crypt.GenerateState(stateBytes)
	if err != nil {
		errors.InternalServerErrorResponse(c, "failed to generate state")
		return
	}

	if err := h.authSvc.SaveState(c.Request.Context(), h.stateKey(state)); err != nil {
		errors.InternalServerErrorResponse(c, "failed to store state")
		return
	}

	responses.JSONData(c, http.StatusOK, StateResponse{State: state})
}

// Callback godoc
// @Summary      OAuth callback
// @Description  Completes sign-in, syncs the user into the backend and sets session cookies
// @Tags         auth
// @Param        provider  path      string  true  "github or google"
// @Param        code      query     string  true  "authorization code"
// @Param        state     query     string  true  "state from /state"
// @Success      302
// @Failure      401  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /auth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx).With("provider", h.provider.Name())

	code := c.Query("code")
	if code == "" {
		errors.UnauthorizedResponse(c, "could not receive `code` from authorizing party")
		return
	}

	state := c.Query("state")
	if state == "" {
		errors.UnauthorizedResponse(c, "could not receive `state` from authorizing party")
		return
	}

	isValid, err := h.authSvc.ValidateState(ctx, h.stateKey(state))
	if err != nil {
		errors.InternalServerErrorResponse(c, "could not validate state")
		return
	}
	if !isValid {
		errors.UnauthorizedResponse(c, "invalid state")
		return
	}

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		log.Warn("code exchange failed", "error", err)
		errors.UnauthorizedResponse(c, "could not retrieve access token")
		return
	}

	user, err := h.provider.GetOAuthUser(ctx, token)
	if err != nil {
		log.Warn("fetching provider user failed", "error", err)
		errors.UnauthorizedResponse(c, "could not get user data")
		return
	}

	loginResp, err := h.authSvc.LoginOAuth(ctx, user)
	if err != nil {
		log.Error("oauth login failed", "error", err)
		switch {
		case stderrors.Is(err, errors.ErrUnauthorized):
			errors.UnauthorizedResponse(c, "provider account has no email")
		case stderrors.Is(err, errors.ErrInternalServer), stderrors.Is(err, errors.ErrTokenSignature):
			errors.InternalServerErrorResponse(c, "failed to generate session")
		default:
			errors.BackendErrorResponse(c, err)
		}
		return
	}

	h.cookies.setTokens(c, loginResp.AccessToken, loginResp.RefreshToken)
	responses.Redirect(c, h.frontendURL)
}
