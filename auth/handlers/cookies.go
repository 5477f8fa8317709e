package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/tokens"
)

type cookieWriter struct {
	secure bool
}

func (w cookieWriter) setTokens(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		tokens.RefreshCookieName,
		refresh,
		int(tokens.RefreshTokenDuration.Seconds()),
		tokens.CookiePath,
		"",
		w.secure,
		true,
	)
	c.SetCookie(
		tokens.AccessCookieName,
		access,
		int(tokens.AccessTokenDuration.Seconds()),
		tokens.CookiePath,
		"",
		w.secure,
		true,
	)
}

func (w cookieWriter) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokens.AccessCookieName, "", -1, tokens.CookiePath, "", w.secure, true)
	c.SetCookie(tokens.RefreshCookieName, "", -1, tokens.CookiePath, "", w.secure, true)
}
