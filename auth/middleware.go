package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/tokens"
)

// EmailKey is the gin context key holding the signed-in user's email.
const EmailKey = "email"

// JWTMiddleware admits requests carrying a valid access token cookie. An access
// token that has only expired, sent with a refresh cookie, answers token_expired
// so the client refreshes instead of signing in again.
func JWTMiddleware(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(tokens.AccessCookieName)
		if err != nil || token == "" {
			errors.UnauthorizedResponse(ctx, "unauthorized")
			return
		}

		claims, err := tokens.ParseAccess(token, secretKey)
		if err != nil {
			refresh, _ := ctx.Cookie(tokens.RefreshCookieName)
			if tokens.IsExpired(err) && refresh != "" {
				errors.UnauthorizedResponse(ctx, "token_expired")
			} else {
				errors.UnauthorizedResponse(ctx, "invalid_token")
			}
			return
		}

		ctx.Set(EmailKey, claims.Subject)
		ctx.Next()
	}
}

// CurrentEmail returns the email JWTMiddleware stored on the context.
func CurrentEmail(ctx *gin.Context) string {
	return ctx.GetString(EmailKey)
}
