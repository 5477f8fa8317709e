package oauth

import (
	"context"

	"github.com/mlmarch/mlmarch-gateway/auth/types"
)

const (
	OAuthPrefix = "oauth:state:"
)

type Provider interface {
	Name() string
	ExchangeCode(ctx context.Context, code string) (accessToken string, err error)
	GetOAuthUser(ctx context.Context, token string) (types.OAuthUser, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}
