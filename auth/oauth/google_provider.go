package oauth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/auth/types"
	"github.com/mlmarch/mlmarch-gateway/config"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type googleProvider struct {
	cfg         *config.GoogleConfig
	client      *auth.Client
	userInfoURL string
}

func NewGoogleProvider(cfg *config.GoogleConfig, client *auth.Client) *googleProvider {
	return &googleProvider{
		cfg:         cfg,
		client:      client,
		userInfoURL: googleUserInfoURL,
	}
}

func (p *googleProvider) Name() string {
	return types.GoogleProvider.String()
}

func (p *googleProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", p.cfg.ClientID)
	data.Set("client_secret", p.cfg.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", p.cfg.RedirectURI)
	data.Set("grant_type", "authorization_code")

	var resp tokenResponse
	if err := p.client.PostFormJSON(ctx, p.cfg.ExchangeURL, data, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("google error: %s - %s", resp.Error, resp.ErrorDesc)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	return resp.AccessToken, nil
}

func (p *googleProvider) GetOAuthUser(ctx context.Context, token string) (types.OAuthUser, error) {
	var gUser types.GoogleUser
	if err := p.client.GetJSONWithToken(ctx, p.userInfoURL, token, &gUser); err != nil {
		return types.OAuthUser{}, err
	}

	if gUser.ID == "" {
		return types.OAuthUser{}, fmt.Errorf("google response missing user ID")
	}
	if gUser.Email == "" {
		return types.OAuthUser{}, fmt.Errorf("google response missing email")
	}
	if !gUser.EmailVerified {
		return types.OAuthUser{}, fmt.Errorf("email %s not verified by Google", gUser.Email)
	}

	return gUser.OAuthUser(), nil
}
