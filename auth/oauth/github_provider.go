package oauth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/auth/types"
	"github.com/mlmarch/mlmarch-gateway/config"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

type githubProvider struct {
	cfg       *config.GithubConfig
	client    *auth.Client
	userURL   string
	emailsURL string
}

func NewGithubProvider(cfg *config.GithubConfig, client *auth.Client) *githubProvider {
	return &githubProvider{
		cfg:       cfg,
		client:    client,
		userURL:   githubUserURL,
		emailsURL: githubEmailsURL,
	}
}

func (p *githubProvider) Name() string {
	return types.GithubProvider.String()
}

func (p *githubProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", p.cfg.ClientID)
	data.Set("client_secret", p.cfg.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", p.cfg.RedirectURI)

	var resp tokenResponse
	if err := p.client.PostFormJSON(ctx, p.cfg.ExchangeURL, data, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("github error: %s - %s", resp.Error, resp.ErrorDesc)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	return resp.AccessToken, nil
}

func (p *githubProvider) GetOAuthUser(ctx context.Context, token string) (types.OAuthUser, error) {
	var ghUser types.GithubUser
	if err := p.client.GetJSONWithToken(ctx, p.userURL, token, &ghUser); err != nil {
		return types.OAuthUser{}, err
	}

	user := ghUser.OAuthUser()
	if user.Email != "" {
		return user, nil
	}

	// private emails are only listed by the emails endpoint
	var emails []types.GithubEmail
	if err := p.client.GetJSONWithToken(ctx, p.emailsURL, token, &emails); err != nil {
		return types.OAuthUser{}, err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			user.Email = e.Email
			break
		}
	}
	if user.Email == "" {
		for _, e := range emails {
			if e.Verified {
				user.Email = e.Email
				break
			}
		}
	}
	if user.Email == "" {
		return types.OAuthUser{}, fmt.Errorf("no verified email found")
	}
	user.EmailVerified = true

	return user, nil
}
