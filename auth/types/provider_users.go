package types

import "strconv"

type GithubUser struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type GithubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (u GithubUser) OAuthUser() OAuthUser {
	return OAuthUser{
		Name:       u.Name,
		Email:      u.Email,
		Provider:   GithubProvider.String(),
		ProviderID: strconv.Itoa(u.ID),
		AvatarURL:  u.AvatarURL,
		Username:   u.Login,
	}
}

// GoogleUser is the OpenID Connect userinfo document.
type GoogleUser struct {
	ID            string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
	Hd            string `json:"hd,omitempty"` // hosted domain for Workspace accounts
}

func (u GoogleUser) OAuthUser() OAuthUser {
	name := u.Name
	if u.GivenName != "" || u.FamilyName != "" {
		name = u.GivenName + " " + u.FamilyName
	}
	return OAuthUser{
		Name:          name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Provider:      GoogleProvider.String(),
		ProviderID:    u.ID,
		AvatarURL:     u.Picture,
		Username:      u.Name,
	}
}
