package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		user        OAuthUser
		first, last string
	}{
		{OAuthUser{Name: "Ada Lovelace"}, "Ada", "Lovelace"},
		{OAuthUser{Name: "  Grace  Brewster Hopper "}, "Grace", "Brewster Hopper"},
		{OAuthUser{Name: "Plato"}, "Plato", ""},
		{OAuthUser{Username: "octocat"}, "octocat", ""},
	}

	for _, tc := range cases {
		first, last := tc.user.SplitName()
		assert.Equal(t, tc.first, first)
		assert.Equal(t, tc.last, last)
	}
}

func TestProviderName(t *testing.T) {
	assert.Equal(t, "github", GithubProvider.String())
	assert.Equal(t, "google", GoogleProvider.String())
}

func TestProviderUsers(t *testing.T) {
	gh := GithubUser{ID: 583231, Login: "octocat", Name: "The Octocat", Email: "octo@x.com"}.OAuthUser()
	assert.Equal(t, "583231", gh.ProviderID)
	assert.Equal(t, "github", gh.Provider)
	assert.Equal(t, "octocat", gh.Username)

	g := GoogleUser{ID: "1089", Email: "a@x.com", EmailVerified: true, Name: "Ada L.", GivenName: "Ada", FamilyName: "Lovelace"}.OAuthUser()
	first, last := g.SplitName()
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "Lovelace", last)
	assert.Equal(t, "google", g.Provider)
	assert.True(t, g.EmailVerified)
}
