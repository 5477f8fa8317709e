package types

import "strings"

// OAuthUser is a signed-in provider account, normalized across providers.
type OAuthUser struct {
	Name          string
	Email         string
	EmailVerified bool
	Provider      string
	ProviderID    string
	AvatarURL     string
	Username      string
}

// SplitName splits the display name into first and last names; a blank name
// falls back to the username.
func (u OAuthUser) SplitName() (first, last string) {
	parts := strings.Fields(u.Name)
	switch len(parts) {
	case 0:
		return u.Username, ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
