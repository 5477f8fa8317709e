package tokens

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mlmarch/mlmarch-gateway/errors"
)

const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 7 * 24 * time.Hour

	CookiePath        = "/"
	AccessCookieName  = "jwt"
	RefreshCookieName = "refresh_token"

	TypeAccess  = "access"
	TypeRefresh = "refresh"

	issuer = "mlmarch"
)

type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Secrets struct {
	Access  string
	Refresh string
}

func sign(email, typ, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrTokenSignature, err)
	}
	return s, nil
}

// Issue signs an access/refresh pair for email.
func Issue(email string, secrets Secrets) (*TokenPair, error) {
	now := time.Now()

	access, err := sign(email, TypeAccess, secrets.Access, AccessTokenDuration, now)
	if err != nil {
		return nil, err
	}
	refresh, err := sign(email, TypeRefresh, secrets.Refresh, RefreshTokenDuration, now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// SignAccess signs a single access token. Tests use it to authenticate requests.
func SignAccess(email, secret string) (string, error) {
	return sign(email, TypeAccess, secret, AccessTokenDuration, time.Now())
}

func parse(token, secret, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}

	claims := parsed.Claims.(*Claims)
	if claims.Type != wantType {
		return nil, errors.ErrInvalidTokenType
	}
	return claims, nil
}

func ParseAccess(token, secret string) (*Claims, error) {
	return parse(token, secret, TypeAccess)
}

func ParseRefresh(token, secret string) (*Claims, error) {
	return parse(token, secret, TypeRefresh)
}

// IsExpired reports whether err came from a token that is only past its expiry.
func IsExpired(err error) bool {
	return err != nil && stderrors.Is(err, jwt.ErrTokenExpired)
}
