package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EncodingQuery = "query"
	EncodingREST  = "rest"
)

type BackendConfig struct {
	URL      string
	Encoding string
	Timeout  time.Duration
}

type RedisConfig struct {
	HOST string
}

type AWSConfig struct {
	Region string
}

type DynamoDBConfig struct {
	IdentitiesTableName string
}

type JWTConfig struct {
	SecretKey        string
	RefreshSecretKey string
}

type CorsConfig struct {
	Origins string
}

// OAuthConfig holds the client settings shared by every OAuth provider.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	ExchangeURL  string
}

type GithubConfig struct {
	OAuthConfig
}

type GoogleConfig struct {
	OAuthConfig
}

type CacheConfig struct {
	SessionsTTL time.Duration
}

type Config struct {
	Env         string
	GatewayAddr string
	FrontendURL string
	Tracing     bool

	BackendConfig  *BackendConfig
	RedisConfig    *RedisConfig
	AWSConfig      *AWSConfig
	DynamoDBConfig *DynamoDBConfig
	JWTConfig      *JWTConfig
	CorsConfig     *CorsConfig
	GithubConfig   *GithubConfig
	GoogleConfig   *GoogleConfig
	CacheConfig    *CacheConfig
}

func LoadConfig() Config {
	return Config{
		Env:         getEnv("ENV", "DEV"),
		GatewayAddr: getEnv("GATEWAY_ADDR", ":8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Tracing:     getBool("TRACING", false),

		BackendConfig: &BackendConfig{
			URL:      os.Getenv("BACKEND_URL"),
			Encoding: strings.ToLower(getEnv("BACKEND_ENCODING", EncodingQuery)),
			Timeout:  getDuration("BACKEND_TIMEOUT", 0),
		},
		RedisConfig: &RedisConfig{
			HOST: getEnv("REDIS_HOST", "localhost:6379"),
		},
		AWSConfig: &AWSConfig{
			Region: getEnv("AWS_REGION", "eu-central-1"),
		},
		DynamoDBConfig: &DynamoDBConfig{
			IdentitiesTableName: getEnv("DYNAMODB_IDENTITIES_TABLE", "mlmarch-identities"),
		},
		JWTConfig: &JWTConfig{
			SecretKey:        os.Getenv("JWT_SECRET_KEY"),
			RefreshSecretKey: os.Getenv("JWT_REFRESH_SECRET_KEY"),
		},
		CorsConfig: &CorsConfig{
			Origins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		GithubConfig: &GithubConfig{
			OAuthConfig: OAuthConfig{
				ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
				ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
				RedirectURI:  os.Getenv("GITHUB_REDIRECT_URI"),
				ExchangeURL:  getEnv("GITHUB_EXCHANGE_URL", "https://github.com/login/oauth/access_token"),
			},
		},
		GoogleConfig: &GoogleConfig{
			OAuthConfig: OAuthConfig{
				ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
				ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
				RedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
				ExchangeURL:  getEnv("GOOGLE_EXCHANGE_URL", "https://oauth2.googleapis.com/token"),
			},
		},
		CacheConfig: &CacheConfig{
			SessionsTTL: getDuration("SESSIONS_CACHE_TTL", 5*time.Minute),
		},
	}
}

func (c Config) ValidateAllSecrets() error {
	var errs []error

	if c.BackendConfig == nil || c.BackendConfig.URL == "" {
		errs = append(errs, errors.New("BACKEND_URL is required"))
	} else if enc := c.BackendConfig.Encoding; enc != EncodingQuery && enc != EncodingREST {
		errs = append(errs, fmt.Errorf("BACKEND_ENCODING must be %q or %q, got %q", EncodingQuery, EncodingREST, enc))
	}
	if c.JWTConfig == nil || c.JWTConfig.SecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.JWTConfig == nil || c.JWTConfig.RefreshSecretKey == "" {
		errs = append(errs, errors.New("JWT_REFRESH_SECRET_KEY is required"))
	}
	if c.DynamoDBConfig == nil || c.DynamoDBConfig.IdentitiesTableName == "" {
		errs = append(errs, errors.New("DYNAMODB_IDENTITIES_TABLE is required"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
