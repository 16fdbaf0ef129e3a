// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package config builds the process configuration from CLI flags,
// environment variables and an optional TOML file. Everything is passed
// around explicitly; nothing reads ambient state after startup.
package config

import (
	"fmt"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	S3       S3Config
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host    string
	Port    int
	BaseURL string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

// AuthConfig carries the signing secret and the expiry windows for session
// tokens. It is injected into the token service at construction; nothing
// reads the secret from the environment at verification time.
type AuthConfig struct { //nolint:govet // fieldalignment not critical for config structs
	JWTSecret         string
	TokenExpiryHours  int
	CookieExpiresDays int
}

// TokenExpiry returns the session token lifetime.
func (c *AuthConfig) TokenExpiry() time.Duration {
	return time.Duration(c.TokenExpiryHours) * time.Hour
}

// CookieExpiry returns the jwt cookie lifetime.
func (c *AuthConfig) CookieExpiry() time.Duration {
	return time.Duration(c.CookieExpiresDays) * 24 * time.Hour
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:    cmd.String("host"),
			Port:    int(cmd.Int("port")),
			BaseURL: cmd.String("base-url"),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			JWTSecret:         cmd.String("jwt-secret"),
			TokenExpiryHours:  int(cmd.Int("jwt-expiry-hours")),
			CookieExpiresDays: int(cmd.Int("jwt-cookie-expires-days")),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		S3: S3Config{
			Endpoint:        cmd.String("s3-endpoint"),
			Region:          cmd.String("s3-region"),
			Bucket:          cmd.String("s3-bucket"),
			AccessKeyID:     cmd.String("s3-access-key-id"),
			SecretAccessKey: cmd.String("s3-secret-access-key"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	return cfg
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for links in outgoing email",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/quizdeck.db",
			Usage:   "SQLite database path",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:     "jwt-secret",
			Usage:    "Secret key for signing session tokens",
			Required: true,
			Sources:  cli.NewValueSourceChain(cli.EnvVar("JWT_SECRET"), toml.TOML("auth.jwt_secret", configFile)),
		},
		&cli.IntFlag{
			Name:    "jwt-expiry-hours",
			Value:   2160, // 90 days
			Usage:   "Session token lifetime in hours",
			Sources: cli.NewValueSourceChain(cli.EnvVar("JWT_EXPIRY_HOURS"), toml.TOML("auth.jwt_expiry_hours", configFile)),
		},
		&cli.IntFlag{
			Name:    "jwt-cookie-expires-days",
			Value:   90,
			Usage:   "jwt cookie lifetime in days",
			Sources: cli.NewValueSourceChain(cli.EnvVar("JWT_COOKIE_EXPIRES_DAYS"), toml.TOML("auth.jwt_cookie_expires_days", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP server host",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP server port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "From address for outgoing email",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Value:   "QuizDeck",
			Usage:   "From display name for outgoing email",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "S3-compatible endpoint for content storage",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_ENDPOINT"), toml.TOML("s3.endpoint", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Value:   "us-east-1",
			Usage:   "S3 region",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_REGION"), toml.TOML("s3.region", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "S3 bucket for content storage",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_BUCKET"), toml.TOML("s3.bucket", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-access-key-id",
			Usage:   "S3 access key id",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_ACCESS_KEY_ID"), toml.TOML("s3.access_key_id", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-secret-access-key",
			Usage:   "S3 secret access key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_SECRET_ACCESS_KEY"), toml.TOML("s3.secret_access_key", configFile)),
		},
	}
}
