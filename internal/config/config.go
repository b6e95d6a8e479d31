// Package config provides centralized configuration for the SpendWise
// regression suite and the fixture server. Suite settings come from
// SPENDWISE_* environment variables with sensible defaults; the server
// binary additionally accepts CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spendwise/spendwise-e2e/internal/errs"
)

const (
	// DefaultWaitTimeout bounds every element wait. Never introduce a
	// larger timeout value anywhere in tests/browser.
	DefaultWaitTimeout  = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
	DefaultDialogSettle = 250 * time.Millisecond
)

// Suite holds configuration for a browser suite run.
type Suite struct {
	// BaseURL of the application under test. Empty means the suite
	// starts its own in-process fixture server.
	BaseURL string

	Headless bool

	// WaitTimeout and PollInterval parameterize every wait-poll loop.
	WaitTimeout  time.Duration
	PollInterval time.Duration

	// DialogSettle is the fixed delay between dismissing one
	// confirmation dialog and waiting for the next.
	DialogSettle time.Duration

	// Login credentials for the shared session.
	Username string
	Password string
}

// LoadSuite builds suite configuration from the environment.
func LoadSuite() (Suite, error) {
	cfg := Suite{
		BaseURL:      os.Getenv("SPENDWISE_BASE_URL"),
		Headless:     os.Getenv("SPENDWISE_HEADLESS") != "false",
		WaitTimeout:  DefaultWaitTimeout,
		PollInterval: DefaultPollInterval,
		DialogSettle: DefaultDialogSettle,
		Username:     envOr("SPENDWISE_USERNAME", "demo@spendwise.test"),
		Password:     envOr("SPENDWISE_PASSWORD", "spendwise-demo"),
	}

	var err error
	if cfg.WaitTimeout, err = envDuration("SPENDWISE_WAIT_TIMEOUT", cfg.WaitTimeout); err != nil {
		return Suite{}, err
	}
	if cfg.PollInterval, err = envDuration("SPENDWISE_POLL_INTERVAL", cfg.PollInterval); err != nil {
		return Suite{}, err
	}
	if cfg.DialogSettle, err = envDuration("SPENDWISE_DIALOG_SETTLE", cfg.DialogSettle); err != nil {
		return Suite{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Suite{}, err
	}
	return cfg, nil
}

// Validate checks invariants the wait-poll loops rely on.
func (c Suite) Validate() error {
	if c.WaitTimeout <= 0 {
		return errs.New(errs.InvalidArgument, "wait timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return errs.New(errs.InvalidArgument, "poll interval must be positive")
	}
	if c.PollInterval >= c.WaitTimeout {
		return errs.New(errs.InvalidArgument,
			fmt.Sprintf("poll interval %s must be shorter than wait timeout %s", c.PollInterval, c.WaitTimeout))
	}
	if c.DialogSettle < 0 {
		return errs.New(errs.InvalidArgument, "dialog settle delay must not be negative")
	}
	if c.Username == "" || c.Password == "" {
		return errs.New(errs.InvalidArgument, "login credentials must not be empty")
	}
	return nil
}

// Server holds configuration for the standalone fixture server.
type Server struct {
	ListenAddr   string
	DatabasePath string

	// S3 export settings. Empty endpoint disables the export surface.
	S3Endpoint string
	S3Bucket   string
	S3Region   string
}

// LoadServer parses server configuration from flags and environment.
func LoadServer(args []string) (Server, error) {
	fs := flag.NewFlagSet("spendwise-server", flag.ContinueOnError)
	listen := fs.String("listen", envOr("SPENDWISE_LISTEN", ":8080"), "listen address")
	dbPath := fs.String("db", envOr("SPENDWISE_DB", "spendwise.db"), "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return Server{}, errs.Wrap(errs.InvalidArgument, "parse server flags", err)
	}

	cfg := Server{
		ListenAddr:   *listen,
		DatabasePath: *dbPath,
		S3Endpoint:   os.Getenv("SPENDWISE_S3_ENDPOINT"),
		S3Bucket:     envOr("SPENDWISE_S3_BUCKET", "spendwise-exports"),
		S3Region:     envOr("SPENDWISE_S3_REGION", "us-east-1"),
	}
	if cfg.ListenAddr == "" {
		return Server{}, errs.New(errs.InvalidArgument, "listen address must not be empty")
	}
	if cfg.DatabasePath == "" {
		return Server{}, errs.New(errs.InvalidArgument, "database path must not be empty")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidArgument, fmt.Sprintf("invalid duration in %s", key), err)
	}
	return d, nil
}
