package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise-e2e/internal/errs"
)

func TestLoadSuite_Defaults(t *testing.T) {
	cfg, err := LoadSuite()
	require.NoError(t, err)

	assert.Equal(t, DefaultWaitTimeout, cfg.WaitTimeout)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultDialogSettle, cfg.DialogSettle)
	assert.True(t, cfg.Headless)
	assert.NotEmpty(t, cfg.Username)
	assert.NotEmpty(t, cfg.Password)
}

func TestLoadSuite_EnvOverrides(t *testing.T) {
	t.Setenv("SPENDWISE_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("SPENDWISE_HEADLESS", "false")
	t.Setenv("SPENDWISE_WAIT_TIMEOUT", "2s")
	t.Setenv("SPENDWISE_POLL_INTERVAL", "50")

	cfg, err := LoadSuite()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 2*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
}

func TestLoadSuite_RejectsMalformedDuration(t *testing.T) {
	t.Setenv("SPENDWISE_WAIT_TIMEOUT", "soon")

	_, err := LoadSuite()
	require.Error(t, err)
	assert.Equal(t, errs.InvalidArgument, errs.CodeOf(err))
}

func TestSuiteValidate(t *testing.T) {
	base := Suite{
		Headless:     true,
		WaitTimeout:  5 * time.Second,
		PollInterval: 100 * time.Millisecond,
		DialogSettle: 250 * time.Millisecond,
		Username:     "demo@spendwise.test",
		Password:     "pw",
	}
	require.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*Suite)
	}{
		{"zero timeout", func(c *Suite) { c.WaitTimeout = 0 }},
		{"zero poll", func(c *Suite) { c.PollInterval = 0 }},
		{"poll >= timeout", func(c *Suite) { c.PollInterval = c.WaitTimeout }},
		{"negative settle", func(c *Suite) { c.DialogSettle = -time.Millisecond }},
		{"empty credentials", func(c *Suite) { c.Password = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errs.InvalidArgument, errs.CodeOf(err))
		})
	}
}

func TestLoadServer(t *testing.T) {
	cfg, err := LoadServer([]string{"-listen", "127.0.0.1:0", "-db", "t.db"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", cfg.ListenAddr)
	assert.Equal(t, "t.db", cfg.DatabasePath)
	assert.Equal(t, "spendwise-exports", cfg.S3Bucket)
}
