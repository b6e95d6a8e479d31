// Package browser holds the ordered SpendWise regression suite. The
// suite either targets an externally running instance (SPENDWISE_BASE_URL)
// or starts the fixture application in-process on an ephemeral port,
// backed by a temporary sqlite store and an in-memory S3 for the export
// surface.
package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise-e2e/internal/config"
	"github.com/spendwise/spendwise-e2e/internal/errs"
	"github.com/spendwise/spendwise-e2e/internal/session"
	"github.com/spendwise/spendwise-e2e/internal/spendwise"
)

const exportBucket = "spendwise-exports"

type suiteEnv struct {
	cfg     config.Suite
	baseURL string
	sess    *session.Session
}

// setupSuite prepares the application under test and the one
// authenticated browser session every case shares. Disposal is
// registered on t.Cleanup, so it runs exactly once after the whole
// ordered group, however many cases failed.
func setupSuite(t *testing.T) *suiteEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("browser suite skipped in short mode")
	}

	cfg, err := config.LoadSuite()
	require.NoError(t, err)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = startFixtureApp(t, cfg)
	}

	sess, err := session.New(cfg, baseURL, session.DefaultMarkers())
	if err != nil {
		if errs.CodeOf(err) == errs.SetupFailure && strings.Contains(err.Error(), "playwright driver unavailable") {
			t.Skipf("playwright not installed, run 'npx playwright install chromium': %v", err)
		}
		t.Fatalf("establish browser session: %v", err)
	}
	t.Cleanup(sess.Dispose)

	return &suiteEnv{cfg: cfg, baseURL: baseURL, sess: sess}
}

func startFixtureApp(t *testing.T, cfg config.Suite) string {
	t.Helper()

	store, err := spendwise.OpenStore(filepath.Join(t.TempDir(), "spendwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	app, err := spendwise.NewApp(store, spendwise.Options{
		Username: cfg.Username,
		Password: cfg.Password,
		Exporter: startFakeS3(t),
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	app.RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func startFakeS3(t *testing.T) *spendwise.Exporter {
	t.Helper()

	backend := s3mem.New()
	ts := httptest.NewServer(gofakes3.New(backend).Server())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		),
	)
	require.NoError(t, err)

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(ts.URL)
		o.UsePathStyle = true
	})
	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(exportBucket),
	})
	require.NoError(t, err)

	return spendwise.NewExporterFromClient(client, exportBucket, ts.URL+"/"+exportBucket)
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
