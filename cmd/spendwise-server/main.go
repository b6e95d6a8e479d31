// Command spendwise-server runs the SpendWise fixture application on its
// own, for manual poking or for pointing an externally driven suite at a
// long-lived instance (SPENDWISE_BASE_URL).
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spendwise/spendwise-e2e/internal/config"
	"github.com/spendwise/spendwise-e2e/internal/obs"
	"github.com/spendwise/spendwise-e2e/internal/spendwise"
)

func main() {
	obs.Init()
	logger := obs.Pkg("main")

	cfg, err := config.LoadServer(os.Args[1:])
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	suiteCfg, err := config.LoadSuite()
	if err != nil {
		logger.Error("invalid suite configuration", "error", err)
		os.Exit(1)
	}

	store, err := spendwise.OpenStore(cfg.DatabasePath)
	if err != nil {
		logger.Error("open store", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer store.Close()

	var exporter *spendwise.Exporter
	if cfg.S3Endpoint != "" {
		exporter, err = spendwise.NewExporter(context.Background(),
			cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket,
			os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))
		if err != nil {
			logger.Error("configure exporter", "error", err)
			os.Exit(1)
		}
	}

	app, err := spendwise.NewApp(store, spendwise.Options{
		Username: suiteCfg.Username,
		Password: suiteCfg.Password,
		Exporter: exporter,
	})
	if err != nil {
		logger.Error("wire application", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	app.RegisterRoutes(mux)

	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
