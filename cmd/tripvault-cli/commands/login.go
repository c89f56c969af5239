package commands

import (
	"context"
	"errors"
	"tripvault-backend/lib/configutil"
	configsqlite "tripvault-backend/lib/configutil/sqlite"
	"tripvault-backend/lib/restyutil"
	"tripvault-backend/lib/scrapers/bookingcom"
	"tripvault-backend/lib/serviceutil"
)

type Config struct {
	Username  string              `json:"username"`
	Password  string              `json:"password"`
	Database  configsqlite.Struct `json:"database"`
	OutputDir string              `json:"output_dir"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "bills"
	}
	return cfg
}

// createClient builds the vendor session and authenticates it with
// the full retry policy. the two non-retryable outcomes get their own
// operator-facing failure messages.
func createClient(ctx context.Context, cfg Config) *bookingcom.Client {
	bookingcom.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/bookingcom"))

	client, err := bookingcom.NewClient(ctx, bookingcom.ClientOptions{})
	if err != nil {
		serviceutil.Fatal("failed to initialize vendor client", err)
	}

	err = bookingcom.LoginWithRetry(ctx, client, cfg.Username, cfg.Password, bookingcom.DefaultRetryPolicy())
	switch {
	case errors.Is(err, bookingcom.ErrBadCredentials):
		serviceutil.Fatal("login failed: credentials are invalid", err)
	case errors.Is(err, bookingcom.ErrUserActionRequired):
		serviceutil.Fatal("login failed: the vendor requires a password change", err)
	case err != nil:
		serviceutil.Fatal("login failed: vendor unavailable", err)
	}

	return client
}
