package commands

import (
	"log/slog"
	"tripvault-backend/lib/serviceutil"
	"tripvault-backend/services/connector"
	"tripvault-backend/services/connector/db"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(identityCmd)
}

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Scrapes the account's personal details and stores them as the identity record.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()
		client := createClient(ctx, cfg)

		database, err := cfg.Database.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		store, err := connector.NewBillStore(database, cfg.OutputDir)
		if err != nil {
			serviceutil.Fatal("failed to initialize store", err)
		}

		service := connector.NewService(client, nil, store)
		identity, err := service.SyncIdentity(ctx)
		if err != nil {
			serviceutil.Fatal("failed to sync identity", err)
		}

		slog.Info(
			"stored identity",
			"account", identity.Email,
			"name", identity.Name.FormattedName,
		)
	},
}
