package commands

import (
	"log/slog"
	"time"
	"tripvault-backend/lib/htmlpdf"
	"tripvault-backend/lib/serviceutil"
	"tripvault-backend/services/connector"
	"tripvault-backend/services/connector/db"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(billsCmd)
}

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Logs into the vendor and saves every reservation as a dated, amount-tagged bill.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()

		slog.Info("fetching bills using user", "username", cfg.Username)
		client := createClient(ctx, cfg)

		database, err := cfg.Database.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		store, err := connector.NewBillStore(database, cfg.OutputDir)
		if err != nil {
			serviceutil.Fatal("failed to initialize bill store", err)
		}

		converter, err := htmlpdf.NewConverter(ctx)
		if err != nil {
			serviceutil.Fatal("failed to start pdf converter", err)
		}
		defer converter.Close()

		service := connector.NewService(client, connector.NewPdfRenderer(converter), store)

		t1 := time.Now()
		saved, err := service.FetchBills(ctx)
		if err != nil {
			serviceutil.Fatal("failed to fetch bills", err)
		}
		t2 := time.Now()

		slog.Info("saved bills", "count", saved, "seconds", t2.Sub(t1).Seconds())
	},
}
