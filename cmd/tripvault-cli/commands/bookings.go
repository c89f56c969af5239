package commands

import (
	"os"
	"tripvault-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bookingsCmd)
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Lists the reservations the extractor sees without saving anything.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()
		client := createClient(ctx, cfg)

		bookings, err := client.Bookings(ctx)
		if err != nil {
			serviceutil.Fatal("failed to extract bookings", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Booking #", "Hotel", "Check-in", "Check-out", "Price", "Detail link"})
		for _, b := range bookings {
			checkin := ""
			if !b.Start.IsZero() {
				checkin = b.Start.Format("2006-01-02")
			}
			checkout := ""
			if !b.End.IsZero() {
				checkout = b.End.Format("2006-01-02")
			}
			t.AppendRow(table.Row{b.BookingNumber, b.Name, checkin, checkout, b.Price, b.SeeBookingURL})
		}
		t.Render()
	},
}
