package connector

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
	"tripvault-backend/lib/scrapers/bookingcom"
	"tripvault-backend/lib/testutil"
	"tripvault-backend/lib/timezone"
	"tripvault-backend/services/connector/db"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (BillStore, *db.Queries, string) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "connector",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	t.Cleanup(func() { res.DB.Close() })

	dir := t.TempDir()
	store, err := NewBillStore(res.DB, dir)
	require.NoError(t, err)
	return store, db.New(res.DB), dir
}

func TestSaveBills(t *testing.T) {
	store, qry, dir := setupStore(t)

	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, timezone.Location)
	err := store.SaveBills(context.Background(), []FileEntry{{
		Filename:    "2024-06-15-Hotel X.pdf",
		Filestream:  []byte("%PDF fake"),
		Vendor:      Vendor,
		Date:        date,
		Amount:      150,
		ContentType: ContentType,
	}})
	require.NoError(t, err)

	bills, err := qry.ListBills(context.Background(), Vendor)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	require.Equal(t, "2024-06-15-Hotel X.pdf", bills[0].Filename)
	require.Equal(t, date.Unix(), bills[0].Date)
	require.InDelta(t, 150.0, bills[0].Amount, 0.0001)
	require.Equal(t, ContentType, bills[0].ContentType)

	contents, err := os.ReadFile(filepath.Join(dir, "2024-06-15-Hotel X.pdf"))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF fake"), contents)

	// saving the same bill again must update, not duplicate
	err = store.SaveBills(context.Background(), []FileEntry{{
		Filename:    "2024-06-15-Hotel X.pdf",
		Filestream:  []byte("%PDF fake v2"),
		Vendor:      Vendor,
		Date:        date,
		Amount:      151,
		ContentType: ContentType,
	}})
	require.NoError(t, err)

	bills, err = qry.ListBills(context.Background(), Vendor)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	require.InDelta(t, 151.0, bills[0].Amount, 0.0001)
}

func TestSaveIdentityOverwrites(t *testing.T) {
	store, qry, _ := setupStore(t)

	err := store.SaveIdentity(context.Background(), bookingcom.Identity{Email: "jane.doe@example.com"})
	require.NoError(t, err)
	err = store.SaveIdentity(context.Background(), bookingcom.Identity{Email: "jane.new@example.com"})
	require.NoError(t, err)

	row, err := qry.GetIdentity(context.Background(), Vendor)
	require.NoError(t, err)

	var identity bookingcom.Identity
	require.NoError(t, json.Unmarshal([]byte(row.Record), &identity))
	require.Equal(t, "jane.new@example.com", identity.Email)
}
