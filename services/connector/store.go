package connector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"tripvault-backend/lib/scrapers/bookingcom"
	"tripvault-backend/services/connector/db"
)

// BillStore keeps bill metadata in the connector database and the
// rendered streams on disk next to it.
type BillStore struct {
	db        *sql.DB
	qry       *db.Queries
	directory string
}

func NewBillStore(database *sql.DB, directory string) (BillStore, error) {
	err := os.MkdirAll(directory, 0755)
	if err != nil {
		return BillStore{}, err
	}
	return BillStore{
		db:        database,
		qry:       db.New(database),
		directory: directory,
	}, nil
}

func (s BillStore) SaveBills(ctx context.Context, entries []FileEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, entry := range entries {
		path := filepath.Join(s.directory, entry.Filename)
		err = os.WriteFile(path, entry.Filestream, 0644)
		if err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
		err = txqry.UpsertBill(ctx, db.UpsertBillParams{
			Vendor:      entry.Vendor,
			Filename:    entry.Filename,
			Filepath:    path,
			Date:        entry.Date.Unix(),
			Amount:      entry.Amount,
			ContentType: entry.ContentType,
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveIdentity overwrites any previously stored identity record.
func (s BillStore) SaveIdentity(ctx context.Context, identity bookingcom.Identity) error {
	record, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.qry.UpsertIdentity(ctx, db.UpsertIdentityParams{
		Vendor: Vendor,
		Record: string(record),
	})
}
