package configsqlite

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct is the database section of a config file. File points at a
// local sqlite database; Url at a remote libsql/turso one. exactly
// one should be set.
type Struct struct {
	File string `json:"file"`
	Url  string `json:"url"`
}

func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	if config.Url != "" {
		db, err := sql.Open("libsql", config.Url)
		if err != nil {
			return nil, err
		}
		return db, initSchema(db, schema)
	}
	if config.File == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	_, statErr := os.Stat(config.File)
	isNewDb := os.IsNotExist(statErr)
	if isNewDb {
		f, err := os.Create(config.File)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// sqlite writes poorly under concurrent connections, see
	// https://stackoverflow.com/questions/35804884
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	return db, initSchema(db, schema)
}

func initSchema(db *sql.DB, schema string) error {
	if schema == "" {
		return nil
	}
	_, err := db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}
	return nil
}
