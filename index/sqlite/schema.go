package sqlite

import (
	"database/sql"
	"fmt"
)

const defaultTable = "kb_vectors"

func schemaDDL(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    position  INTEGER PRIMARY KEY,
    embedding BLOB NOT NULL
);`, table)
}

// EnsureSchema creates the vector table in the provided database if it does
// not already exist.
func EnsureSchema(db *sql.DB, table string) error {
	if table == "" {
		table = defaultTable
	}
	_, err := db.Exec(schemaDDL(table))
	return err
}
