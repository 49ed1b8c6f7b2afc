package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateKV creates the kv_entries table on every shard if it does not exist.
func AutoMigrateKV(retries int, dbs ...*sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			k VARCHAR(255) NOT NULL PRIMARY KEY,
			v LONGBLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);
	`
	for _, db := range dbs {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
