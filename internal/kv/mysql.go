package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"business-console/internal/sharding"
)

// MySQL error numbers that mean the server has no room for the write.
const (
	erRecordFileFull    = 1114 // ER_RECORD_FILE_FULL
	erDiskFull          = 1021 // ER_DISK_FULL
	erNetPacketTooLarge = 1153 // ER_NET_PACKET_TOO_LARGE
)

// MySQLStore spreads entries over shards of the kv_entries table.
type MySQLStore struct {
	dbShards []*sql.DB
	router   *sharding.ShardRouter
}

func NewMySQLStore(dbShards []*sql.DB, router *sharding.ShardRouter) *MySQLStore {
	return &MySQLStore{dbShards, router}
}

func (s *MySQLStore) shard(key string) *sql.DB {
	return s.dbShards[s.router.GetShard(key)%len(s.dbShards)]
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT v FROM kv_entries WHERE k = ?`
	var value []byte
	err := s.shard(key).QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`
	_, err := s.shard(key).ExecContext(ctx, query, key, value)
	return mysqlError(err)
}

func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE k = ?`
	_, err := s.shard(key).ExecContext(ctx, query, key)
	return mysqlError(err)
}

func mysqlError(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erRecordFileFull, erDiskFull, erNetPacketTooLarge:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	return err
}
