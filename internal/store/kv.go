package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Logical keys of the records table.
const (
	KeyDirectory = "karmaloop_user_data"
	KeyResult    = "karmaloop_result"
	KeySession   = "karmaloop_active_session"
)

// kvStore reads and writes whole JSON values by key.
type kvStore struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// get decodes the value under key into dst. It reports false when the key
// is absent.
func (s *kvStore) get(ctx context.Context, key string, dst any) (bool, error) {
	return getWith(ctx, s.drv, key, dst)
}

func (s *kvStore) put(ctx context.Context, key string, v any) error {
	return putWith(ctx, s.drv, key, v)
}

func (s *kvStore) delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	vals := make([]any, len(keys))
	for i, k := range keys {
		vals[i] = k
	}
	query, args := builder().Delete(recordsTable).Where(entsql.In(recordKey, vals...)).Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return &StorageError{Op: "delete", Key: keys[0], Err: err}
	}
	return nil
}

func (s *kvStore) deleteAll(ctx context.Context) error {
	query, args := builder().Delete(recordsTable).Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return &StorageError{Op: "delete all", Err: err}
	}
	return nil
}

// update runs a read-modify-write of key inside one transaction. fn gets
// the raw JSON (nil when absent) and returns the new value, or nil to leave
// the record untouched.
func (s *kvStore) update(ctx context.Context, key string, fn func(raw []byte) (any, error)) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return &StorageError{Op: "begin", Key: key, Err: err}
	}

	var raw json.RawMessage
	found, err := getWith(ctx, tx, key, &raw)
	if err != nil {
		tx.Rollback()
		return err
	}
	if !found {
		raw = nil
	}

	next, err := fn(raw)
	if err != nil {
		tx.Rollback()
		return err
	}
	if next == nil {
		return tx.Rollback()
	}
	if err := putWith(ctx, tx, key, next); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit", Key: key, Err: err}
	}
	return nil
}

func getWith(ctx context.Context, eq dialect.ExecQuerier, key string, dst any) (bool, error) {
	b := builder()
	query, args := b.Select(recordValue).
		From(b.Table(recordsTable)).
		Where(entsql.EQ(recordKey, key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := eq.Query(ctx, query, args, &rows); err != nil {
		return false, &StorageError{Op: "get", Key: key, Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, &StorageError{Op: "get", Key: key, Err: err}
		}
		return false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return false, &StorageError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func putWith(ctx context.Context, eq dialect.ExecQuerier, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	query, args := builder().Insert(recordsTable).
		Columns(recordKey, recordValue, recordUpdatedAt).
		Values(key, string(value), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns(recordKey),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := eq.Exec(ctx, query, args, nil); err != nil {
		return &StorageError{Op: "put", Key: key, Err: err}
	}
	return nil
}
