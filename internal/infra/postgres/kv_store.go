package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// KVStore keeps key/value pairs in the kv_store table created by the migrations package.
type KVStore struct {
	pool *pgxpool.Pool
}

func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// RaiseInt stores value under key when it exceeds the stored integer. The comparison runs inside
// the upsert, so concurrent writers cannot lower the value. Non-numeric values count as 0.
func (s *KVStore) RaiseInt(ctx context.Context, key string, value int) (int, bool, error) {
	if value <= 0 {
		return s.currentInt(ctx, key)
	}
	var stored string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		WHERE (CASE WHEN kv_store.value ~ '^[0-9]+$' THEN kv_store.value::bigint ELSE 0 END) < EXCLUDED.value::bigint
		RETURNING value`,
		key, strconv.Itoa(value)).Scan(&stored)
	if err == nil {
		return value, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("raise %s: %w", key, err)
	}
	return s.currentInt(ctx, key)
}

func (s *KVStore) currentInt(ctx context.Context, key string) (int, bool, error) {
	current, _, err := s.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(current)
	if err != nil || n < 0 {
		n = 0
	}
	return n, false, nil
}
