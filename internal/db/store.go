package db

import (
	"context"
	"database/sql"
)

// Store — единственная точка доступа к леджеру и справочнику.
// Создаётся один раз на старте и передаётся явно (никаких глобалов).
type Store struct {
	DB *sql.DB
}

func New(database *sql.DB) *Store {
	return &Store{DB: database}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) LedgerSize(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM ratings`).Scan(&n)
	return n, err
}
