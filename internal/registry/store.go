package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed registry used by the main node daemon. The
// table survives restarts so leaves keep their numbers across a main
// node power cycle.
type Store struct {
	db *sql.DB
}

// Open creates or opens the registry database under dir.
func Open(dir string) (*Store, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	mainfile := filepath.Join(dir, "registry.sqlite")
	if err := os.MkdirAll(filepath.Dir(mainfile), 0755); err != nil {
		return nil, fmt.Errorf("unable to create registry directory: %w", err)
	}
	db, err := sql.Open("sqlite", mainfile)
	if err != nil {
		return nil, fmt.Errorf("unable to open registry database: %w", err)
	}
	return initStore(db)
}

// OpenMemory opens a throwaway in-process database.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("unable to open registry database: %w", err)
	}
	return initStore(db)
}

func initStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`
		create table if not exists t_bindings (
			node integer primary key,
			dev_eui integer not null unique,
			bound_at integer not null default (unixepoch())
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize registry schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Assign(ctx context.Context, devEUI uint64) (uint8, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var node int64
	err = tx.QueryRowContext(ctx,
		`select node from t_bindings where dev_eui = ?`, int64(devEUI)).Scan(&node)
	switch {
	case err == nil:
		return uint8(node), nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, err
	}

	err = tx.QueryRowContext(ctx,
		`select coalesce(max(node), ?) + 1 from t_bindings`, int64(MinNode)-1).Scan(&node)
	if err != nil {
		return 0, err
	}
	if node > int64(MaxNode) {
		return 0, ErrFull
	}
	_, err = tx.ExecContext(ctx,
		`insert into t_bindings (node, dev_eui) values (?, ?)`, node, int64(devEUI))
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint8(node), nil
}

func (s *Store) Lookup(ctx context.Context, node uint8) (uint64, error) {
	var eui int64
	err := s.db.QueryRowContext(ctx,
		`select dev_eui from t_bindings where node = ?`, int64(node)).Scan(&eui)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return uint64(eui), nil
}

func (s *Store) Close() error { return s.db.Close() }
