package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sql.DB }

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// one writer keeps the read-modify-write of a key whole
	db.SetMaxOpenConns(1)
	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

// ---------- key-value -------------------------------------------------------

// Get returns the value stored under key; ok is false when the key is absent.
func (d *DB) Get(key string) (value string, ok bool, err error) {
	err = d.QueryRow(`SELECT value FROM kv WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (d *DB) Set(key, value string) error {
	_, err := d.Exec(`
        INSERT INTO kv (key, value, updated_at) VALUES (?,?,?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value,
            updated_at=excluded.updated_at
    `, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (d *DB) Remove(key string) error {
	if _, err := d.Exec(`DELETE FROM kv WHERE key=?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
