package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver puro Go, sin CGO
)

// SQLiteStore guarda las claves en una tabla kv de un archivo SQLite local.
// Mismo contrato que FileStore: valor completo, last-write-wins.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base en path y asegura la tabla kv.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: abrir sqlite %s: %w", path, err)
	}
	// Un solo escritor lógico; evita SQLITE_BUSY en tests concurrentes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: crear tabla kv: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get devuelve el valor de la clave. Ausente → (nil, false, nil).
func (s *SQLiteStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: leer %s: %w", key, err)
	}
	return value, true, nil
}

// Put sobrescribe el valor completo con upsert.
func (s *SQLiteStore) Put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave; ausencia no es error.
func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Close cierra la base.
func (s *SQLiteStore) Close() error { return s.db.Close() }
