package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore guarda cada clave como un archivo JSON dentro de un directorio.
// Escritura atómica vía archivo temporal + rename para no dejar valores a
// medias si el proceso muere durante el Put.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe y devuelve el store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// path sanea la clave para usarla como nombre de archivo.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

// Get lee el valor completo de la clave. Clave ausente → (nil, false, nil).
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: leer %s: %w", key, err)
	}
	return b, true, nil
}

// Put sobrescribe el valor completo (last-write-wins).
func (s *FileStore) Put(key string, value []byte) error {
	dst := s.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("storage: commit %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave; ausencia no es error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close no retiene recursos en este backend.
func (s *FileStore) Close() error { return nil }
