// Package uploads сохраняет загруженные файлы (изображения профиля)
// на диск под случайными именами.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize ограничивает размер загружаемого изображения.
const MaxImageSize = 5 << 20 // 5 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store сохраняет файлы в каталоге dir.
type Store struct {
	dir string
}

// NewStore создает каталог для загрузок, если его нет.
func NewStore(dir string) (*Store, error) {
	const op = "uploads.NewStore"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{dir: dir}, nil
}

// Save записывает содержимое r в новый файл и возвращает его имя.
// Расширение берется из исходного имени и проверяется по списку
// допустимых форматов изображений.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	const op = "uploads.Save"

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%s: unsupported file extension %q", op, ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxImageSize)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// Remove удаляет ранее сохраненный файл. Отсутствие файла не ошибка.
func (s *Store) Remove(name string) error {
	const op = "uploads.Remove"
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Dir возвращает каталог загрузок, нужен для раздачи статики.
func (s *Store) Dir() string {
	return s.dir
}
