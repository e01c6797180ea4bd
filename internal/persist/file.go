package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// FileStorage is a Storage backed by a file that is replaced atomically on
// every write. A missing file reads as zeroes.
type FileStorage struct {
	mu     sync.Mutex
	path   string
	size   int
	data   []byte
	logger zerolog.Logger
}

// OpenFile opens or creates the image at path. The file is not written until
// the first WriteAt.
func OpenFile(path string, size int, logger zerolog.Logger) (*FileStorage, error) {
	data := make([]byte, size)
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read storage image %s: %w", path, err)
	default:
		copy(data, existing)
	}
	return &FileStorage{path: path, size: size, data: data, logger: logger}, nil
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// ReadAt implements platform.Storage.
func (f *FileStorage) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(f.size) {
		return 0, fmt.Errorf("read %d bytes at %d of %s: out of range", len(p), off, f.path)
	}
	return copy(p, f.data[off:]), nil
}

// WriteAt implements platform.Storage.
// The whole image is written to a pending file, synced and renamed into place.
func (f *FileStorage) WriteAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(f.size) {
		return 0, fmt.Errorf("write %d bytes at %d of %s: out of range", len(p), off, f.path)
	}

	next := make([]byte, f.size)
	copy(next, f.data)
	copy(next[off:], p)

	if err := f.replace(next); err != nil {
		return 0, err
	}
	f.data = next
	return len(p), nil
}

func (f *FileStorage) replace(data []byte) error {
	pendingFile, err := renameio.NewPendingFile(f.path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending storage image: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			f.logger.Debug().Err(err).Msg("cleanup pending storage image")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write storage image: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace storage image: %w", err)
	}
	return nil
}
