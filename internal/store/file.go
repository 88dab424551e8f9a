package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// FileExt is the extension of sealed wallet files.
const FileExt = ".cwt"

// FileStore keeps each user's wallet in <dir>/<userID>.cwt.
type FileStore struct {
	dir     string
	sealing Sealing
	log     zerolog.Logger
	mu      sync.Mutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string, sealing Sealing, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", model.ErrStoreUnavailable, dir, err)
	}
	return &FileStore{dir: dir, sealing: sealing, log: logger}, nil
}

// Path returns the file a user's wallet is stored in.
func (s *FileStore) Path(userID string) string {
	return filepath.Join(s.dir, userID+FileExt)
}

// read returns the file content. Missing and empty files are not found.
func (s *FileStore) read(userID string) ([]byte, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, model.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %v", model.ErrStoreUnavailable, err)
	}
	if len(data) == 0 {
		return nil, model.ErrWalletNotFound
	}
	return data, nil
}

func (s *FileStore) Get(_ context.Context, userID string) (*model.WalletRecord, error) {
	data, err := s.read(userID)
	if err != nil {
		return nil, err
	}
	return s.sealing.open(data)
}

func (s *FileStore) Address(_ context.Context, userID string) (string, error) {
	data, err := s.read(userID)
	if err != nil {
		return "", err
	}
	sealed, err := decodeSealed(data)
	if err != nil {
		return "", err
	}
	return sealed.Address, nil
}

func (s *FileStore) Put(_ context.Context, userID string, record *model.WalletRecord) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(userID)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return fmt.Errorf("%w: %s", model.ErrWalletExists, path)
	}

	data, err := s.sealing.seal(record)
	if err != nil {
		return err
	}

	// Write to a temp file and rename so a crash never leaves a torn file.
	tmp, err := os.CreateTemp(s.dir, "."+userID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write file: %v", model.ErrStoreUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	s.log.Info().Str("user", userID).Str("address", record.Address).Str("path", path).Msg("wallet stored")
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
