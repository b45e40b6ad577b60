package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"pitstop/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	dataDirPerm  = 0o755
	dataFilePerm = 0o644
)

// Store is a whole-file JSON document store. Every write rewrites the
// entire file; there is no partial update.
type Store struct {
	path string
}

func New(config *config.Config) (*Store, error) {
	path := filepath.Join(config.Storage.DataDir, config.Storage.BookingsFile)

	store := &Store{path: path}
	if err := store.ensureFile(); err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Msg("File store initialized")

	return store, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file and unmarshals it into value. A missing file
// is not an error; value is left untouched.
func (s *Store) Load(value any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrap(err, "reading data file")
	}

	if err := json.Unmarshal(data, value); err != nil {
		return errors.Wrap(err, "decoding data file")
	}

	return nil
}

// Save marshals value as pretty-printed JSON and rewrites the backing file.
// The write goes through a temp file and rename so a crash mid-write cannot
// leave a truncated file behind.
func (s *Store) Save(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding data file")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, dataFilePerm); err != nil {
		return errors.Wrap(err, "writing data file")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing data file")
	}

	return nil
}

func (s *Store) ensureFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return errors.Wrap(err, "creating data directory")
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		return errors.Wrap(err, "checking data file")
	}

	if err := os.WriteFile(s.path, []byte("[]"), dataFilePerm); err != nil {
		return errors.Wrap(err, "creating data file")
	}

	return nil
}
