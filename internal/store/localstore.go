// Package store persists the cart and the order list as independently keyed
// JSON blobs, the server-side equivalent of the browser's local storage. All
// mutations route through the owning store's load/save methods; nothing else
// touches the files.
package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LocalStore is a directory of named text blobs, one file per key. Readers
// tolerate missing keys and malformed content; a corrupt blob reads as empty
// rather than failing.
type LocalStore struct {
	dir string
	log logrus.FieldLogger
}

// NewLocalStore creates the backing directory if needed.
func NewLocalStore(dir string, log logrus.FieldLogger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create store dir")
	}
	return &LocalStore{dir: dir, log: log}, nil
}

func (ls *LocalStore) path(key string) string {
	return filepath.Join(ls.dir, key+".json")
}

// Get returns the blob for key, or nil when the key is absent.
func (ls *LocalStore) Get(key string) []byte {
	data, err := os.ReadFile(ls.path(key))
	if err != nil {
		return nil
	}
	return data
}

// Set writes the blob for key in full; there is no partial persistence.
func (ls *LocalStore) Set(key string, data []byte) error {
	if err := os.WriteFile(ls.path(key), data, 0644); err != nil {
		return errors.Wrapf(err, "persist %s", key)
	}
	return nil
}
