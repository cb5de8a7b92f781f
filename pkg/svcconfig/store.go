// pkg/svcconfig/store.go

package svcconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
)

const appID = "sysdeploy"

// Store persists service configurations as one JSON file per service name.
// Single-operator use is assumed; concurrent writers to the same name race
// and the last write wins.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at the user config directory.
func NewStore() *Store {
	return &Store{Dir: xdg.XDGConfigPath(appID, "")}
}

// NewStoreAt returns a store rooted at an explicit directory.
func NewStoreAt(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the on-disk location for a named configuration.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

// Save writes cfg as 2-space-indented JSON, creating the directory if
// needed. An existing file of the same name is overwritten.
func (s *Store) Save(cfg *ServiceConfig) (string, error) {
	if err := os.MkdirAll(s.Dir, xdg.DirPermStandard); err != nil {
		return "", cerr.Wrap(err, "creating config directory")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", cerr.Wrap(err, "encoding service configuration")
	}
	data = append(data, '\n')

	path := s.Path(cfg.Name)
	if err := os.WriteFile(path, data, xdg.FilePermStandard); err != nil {
		return "", cerr.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// Load reads a configuration by service name. Returns (nil, nil) when absent.
func (s *Store) Load(name string) (*ServiceConfig, error) {
	return LoadPath(s.Path(name))
}

// LoadPath reads a configuration from an explicit file path. Returns
// (nil, nil) when the file does not exist.
func LoadPath(path string) (*ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, cerr.Wrapf(err, "reading %s", path)
	}

	var cfg ServiceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, cerr.Wrapf(err, "decoding %s", path)
	}
	return &cfg, nil
}

// List returns the sorted name stems of every saved configuration. A missing
// directory is an empty list, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, cerr.Wrapf(err, "reading %s", s.Dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
