// Package store keeps quickspend's user data on disk as YAML: the category
// registry and the common-transaction list with its keyword frequencies.
// An empty path keeps a store in memory only.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

// readYAML decodes path into v. A missing file is reported as found=false with no error.
func readYAML(store, path string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &parsererror.StoreError{Store: store, Op: "read", Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return true, &parsererror.StoreError{Store: store, Op: "parse", Path: path, Err: err}
	}
	return true, nil
}

// writeYAML replaces path atomically by writing a sibling temp file and renaming it.
func writeYAML(store, path string, v interface{}) error {
	if path == "" {
		return nil
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return &parsererror.StoreError{Store: store, Op: "marshal", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return &parsererror.StoreError{Store: store, Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &parsererror.StoreError{Store: store, Op: "write", Path: path, Err: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &parsererror.StoreError{Store: store, Op: "write", Path: path, Err: err}
	}
	if err := tmp.Chmod(models.PermissionDataFile); err != nil {
		_ = tmp.Close()
		return &parsererror.StoreError{Store: store, Op: "chmod", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &parsererror.StoreError{Store: store, Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &parsererror.StoreError{Store: store, Op: "rename", Path: path, Err: fmt.Errorf("%s: %w", tmp.Name(), err)}
	}
	return nil
}
