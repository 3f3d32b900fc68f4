package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type credential struct {
	APIKey string `json:"api_key"`
}

// FileCredentialStore persists the single cached assistant API credential on
// disk. A missing file reads as an empty credential, not an error.
type FileCredentialStore struct {
	path string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (f *FileCredentialStore) Read() (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var c credential
	if err := json.Unmarshal(b, &c); err != nil {
		return "", err
	}
	return c.APIKey, nil
}

func (f *FileCredentialStore) Write(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("invalid credential")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(credential{APIKey: apiKey}, "", "  ")
	if err != nil {
		return err
	}
	// Restrictive permissions, atomic replace.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Clear removes the cached credential. Clearing an absent credential is fine.
func (f *FileCredentialStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
