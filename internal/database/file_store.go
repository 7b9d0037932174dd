// internal/database/file_store.go
package database

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const keyFileName = ".key"

// FileStore writes one sealed file per session key under dir. Files are
// encrypted with NaCl secretbox so a copied credential file is useless
// without the key.
type FileStore struct {
	dir string
	key [32]byte
}

// NewFileStore prepares dir (0700). When secret is empty a random key is
// generated once and kept in dir/.key.
func NewFileStore(dir, secret string) (*FileStore, error) {
	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	s := &FileStore{dir: dir}
	if secret != "" {
		s.key = sha256.Sum256([]byte(secret))
		return s, nil
	}
	if err := s.loadOrCreateKey(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadOrCreateKey() error {
	path := filepath.Join(s.dir, keyFileName)
	b, err := os.ReadFile(path)
	if err == nil && len(b) == len(s.key) {
		copy(s.key[:], b)
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read session key: %w", err)
	}
	if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
		return fmt.Errorf("generate session key: %w", err)
	}
	return os.WriteFile(path, s.key[:], 0o600)
}

func (s *FileStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".session")
}

func (s *FileStore) Load(_ context.Context, key string) (Credential, bool, error) {
	sealed, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, fmt.Errorf("read credential: %w", err)
	}
	if len(sealed) < 24 {
		return Credential{}, false, errors.New("credential file truncated")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, &s.key)
	if !ok {
		return Credential{}, false, errors.New("credential file cannot be opened with the current key")
	}
	var cred Credential
	if err := json.Unmarshal(plain, &cred); err != nil {
		return Credential{}, false, fmt.Errorf("decode credential: %w", err)
	}
	return cred, true, nil
}

func (s *FileStore) Save(_ context.Context, key string, cred Credential) error {
	plain, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &s.key)

	tmp, err := os.CreateTemp(s.dir, "cred-*")
	if err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write credential: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

func expandHome(dir string) (string, error) {
	if dir == "" {
		dir = "~/.tusep"
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}
