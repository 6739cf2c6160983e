package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/siglink-dev/siglink-gate/internal/vault"
	"github.com/siglink-dev/siglink-gate/pkg/schema"
)

const (
	plainExt  = ".json"
	sealedExt = ".sealed"
)

// fileStore keeps one file per record, named after the signature.
type fileStore struct {
	dir string
	key []byte
	mu  sync.Mutex // Protects concurrent writes to the filesystem
}

// NewFile initializes a file-backed record store rooted at cfg.Dir.
func NewFile(cfg FileConfig) (Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &fileStore{dir: cfg.Dir, key: cfg.Key}, nil
}

func (s *fileStore) ext() string {
	if s.key != nil {
		return sealedExt
	}
	return plainExt
}

// path validates the signature before using it as a file name. Ledger
// signatures are base58, so anything resembling a path is rejected.
func (s *fileStore) path(signature string) (string, error) {
	if signature == "" {
		return "", ErrEmptySignature
	}
	if strings.ContainsAny(signature, "/\\") || strings.Contains(signature, "..") {
		return "", fmt.Errorf("invalid signature for file store: %q", signature)
	}
	return filepath.Join(s.dir, signature+s.ext()), nil
}

func (s *fileStore) Put(_ context.Context, rec schema.AuthRecord) error {
	filePath, err := s.path(rec.Signature)
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if s.key != nil {
		sealed, err := vault.Encrypt(string(bytes), s.key)
		if err != nil {
			return fmt.Errorf("seal record %s: %w", rec.Signature, err)
		}
		bytes = []byte(sealed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temporary file first, then atomic rename. On failure we are
	// left with either the old record or the new one, never a corrupt file.
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, bytes, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return os.Rename(tempPath, filePath)
}

func (s *fileStore) Get(_ context.Context, signature string) (schema.AuthRecord, error) {
	filePath, err := s.path(signature)
	if err != nil {
		return schema.AuthRecord{}, err
	}

	s.mu.Lock()
	content, err := os.ReadFile(filePath)
	s.mu.Unlock()
	if os.IsNotExist(err) {
		return schema.AuthRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return schema.AuthRecord{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if s.key != nil {
		plain, err := vault.Decrypt(string(content), s.key)
		if err != nil {
			return schema.AuthRecord{}, fmt.Errorf("unseal record %s: %w", signature, err)
		}
		content = []byte(plain)
	}

	var rec schema.AuthRecord
	if err := json.Unmarshal(content, &rec); err != nil {
		return schema.AuthRecord{}, fmt.Errorf("corrupt record %s: %w", signature, err)
	}
	return rec, nil
}

func (s *fileStore) Delete(_ context.Context, signature string) error {
	filePath, err := s.path(signature)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *fileStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	entries, err := os.ReadDir(s.dir)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ext := s.ext()
	var sigs []string
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) == ext {
			sigs = append(sigs, strings.TrimSuffix(name, ext))
		}
	}
	return sigs, nil
}

func (s *fileStore) Stats(ctx context.Context) (map[string]any, error) {
	sigs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":   "file",
		"total":  len(sigs),
		"sealed": s.key != nil,
	}, nil
}

func (s *fileStore) Close(context.Context) error {
	return nil
}
