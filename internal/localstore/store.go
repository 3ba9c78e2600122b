// Package localstore keeps cart snapshots as JSON files, one file per storage key.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
)

type fileStore struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (port.CartStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &fileStore{dir: dir}, nil
}

// LoadCart returns an empty cart when nothing was saved under key yet.
func (s *fileStore) LoadCart(ctx context.Context, key string) ([]domain.CartItem, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	items, err := DecodeCart(data)
	if err != nil {
		return nil, fmt.Errorf("DecodeCart: %w", err)
	}

	return items, nil
}

func (s *fileStore) SaveCart(ctx context.Context, key string, items []domain.CartItem) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	data, err := EncodeCart(items)
	if err != nil {
		return fmt.Errorf("EncodeCart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func (s *fileStore) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key is empty")
	}

	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)

	return filepath.Join(s.dir, name+".json"), nil
}
