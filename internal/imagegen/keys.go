package imagegen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const apiKeyVar = "GEMINI_API_KEY"

// EnvKeySelector reads the API key from the environment and, on SelectKey,
// re-reads it from the env file so a rotated key is picked up without a restart.
type EnvKeySelector struct {
	envFile string

	mu  sync.RWMutex
	key string
}

func NewEnvKeySelector(envFile, initialKey string) *EnvKeySelector {
	return &EnvKeySelector{envFile: envFile, key: strings.TrimSpace(initialKey)}
}

func (s *EnvKeySelector) HasSelectedKey(_ context.Context) (bool, error) {
	return s.APIKey() != "", nil
}

func (s *EnvKeySelector) SelectKey(_ context.Context) error {
	key := ""

	if s.envFile != "" {
		values, err := godotenv.Read(s.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("godotenv.Read: %w", err)
		}
		key = strings.TrimSpace(values[apiKeyVar])
	}
	if key == "" {
		key = strings.TrimSpace(os.Getenv(apiKeyVar))
	}
	if key == "" {
		return ErrNoKey
	}

	s.mu.Lock()
	s.key = key
	s.mu.Unlock()

	return nil
}

func (s *EnvKeySelector) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.key
}
