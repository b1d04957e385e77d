package secrets

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/osse101/HarvestBot_Go/internal/config"
	"github.com/osse101/HarvestBot_Go/internal/domain"
)

// Store persists credentials issued by registration into the env file so
// later runs reuse the same farmer identity.
type Store struct {
	path string
}

// NewStore writes to the given env file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// SaveCredentials merges the client credentials into the env file, keeping
// every unrelated key already present.
func (s *Store) SaveCredentials(clientID, clientSecret string) error {
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: refusing to persist empty credentials", domain.ErrFatal)
	}

	values, err := godotenv.Read(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read env file %s: %w", s.path, err)
		}
		values = make(map[string]string)
	}

	values[config.EnvClientID] = clientID
	values[config.EnvClientSecret] = clientSecret

	if err := godotenv.Write(values, s.path); err != nil {
		return fmt.Errorf("write env file %s: %w", s.path, err)
	}
	return nil
}

// LoadCredentials reads previously saved credentials, if any.
func (s *Store) LoadCredentials() (clientID, clientSecret string, err error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("read env file %s: %w", s.path, err)
	}
	return values[config.EnvClientID], values[config.EnvClientSecret], nil
}
