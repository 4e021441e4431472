package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
)

// TokenFile is the name of the file the cached OAuth token (access_token +
// refresh_token) is stored in, under the user's config directory.
const TokenFile = "token.json"

// TokenStore holds the cached OAuth token set between runs. The authorizer
// only ever reads and writes tokens through this interface; it never touches
// the persisted representation directly.
type TokenStore interface {
	// Token returns the cached token, or (nil, nil) if none is cached.
	Token() (*oauth2.Token, error)
	// Save replaces the cached token.
	Save(tok *oauth2.Token) error
	// Clear removes the cached token. Clearing an empty store is not an error.
	Clear() error
}

// FileStore caches the token as JSON on disk, readable by the owner only.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore at the default config location.
func NewFileStore() *FileStore {
	return &FileStore{Path: filepath.Join(xdg.ConfigHome, xdgAppName, TokenFile)}
}

func (s *FileStore) Token() (*oauth2.Token, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open token file %s: %w", s.Path, err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", s.Path, err)
	}
	return tok, nil
}

func (s *FileStore) Save(tok *oauth2.Token) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create token directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", s.Path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to encode token to file %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete token file %s: %w", s.Path, err)
	}
	return nil
}
