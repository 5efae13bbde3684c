package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// TokenFromFile retrieves a token from a local file.
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("unable to decode token in %s: %w", file, err)
	}
	return tok, nil
}

// SaveToken writes a token to path, readable only by the owner.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// RemoveToken deletes a cached token. A missing file is not an error.
func RemoveToken(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to remove cached token: %w", err)
	}
	return nil
}

// TokenFile persists tokens at a fixed path.
type TokenFile string

func (p TokenFile) Load() (*oauth2.Token, error) { return TokenFromFile(string(p)) }
func (p TokenFile) Save(t *oauth2.Token) error   { return SaveToken(string(p), t) }
func (p TokenFile) Clear() error                 { return RemoveToken(string(p)) }
