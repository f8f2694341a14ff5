package admin

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Auth errors
var (
	ErrInvalidPassphrase = errors.New("invalid admin passphrase")
	ErrNotConfigured     = errors.New("admin passphrase not configured")
)

// Service gates the destructive operator endpoints behind a shared
// passphrase. Only the bcrypt hash is held in memory after startup.
type Service struct {
	passphraseHash []byte
}

// New creates an admin service from the shared passphrase. An empty
// passphrase disables the admin surface entirely.
func New(passphrase string) (*Service, error) {
	if passphrase == "" {
		return &Service{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{passphraseHash: hash}, nil
}

// Enabled reports whether a passphrase was configured
func (s *Service) Enabled() bool {
	return len(s.passphraseHash) > 0
}

// Verify checks a presented passphrase against the configured one
func (s *Service) Verify(passphrase string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(s.passphraseHash, []byte(passphrase)); err != nil {
		return ErrInvalidPassphrase
	}
	return nil
}
