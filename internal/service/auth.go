package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier decides whether a console line unlocks the session.
type PasswordVerifier interface {
	Verify(candidate string) error
}

// PlainVerifier compares against a fixed secret.
type PlainVerifier struct {
	secret []byte
}

func NewPlainVerifier(secret string) *PlainVerifier {
	return &PlainVerifier{secret: []byte(secret)}
}

func (v *PlainVerifier) Verify(candidate string) error {
	if subtle.ConstantTimeCompare(v.secret, []byte(candidate)) != 1 {
		return ErrAuth
	}
	return nil
}

// BcryptVerifier checks the line against a bcrypt hash from config.
type BcryptVerifier struct {
	hash []byte
}

func NewBcryptVerifier(hash string) (*BcryptVerifier, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &BcryptVerifier{hash: []byte(hash)}, nil
}

func (v *BcryptVerifier) Verify(candidate string) error {
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrAuth
	}
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}
