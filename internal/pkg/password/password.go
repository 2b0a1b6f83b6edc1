package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 8
	// MaxLength is the bcrypt input limit.
	MaxLength = 72
)

var (
	ErrTooShort = errors.New("password too short")
	ErrTooLong  = errors.New("password too long")
	ErrMismatch = errors.New("password mismatch")
)

func Validate(plain string) error {
	switch {
	case len(plain) < MinLength:
		return ErrTooShort
	case len(plain) > MaxLength:
		return ErrTooLong
	}
	return nil
}

func Hash(plain string) (string, error) {
	if err := Validate(plain); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
