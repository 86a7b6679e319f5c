// Package auth issues and checks session credentials.
package auth

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

// PasswordHasher hashes passwords into the encoded $argon2id$ format stored in users.password_hash.
type PasswordHasher struct {
	params *argon2id.Params
}

// NewPasswordHasher uses the library's default cost parameters.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{params: argon2id.DefaultParams}
}

// NewPasswordHasherWithParams is mostly useful in tests, where cheap parameters keep runs fast.
func NewPasswordHasherWithParams(p *argon2id.Params) *PasswordHasher {
	return &PasswordHasher{params: p}
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	if plain == "" {
		return "", errors.New("password is empty")
	}
	return argon2id.CreateHash(plain, h.params)
}

// Verify compares plain against an encoded hash.
func (h *PasswordHasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
