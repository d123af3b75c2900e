package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password hash schemes. SchemeSHA256 is the historical on-disk format
// (hex digest in users.json); SchemeBcrypt can be opted into for new
// hashes. Verification dispatches on the stored hash, so a store can hold
// a mix of both.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher hashes and verifies passwords under a configured scheme.
type Hasher struct {
	scheme string
}

// NewHasher returns a Hasher for the given scheme. An unknown scheme
// falls back to sha256.
func NewHasher(scheme string) *Hasher {
	if scheme != SchemeBcrypt {
		scheme = SchemeSHA256
	}
	return &Hasher{scheme: scheme}
}

// HashPassword hashes a plaintext password for storage.
func (h *Hasher) HashPassword(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(b), nil
	}
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
// Bcrypt hashes are recognized by their "$2" prefix; everything else is
// treated as a sha256 hex digest.
func (h *Hasher) CheckPasswordHash(password, hash string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	sum := sha256.Sum256([]byte(password))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) == 1
}
