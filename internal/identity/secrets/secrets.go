// Package secrets wraps credential hashing so the rest of the system treats
// credentials as opaque: hash on the way in, verify on the way through,
// never store or compare plaintext.
package secrets

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "talentgate/pkg/domain-errors"
)

// dummyHash is compared against when the user does not exist, so lookups
// for unknown and known usernames take the same bcrypt work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("talentgate-dummy"), bcrypt.DefaultCost)

// Hash creates a bcrypt hash of the provided credential.
func Hash(credential string) (string, error) {
	if credential == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "credential cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeBadRequest, "credential is too long")
		}
		return "", fmt.Errorf("could not hash credential: %w", err)
	}
	return string(hashed), nil
}

// Verify checks a plaintext credential against a bcrypt hash.
func Verify(credential, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	return nil
}

// VerifyDummy burns the same bcrypt work as Verify without ever succeeding.
// Called on unknown-user lookups to keep timing uniform.
func VerifyDummy(credential string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(credential))
}
