package apitest

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// passwordHash is a salted argon2id digest of an account password.
type passwordHash struct {
	salt []byte
	key  []byte
}

func derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

func hashPassword(password string) passwordHash {
	salt := make([]byte, 16)
	_, _ = rand.Read(salt)
	return passwordHash{salt: salt, key: derive(password, salt)}
}

func (h passwordHash) matches(candidate string) bool {
	return subtle.ConstantTimeCompare(h.key, derive(candidate, h.salt)) == 1
}
