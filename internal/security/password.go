package security

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMismatch is returned by Verify for any password that does not match the
// stored hash, including hashes that cannot be parsed. Callers map it to a
// bad-request outcome without leaking which part failed.
var ErrMismatch = errors.New("security: password mismatch")

// Argon2id parameters for newly produced hashes. Verification reads the
// parameters back from the encoded hash, so these can change between
// deployments without invalidating stored passwords.
const (
	argonTime      = 2
	argonMemoryKiB = 19456
	argonThreads   = 1
	argonKeyLen    = 32
)

// Hasher derives and verifies argon2id password hashes. The salt is a
// deployment-wide configured value, not per-record; it is decoded once at
// construction.
type Hasher struct {
	salt    []byte
	saltB64 string
}

// NewHasher creates a Hasher from a raw std base64 (unpadded) salt string.
func NewHasher(salt string) (*Hasher, error) {
	raw, err := base64.RawStdEncoding.Strict().DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("security: malformed hasher salt: %w", err)
	}
	if len(raw) < 8 {
		return nil, errors.New("security: hasher salt must decode to at least 8 bytes")
	}
	return &Hasher{salt: raw, saltB64: salt}, nil
}

// Hash derives an argon2id hash of the password and encodes it in PHC string
// format, e.g. $argon2id$v=19$m=19456,t=2,p=1$<salt>$<digest>. The string is
// self-describing: Verify reads algorithm, version, parameters and salt back
// from it.
func (h *Hasher) Hash(password string) string {
	key := argon2.IDKey([]byte(password), h.salt, argonTime, argonMemoryKiB, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemoryKiB, argonTime, argonThreads,
		h.saltB64, base64.RawStdEncoding.EncodeToString(key))
}

// Verify recomputes the hash with the parameters embedded in encoded and
// compares in constant time. Any parse failure or mismatch yields ErrMismatch.
func (h *Hasher) Verify(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ErrMismatch
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ErrMismatch
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return ErrMismatch
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return ErrMismatch
	}
	digest, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil {
		return ErrMismatch
	}

	key := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(digest)))
	if subtle.ConstantTimeCompare(key, digest) != 1 {
		return ErrMismatch
	}
	return nil
}
