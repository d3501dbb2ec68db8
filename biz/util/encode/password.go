package encode

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize = 16
	KeySize  = 20

	// LegacyIterations is the work factor of unversioned 36 byte hashes.
	LegacyIterations = 10_000
	MinIterations    = LegacyIterations

	// MaxIterations keeps the count inside the 4 byte header on every platform.
	MaxIterations = 1<<31 - 1

	hashVersionV1 byte = 1

	legacyHashSize = SaltSize + KeySize
	v1HeaderSize   = 1 + 4
	v1HashSize     = v1HeaderSize + legacyHashSize
)

var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher derives salted pbkdf2-sha512 password hashes.
//
// Hashes are stored as version(1) || iterations(4, big endian) || salt(16) || key(20).
// Unversioned salt || key blobs are still accepted and verified with
// LegacyIterations.
type PasswordHasher struct {
	iterations int
	entropy    io.Reader
}

func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations < MinIterations {
		iterations = MinIterations
	}
	if iterations > MaxIterations {
		iterations = MaxIterations
	}
	return &PasswordHasher{
		iterations: iterations,
		entropy:    rand.Reader,
	}
}

func (h *PasswordHasher) Iterations() int {
	return h.iterations
}

// Hash returns a freshly salted hash of password. It panics only when the
// entropy source fails.
func (h *PasswordHasher) Hash(password string) []byte {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(h.entropy, salt); err != nil {
		panic(fmt.Sprintf("read password salt: %v", err))
	}

	out := make([]byte, v1HashSize)
	out[0] = hashVersionV1
	binary.BigEndian.PutUint32(out[1:v1HeaderSize], uint32(h.iterations))
	copy(out[v1HeaderSize:], salt)
	copy(out[v1HeaderSize+SaltSize:], derive(password, salt, h.iterations))
	return out
}

// Verify reports whether password matches stored. Malformed input yields false.
func (h *PasswordHasher) Verify(password string, stored []byte) bool {
	ok, _ := h.Check(password, stored)
	return ok
}

// Check is Verify that also tells the caller when stored cannot be parsed, so
// the caller can report a corrupt credential.
func (h *PasswordHasher) Check(password string, stored []byte) (bool, error) {
	iterations, salt, key, err := parse(stored)
	if err != nil {
		return false, err
	}
	derived := derive(password, salt, iterations)
	return subtle.ConstantTimeCompare(derived, key) == 1, nil
}

// DummyVerify spends the same work as Verify without a stored hash. Callers
// use it when an account does not exist so lookups cannot be timed apart.
func (h *PasswordHasher) DummyVerify(password string) {
	derive(password, make([]byte, SaltSize), h.iterations)
}

// NeedsRehash reports whether stored was produced with other parameters than
// the ones h uses today.
func (h *PasswordHasher) NeedsRehash(stored []byte) bool {
	if len(stored) != v1HashSize || stored[0] != hashVersionV1 {
		return true
	}
	return int(binary.BigEndian.Uint32(stored[1:v1HeaderSize])) != h.iterations
}

func parse(stored []byte) (iterations int, salt, key []byte, err error) {
	switch len(stored) {
	case legacyHashSize:
		return LegacyIterations, stored[:SaltSize], stored[SaltSize:], nil
	case v1HashSize:
		if stored[0] != hashVersionV1 {
			return 0, nil, nil, fmt.Errorf("%w: unknown version %d", ErrMalformedHash, stored[0])
		}
		iterations = int(binary.BigEndian.Uint32(stored[1:v1HeaderSize]))
		if iterations <= 0 {
			return 0, nil, nil, fmt.Errorf("%w: iterations %d", ErrMalformedHash, iterations)
		}
		body := stored[v1HeaderSize:]
		return iterations, body[:SaltSize], body[SaltSize:], nil
	default:
		return 0, nil, nil, fmt.Errorf("%w: length %d", ErrMalformedHash, len(stored))
	}
}

func derive(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha512.New)
}
