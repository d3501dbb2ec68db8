package encode

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/pbkdf2"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(MinIterations)
	for _, pw := range []string{"", "pw1", "correct horse battery staple", "密码🙂"} {
		stored := h.Hash(pw)
		assert.Len(t, stored, v1HashSize)
		assert.True(t, h.Verify(pw, stored), "password %q", pw)
	}
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	h := NewPasswordHasher(MinIterations)
	a := h.Hash("same")
	b := h.Hash("same")
	assert.False(t, bytes.Equal(a, b))
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestPasswordHasher_RejectsWrongPassword(t *testing.T) {
	h := NewPasswordHasher(MinIterations)
	stored := h.Hash("pw1")
	assert.False(t, h.Verify("pw2", stored))
	assert.False(t, h.Verify("PW1", stored))
	assert.False(t, h.Verify("", stored))
}

func TestPasswordHasher_Malformed(t *testing.T) {
	h := NewPasswordHasher(MinIterations)

	for _, n := range []int{0, 1, 16, 35, 37, 40, 42, 64} {
		stored := make([]byte, n)
		assert.False(t, h.Verify("pw", stored), "len %d", n)
		_, err := h.Check("pw", stored)
		assert.True(t, errors.Is(err, ErrMalformedHash), "len %d", n)
	}
	assert.False(t, h.Verify("pw", nil))

	t.Run("unknown version", func(t *testing.T) {
		stored := h.Hash("pw")
		stored[0] = 9
		ok, err := h.Check("pw", stored)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedHash)
	})

	t.Run("zero iterations", func(t *testing.T) {
		stored := h.Hash("pw")
		binary.BigEndian.PutUint32(stored[1:5], 0)
		ok, err := h.Check("pw", stored)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedHash)
	})
}

func TestPasswordHasher_LegacyHash(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)
	key := pbkdf2.Key([]byte("pw1"), salt, LegacyIterations, KeySize, sha512.New)
	legacy := append(append([]byte{}, salt...), key...)
	assert.Len(t, legacy, 36)

	h := NewPasswordHasher(20_000)
	assert.True(t, h.Verify("pw1", legacy))
	assert.False(t, h.Verify("pw2", legacy))
	assert.True(t, h.NeedsRehash(legacy))
}

func TestPasswordHasher_IterationsAreRecorded(t *testing.T) {
	old := NewPasswordHasher(MinIterations)
	stored := old.Hash("pw1")

	// A hasher with a higher work factor still verifies the old hash.
	newer := NewPasswordHasher(MinIterations * 2)
	assert.True(t, newer.Verify("pw1", stored))
	assert.True(t, newer.NeedsRehash(stored))
	assert.False(t, old.NeedsRehash(stored))
	assert.False(t, newer.NeedsRehash(newer.Hash("pw1")))
}

func TestNewPasswordHasher_IterationBounds(t *testing.T) {
	assert.Equal(t, MinIterations, NewPasswordHasher(0).Iterations())
	assert.Equal(t, MinIterations, NewPasswordHasher(100).Iterations())
	assert.Equal(t, 50_000, NewPasswordHasher(50_000).Iterations())
	assert.Equal(t, MaxIterations, NewPasswordHasher(math.MaxInt).Iterations())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestPasswordHasher_EntropyFailure(t *testing.T) {
	h := NewPasswordHasher(MinIterations)
	h.entropy = failingReader{}
	assert.Panics(t, func() { h.Hash("pw") })
}

func TestPasswordHasher_DummyVerify(t *testing.T) {
	assert.NotPanics(t, func() { NewPasswordHasher(MinIterations).DummyVerify("pw") })
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, Checksum("a", "b"), Checksum("a", "b"))
	assert.NotEqual(t, Checksum("a", "b"), Checksum("a", "c"))
	assert.NotEqual(t, Checksum("ab", "c"), Checksum("a", "bc"))
	assert.Len(t, Checksum("a", "b"), 64)
}
