package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandStr(t *testing.T) {
	for i := 0; i <= 10; i++ {
		s := RandStr(i)
		t.Logf("rand str: %s", s)
		assert.Equal(t, i, len(s))
	}
}

func TestRandStr_Alphabet(t *testing.T) {
	s := RandStr(512)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
	assert.NotEqual(t, RandStr(16), RandStr(16))
	assert.Equal(t, "", RandStr(-1))
}
