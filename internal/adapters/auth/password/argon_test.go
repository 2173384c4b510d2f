package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parámetros chicos para que los tests corran rápido
var fast = Params{Memory: 1024, Iterations: 1, Parallelism: 1}

func TestHashVerify(t *testing.T) {
	h := NewHasher(fast)

	enc, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify(enc, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(enc, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_SaltsDiffer(t *testing.T) {
	h := NewHasher(fast)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_UsesParamsFromHash(t *testing.T) {
	enc, err := NewHasher(fast).Hash("pw")
	require.NoError(t, err)

	other := NewHasher(Params{Memory: 2048, Iterations: 2, Parallelism: 1})
	ok, err := other.Verify(enc, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidInputs(t *testing.T) {
	h := NewHasher(fast)

	_, err := h.Hash("")
	assert.Error(t, err)
	_, err = h.Hash(strings.Repeat("x", maxPasswordLength+1))
	assert.Error(t, err)

	for _, bad := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=1$m=1,t=1,p=1$aa$bb"} {
		ok, err := h.Verify(bad, "pw")
		require.NoError(t, err)
		assert.False(t, ok, bad)
	}
}
