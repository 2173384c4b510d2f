package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type petPatch struct {
	Name  Field[string] `json:"name"`
	Breed Field[string] `json:"breed"`
	Year  Field[int]    `json:"year"`
	Owner Field[string] `json:"owner"`
}

func TestField_ThreeStates(t *testing.T) {
	var p petPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"","year":0,"owner":null}`), &p))

	// enviado vacío no es lo mismo que ausente
	assert.True(t, p.Name.Set)
	assert.False(t, p.Name.Null)
	assert.Equal(t, "", p.Name.Value)

	assert.True(t, p.Year.Set)
	assert.Equal(t, 0, p.Year.Value)

	assert.False(t, p.Breed.Set)

	assert.True(t, p.Owner.Nulled())
}

func TestField_Apply(t *testing.T) {
	name := "Milo"
	year := 2019

	var p petPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"","breed":"poodle"}`), &p))

	assert.True(t, p.Name.Apply(&name))
	assert.Equal(t, "", name)
	assert.False(t, p.Year.Apply(&year))
	assert.Equal(t, 2019, year)
}

func TestField_ApplyPtr(t *testing.T) {
	emp := "E5"
	dst := &emp

	assert.False(t, Field[string]{}.ApplyPtr(&dst))
	require.NotNil(t, dst)

	assert.True(t, Some("E9").ApplyPtr(&dst))
	assert.Equal(t, "E9", *dst)

	assert.True(t, Null[string]().ApplyPtr(&dst))
	assert.Nil(t, dst)
}

func TestField_TypeMismatch(t *testing.T) {
	var p petPatch
	assert.Error(t, json.Unmarshal([]byte(`{"year":"two thousand"}`), &p))
}
