package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchFixture struct {
	Title Optional[string] `json:"title"`
}

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var absent patchFixture
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Title.Set)

	var null patchFixture
	require.NoError(t, json.Unmarshal([]byte(`{"title": null}`), &null))
	assert.True(t, null.Title.Set)
	assert.False(t, null.Title.Valid)

	var value patchFixture
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Skyline Towers"}`), &value))
	assert.True(t, value.Title.Set)
	assert.True(t, value.Title.Valid)
	assert.Equal(t, "Skyline Towers", value.Title.Value)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var fixture struct {
		Count Optional[int] `json:"count"`
	}
	err := json.Unmarshal([]byte(`{"count": "ten"}`), &fixture)
	assert.Error(t, err)
}

func TestOptionalConstructors(t *testing.T) {
	some := Some("x")
	assert.True(t, some.Set)
	assert.True(t, some.Valid)
	assert.Equal(t, "x", some.Value)

	null := Null[string]()
	assert.True(t, null.Set)
	assert.False(t, null.Valid)
}
