package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryDecodesStringAndNumberIDs(t *testing.T) {
	var entries []Entry
	err := json.Unmarshal([]byte(`[
		{"id":"5f1a","name":"Arto Hellas","number":"040-123456"},
		{"id":7,"name":"Mira","number":"040-123"}
	]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, ID("5f1a"), entries[0].ID)
	assert.Equal(t, ID("7"), entries[1].ID)
	assert.Equal(t, "Mira — 040-123", entries[1].String())
}

func TestEntryRejectsObjectID(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"id":{"x":1},"name":"a","number":"1"}`), &e)
	assert.Error(t, err)
}

func TestWithout(t *testing.T) {
	entries := []Entry{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "c"}}

	got := Without(entries, "2")
	assert.Equal(t, []Entry{{ID: "1", Name: "a"}, {ID: "3", Name: "c"}}, got)

	got = Without(got, "missing")
	assert.Len(t, got, 2)
	assert.Len(t, entries, 3, "input must not be modified")
}
