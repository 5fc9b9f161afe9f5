package model

import (
	"bytes"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ID is the server-assigned identifier of an Entry.
// Servers send it either as a JSON string or a JSON number; both are kept as text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("id: not a string or number: %s", b)
	}
	*id = ID(b)
	return nil
}

func (id ID) String() string { return string(id) }

// Entry is a single directory record.
type Entry struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// String renders the row the way every view shows it.
func (e Entry) String() string { return e.Name + " — " + e.Number }

// Without returns entries minus the one carrying id. Order is preserved.
func Without(entries []Entry, id ID) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
