package models

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// ID is an entity identifier. The backend is loose about id types (numeric
// ids in some payloads, strings in others), so every comparison goes through
// the string form.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*id = ID(cast.ToString(v))
	return nil
}
