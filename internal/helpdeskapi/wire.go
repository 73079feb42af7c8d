package helpdeskapi

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ident accepts either "id" or the document store's "_id".
type ident struct {
	ID  string `json:"id"`
	OID string `json:"_id"`
}

func (i ident) value() string {
	if i.OID != "" {
		return i.OID
	}
	return i.ID
}

// ref is a reference field that the API sends either as a bare ID or as
// the populated document.
type ref string

func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ref(s)
		return nil
	}
	var obj ident
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = ref(obj.value())
	return nil
}

// version reads a document revision sent as a number or a string.
type version string

func (v *version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if s, err := strconv.Unquote(string(data)); err == nil {
		*v = version(s)
		return nil
	}
	*v = version(data)
	return nil
}

// MarshalJSON writes a numeric revision back as a number.
func (v version) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(v), 10, 64); err == nil {
		return []byte(v), nil
	}
	return json.Marshal(string(v))
}

// nullable maps an unset reference to an explicit JSON null.
func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
