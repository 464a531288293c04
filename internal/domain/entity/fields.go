package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// FormFields holds user input keyed by semantic field name ("url", "ssid", "handle", ...).
// Values survive type switches; only the active type's fields are read by the encoder.
type FormFields map[string]string

// Get returns the trimmed value of a field, or "" when it is absent.
func (f FormFields) Get(name string) string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f[name])
}

// Raw returns the untrimmed value of a field.
func (f FormFields) Raw(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Clone returns an independent copy.
func (f FormFields) Clone() FormFields {
	out := make(FormFields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Value implements driver.Valuer so gorm stores fields as jsonb.
func (f FormFields) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *FormFields) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = FormFields{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("form fields: unsupported scan source")
	}
	return json.Unmarshal(data, f)
}
