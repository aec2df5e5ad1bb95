package request

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// OptionalFloat accepts a JSON number or a numeric string. The empty
// string and null both mean "not set", which is how spreadsheet-shaped
// clients clear a field.
type OptionalFloat struct {
	value *float64
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		f.value = nil
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.value = &n
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			f.value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("OptionalFloat: invalid number %q: %w", s, err)
		}
		f.value = &v
		return nil
	}

	return fmt.Errorf("OptionalFloat: expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

// Ptr returns the value, or nil when not set.
func (f OptionalFloat) Ptr() *float64 {
	return f.value
}

// OptionalUUID accepts a UUID string, treating "" and null as "not set".
type OptionalUUID struct {
	value *uuid.UUID
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *OptionalUUID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		u.value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("OptionalUUID: expected string")
	}
	if s == "" {
		u.value = nil
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("OptionalUUID: invalid uuid %q: %w", s, err)
	}
	u.value = &id
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (u OptionalUUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.value)
}

// Ptr returns the value, or nil when not set.
func (u OptionalUUID) Ptr() *uuid.UUID {
	return u.value
}

// OptionalTime accepts an RFC 3339 timestamp or a bare date, treating ""
// and null as "not set".
type OptionalTime struct {
	value *time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *OptionalTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		t.value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("OptionalTime: expected string")
	}
	if s == "" {
		t.value = nil
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.value = &parsed
			return nil
		}
	}
	return fmt.Errorf("OptionalTime: invalid timestamp %q", s)
}

// MarshalJSON implements the json.Marshaler interface.
func (t OptionalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// Ptr returns the value, or nil when not set.
func (t OptionalTime) Ptr() *time.Time {
	return t.value
}
