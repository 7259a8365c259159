// Package optional provides a presence-aware value for partial updates.
//
// A Value decoded from JSON is set only when its key is present with a
// non-null value, so "absent" and "null" both leave it unset while "" or 0
// are explicit values.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds an optional T
type Value[T any] struct {
	value T
	set   bool
}

// Of returns a set Value holding v
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// IsSet reports whether a value was supplied
func (v Value[T]) IsSet() bool {
	return v.set
}

// Get returns the value and whether it was supplied
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// OrElse returns the value when set, otherwise fallback
func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value[T]{}
		return nil
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*v = Of(decoded)
	return nil
}

// MarshalJSON implements json.Marshaler; unset values encode as null
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
