package models

import (
	"bytes"
	"encoding/json"
)

// Identifiable is implemented by records that can be expanded in a Ref.
type Identifiable interface {
	RefID() string
}

// Ref is a reference that the backend sends either as a bare id string or
// as the expanded record.
type Ref[T Identifiable] struct {
	ID    string
	Value *T
}

// IDRef builds an unexpanded reference.
func IDRef[T Identifiable](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Expanded builds a reference holding v.
func Expanded[T Identifiable](v T) Ref[T] {
	return Ref[T]{ID: v.RefID(), Value: &v}
}

// Resolve returns the expanded record, if the backend sent one.
func (r Ref[T]) Resolve() (T, bool) {
	if r.Value == nil {
		var zero T
		return zero, false
	}
	return *r.Value, true
}

func (r Ref[T]) IsZero() bool {
	return r.ID == "" && r.Value == nil
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = Ref[T]{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	default:
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*r = Ref[T]{ID: v.RefID(), Value: &v}
		return nil
	}
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}
