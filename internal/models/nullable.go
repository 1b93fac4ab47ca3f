package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// NullableString represents a string field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=""
// - Field present with null: Set=true, Valid=false, Value=""
// - Field present with value: Set=true, Valid=true, Value="the value"
//
// Go's standard JSON unmarshaling treats both "field absent" and
// "field: null" as nil for pointer types, so PATCH requests need this.
type NullableString struct {
	Value string
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableString.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableString.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// Apply writes the patch into dst: null clears, a value replaces, absent leaves dst alone.
func (ns NullableString) Apply(dst *string) {
	if !ns.Set {
		return
	}
	*dst = ns.Value
}

// ValidDate reports whether the value is absent, null, or a YYYY-MM-DD date.
func (ns NullableString) ValidDate() error {
	if !ns.Valid || ns.Value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, ns.Value); err != nil {
		return fmt.Errorf("invalid date %q: %w", ns.Value, err)
	}
	return nil
}

// NullableFloat represents a numeric field with the same absent/null/value
// distinction as NullableString. A null clears the field back to zero, which
// the engine reads as "derive it".
type NullableFloat struct {
	Value float64
	Valid bool
	Set   bool
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableFloat.
func (nf *NullableFloat) UnmarshalJSON(data []byte) error {
	nf.Set = true

	if string(data) == "null" {
		nf.Valid = false
		nf.Value = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	nf.Value = f
	nf.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableFloat.
func (nf NullableFloat) MarshalJSON() ([]byte, error) {
	if !nf.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nf.Value)
}

// Apply writes the patch into dst.
func (nf NullableFloat) Apply(dst *float64) {
	if !nf.Set {
		return
	}
	*dst = nf.Value
}
