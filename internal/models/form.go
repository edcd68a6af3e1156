package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FieldValue is the answer carried by a FieldResponse: either a single
// string or an ordered list of strings for multi-answer fields.
type FieldValue struct {
	values []string
	list   bool
}

func StringValue(s string) FieldValue {
	return FieldValue{values: []string{s}}
}

func ListValue(values ...string) FieldValue {
	copied := make([]string, len(values))
	copy(copied, values)
	return FieldValue{values: copied, list: true}
}

func (v FieldValue) IsList() bool {
	return v.list
}

// Text returns the single string value, or the first element of a list.
func (v FieldValue) Text() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Strings returns a copy of the list elements. A single value yields a
// one-element slice.
func (v FieldValue) Strings() []string {
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.list {
		return json.Marshal(v.Strings())
	}
	return json.Marshal(v.Text())
}

var ErrInvalidFieldValue = errors.New("field value must be a string or an array of strings")

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrInvalidFieldValue
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode field value: %w", err)
		}
		*v = StringValue(s)
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFieldValue, err)
		}
		*v = ListValue(list...)
		return nil
	}
	return ErrInvalidFieldValue
}

// FieldResponse is one answer to one form field, as posted by the form
// submission trigger.
type FieldResponse struct {
	Type  string     `json:"type,omitempty"`
	Index int        `json:"index"`
	Title string     `json:"title,omitempty"`
	Value FieldValue `json:"value"`
}

// UnmarshalJSON accepts the full {type, index, title, value} object and the
// bare string / array shorthand used by older form scripts.
func (r *FieldResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		type plain FieldResponse
		var decoded plain
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return err
		}
		*r = FieldResponse(decoded)
		return nil
	}

	var value FieldValue
	if err := value.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*r = FieldResponse{Value: value}
	return nil
}

// FormResponse maps a form field id to the answer given for it.
type FormResponse map[string]FieldResponse
