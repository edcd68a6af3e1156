// Package record holds the structured record built from a form response: a
// tree of named values written and read through dotted paths such as
// "applicant.email".
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPath  = errors.New("invalid record path")
	ErrPathConflict = errors.New("record path conflicts with an existing value")
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindList
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a node of the tree. The zero Value is null.
type Value struct {
	kind   Kind
	text   string
	list   []string
	fields Record
}

func Null() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func List(values ...string) Value {
	copied := make([]string, len(values))
	copy(copied, values)
	return Value{kind: KindList, list: copied}
}

func Nested(r Record) Value {
	if r == nil {
		r = Record{}
	}
	return Value{kind: KindRecord, fields: r}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string held by a KindString value.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindString
}

// Strings returns a copy of the list held by a KindList value.
func (v Value) Strings() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, true
}

func (v Value) Record() (Record, bool) {
	return v.fields, v.kind == KindRecord
}

// Plain converts the value into nil, string, []string or map[string]any.
func (v Value) Plain() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindList:
		out, _ := v.Strings()
		return out
	case KindRecord:
		return v.fields.Plain()
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Plain())
}

// Record is a level of the tree, keyed by path segment.
type Record map[string]Value

func New() Record {
	return Record{}
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

// ValidatePath reports whether path can address a value.
func ValidatePath(path string) error {
	_, err := splitPath(path)
	return err
}

// Set writes value at path, creating intermediate records. An existing leaf
// at path is replaced. Walking through a non-record value, or replacing a
// record with anything but a record, fails with ErrPathConflict and leaves r
// untouched.
func (r Record) Set(path string, value Value) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}

	// Check the whole walk before mutating anything.
	current := r
	walked := true
	for i, segment := range segments[:len(segments)-1] {
		next, ok := current[segment]
		if !ok {
			walked = false
			break
		}
		if next.kind != KindRecord {
			return fmt.Errorf("%w: %q holds a %s", ErrPathConflict, strings.Join(segments[:i+1], "."), next.kind)
		}
		current = next.fields
	}
	if walked {
		if existing, ok := current[segments[len(segments)-1]]; ok && existing.kind == KindRecord && value.kind != KindRecord {
			return fmt.Errorf("%w: %q holds a record", ErrPathConflict, path)
		}
	}

	current = r
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment]
		if !ok {
			next = Nested(Record{})
			current[segment] = next
		}
		current = next.fields
	}
	current[segments[len(segments)-1]] = value
	return nil
}

// Get reads the value at path. Missing paths, and paths walking through
// non-record values, report false.
func (r Record) Get(path string) (Value, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return Value{}, false
	}

	current := r
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment]
		if !ok || next.kind != KindRecord {
			return Value{}, false
		}
		current = next.fields
	}
	value, ok := current[segments[len(segments)-1]]
	return value, ok
}

func (r Record) Plain() map[string]any {
	out := make(map[string]any, len(r))
	for key, value := range r {
		out[key] = value.Plain()
	}
	return out
}
