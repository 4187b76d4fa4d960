// Package snapshot captures and restores the persistable state of a sheet.
//
// A Snapshot maps field names to either text or a checked state and is
// serialized as one flat JSON object, the blob kept in client storage.
// Unknown keys are tolerated on restore so older and newer sheets can read
// each other's saves.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/sheet/form"
)

// Value is either a text value or a checked state.
type Value struct {
	Text    string
	Checked bool
	IsBool  bool
}

// Text builds a text value.
func Text(s string) Value { return Value{Text: s} }

// Bool builds a checked-state value.
func Bool(b bool) Value { return Value{Checked: b, IsBool: true} }

// String renders the value for display.
func (v Value) String() string {
	if v.IsBool {
		return strconv.FormatBool(v.Checked)
	}
	return v.Text
}

// MarshalJSON encodes a bare JSON string or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsBool {
		return json.Marshal(v.Checked)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts strings, booleans and numbers. Numbers are kept in
// their literal form, e.g. a stored 0 becomes "0".
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch data[0] {
	case 'n', '[', '{':
		return fmt.Errorf("unsupported value %s", data)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Text(n.String())
	}
	return nil
}

// Snapshot maps field names to values.
type Snapshot map[string]Value

// Keys returns the snapshot keys sorted.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Persistable reports whether field belongs in a snapshot. Capacity totals
// are always recomputed and excluded fields are display-only.
func Persistable(field *form.Field) bool {
	return !field.HasTag(form.TagCapacityTotal) && !field.HasTag(form.TagExclude)
}

// Capture records every persistable field of tree. Mirrored fields share a
// key; the last one in document order wins, which is harmless while the
// group is synchronized.
func Capture(tree *form.Tree) Snapshot {
	out := Snapshot{}
	for _, field := range tree.Fields() {
		if !Persistable(field) {
			continue
		}
		if field.Kind() == form.KindCheckbox {
			out[field.Name()] = Bool(field.Checked())
			continue
		}
		out[field.Name()] = Text(field.Value())
	}
	return out
}

// Apply writes s into tree and returns how many fields were written. Keys
// with no live field are ignored. A boolean sets a checkbox; for a text
// field it is written as "true"/"false".
func Apply(tree *form.Tree, s Snapshot) int {
	written := 0
	for _, key := range s.Keys() {
		value := s[key]
		for _, field := range tree.Named(key) {
			if field.Kind() == form.KindCheckbox {
				field.SetChecked(value.IsBool && value.Checked || !value.IsBool && truthy(value.Text))
			} else {
				field.SetValue(value.String())
			}
			written++
		}
	}
	return written
}

func truthy(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// Encode serializes s as a JSON object with sorted keys.
func Encode(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	data, err := json.Marshal(map[string]Value(s))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSnapshotEncode, "encode snapshot", err)
	}
	return data, nil
}

// Decode parses a stored blob. Anything other than a JSON object is
// malformed. Entries whose value is null, an array or an object are skipped.
func Decode(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSnapshotMalformed, "decode snapshot", err)
	}
	if raw == nil {
		return nil, apperrors.New(apperrors.CodeSnapshotMalformed, "decode snapshot: not an object")
	}
	out := make(Snapshot, len(raw))
	for key, msg := range raw {
		var value Value
		if err := json.Unmarshal(msg, &value); err != nil {
			continue
		}
		out[key] = value
	}
	return out, nil
}
