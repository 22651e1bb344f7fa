package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FieldValue is one placeholder -> value pair of a submission.
type FieldValue struct {
	Placeholder string
	Value       any
}

// FieldValues keeps completed dynamic fields in the order the client sent
// them. It encodes as a plain JSON object / BSON document.
type FieldValues []FieldValue

// Lookup returns the value stored for placeholder.
func (f FieldValues) Lookup(placeholder string) (any, bool) {
	for _, fv := range f {
		if fv.Placeholder == placeholder {
			return fv.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for placeholder, or appends it if absent.
func (f *FieldValues) Set(placeholder string, value any) {
	for i := range *f {
		if (*f)[i].Placeholder == placeholder {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, FieldValue{Placeholder: placeholder, Value: value})
}

func (f FieldValues) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fv.Placeholder)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fv.Placeholder, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *FieldValues) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("completed_dynamic_fields must be a JSON object")
	}

	out := FieldValues{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("completed_dynamic_fields: expected string key")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

func (f FieldValues) MarshalBSONValue() (bsontype.Type, []byte, error) {
	doc := make(bson.D, 0, len(f))
	for _, fv := range f {
		doc = append(doc, bson.E{Key: fv.Placeholder, Value: normalizeNumber(fv.Value)})
	}
	return bson.MarshalValue(doc)
}

func (f *FieldValues) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*f = nil
		return nil
	}
	var doc bson.D
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&doc); err != nil {
		return err
	}
	out := make(FieldValues, 0, len(doc))
	for _, e := range doc {
		out = append(out, FieldValue{Placeholder: e.Key, Value: plainValue(e.Value)})
	}
	*f = out
	return nil
}

// plainValue converts nested documents and arrays decoded from BSON back to
// map[string]any and []any, the shapes JSON decoding produced on the way in.
func plainValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plainValue(val)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plainValue(t[i])
		}
		return out
	default:
		return v
	}
}

// normalizeNumber turns json.Number (from UseNumber) into int64 or float64 so
// the stored document carries real numeric types.
func normalizeNumber(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if fl, err := t.Float64(); err == nil {
			return fl
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeNumber(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeNumber(val)
		}
		return out
	default:
		return v
	}
}

// StringifyValue renders a loosely typed submitted value as text.
func StringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	default:
		return fmt.Sprint(t)
	}
}
