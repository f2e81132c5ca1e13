// Package jsondoc decodes JSON into a value tree that keeps object keys in
// source order. Script listings and flattened paths are emitted in the order
// they appear in the file, which map-based decoding cannot provide.
package jsondoc

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind identifies the JSON type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is one key/value pair of an object.
type Field struct {
	Key   string
	Value Value

	rawKey string
}

// Value is a decoded JSON node. Raw is the node's JSON text with duplicate
// object keys already collapsed.
type Value struct {
	Kind   Kind
	Bool   bool
	Text   string // string contents, or the literal text of a number
	Items  []Value
	Fields []Field
	Raw    string
}

// ErrInvalid is returned for input that is not exactly one JSON value.
var ErrInvalid = errors.New("jsondoc: invalid JSON document")

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalid
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ReadFile reads and parses the file at path.
func ReadFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, err
	}
	v, err := Parse(data)
	if err != nil {
		return Value{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

func fromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		return objectFrom(r)
	case r.IsArray():
		return arrayFrom(r)
	}
	raw := strings.TrimSpace(r.Raw)
	switch r.Type {
	case gjson.True, gjson.False:
		return Value{Kind: Bool, Bool: r.Type == gjson.True, Raw: raw}
	case gjson.Number:
		return Value{Kind: Number, Text: raw, Raw: raw}
	case gjson.String:
		return Value{Kind: String, Text: r.Str, Raw: raw}
	}
	return Value{Kind: Null, Raw: "null"}
}

func objectFrom(r gjson.Result) Value {
	obj := Value{Kind: Object, Fields: []Field{}}
	rebuilt := false
	r.ForEach(func(key, val gjson.Result) bool {
		child := fromResult(val)
		if child.Raw != strings.TrimSpace(val.Raw) {
			rebuilt = true
		}
		if obj.setField(Field{Key: key.Str, Value: child, rawKey: key.Raw}) {
			rebuilt = true
		}
		return true
	})
	obj.Raw = strings.TrimSpace(r.Raw)
	if rebuilt {
		obj.Raw = obj.compose()
	}
	return obj
}

func arrayFrom(r gjson.Result) Value {
	arr := Value{Kind: Array, Items: []Value{}}
	rebuilt := false
	r.ForEach(func(_, val gjson.Result) bool {
		child := fromResult(val)
		if child.Raw != strings.TrimSpace(val.Raw) {
			rebuilt = true
		}
		arr.Items = append(arr.Items, child)
		return true
	})
	arr.Raw = strings.TrimSpace(r.Raw)
	if rebuilt {
		arr.Raw = arr.compose()
	}
	return arr
}

// setField keeps the first position of a duplicated key and the last value,
// matching how JavaScript object literals resolve duplicates. It reports
// whether an earlier field was replaced.
func (v *Value) setField(f Field) bool {
	for i := range v.Fields {
		if v.Fields[i].Key == f.Key {
			v.Fields[i].Value = f.Value
			return true
		}
	}
	v.Fields = append(v.Fields, f)
	return false
}

// compose rebuilds the JSON text of a container from its children.
func (v Value) compose() string {
	var b strings.Builder
	switch v.Kind {
	case Object:
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.rawKey)
			b.WriteByte(':')
			b.WriteString(f.Value.Raw)
		}
		b.WriteByte('}')
	case Array:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(item.Raw)
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Get returns the field named key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Lookup resolves a dotted path such as "scripts.build" or "files[0]".
func (v Value) Lookup(path string) (Value, bool) {
	if v.Raw == "" {
		return Value{}, false
	}
	query, ok := gjsonPath(path)
	if !ok {
		return Value{}, false
	}
	res := gjson.Get(v.Raw, query)
	if !res.Exists() {
		return Value{}, false
	}
	return fromResult(res), true
}

// gjsonPath rewrites "a.b[0][1]" as "a.b.0.1" with every key escaped. An
// empty path or an empty key segment resolves to nothing.
func gjsonPath(path string) (string, bool) {
	var parts []string
	for _, part := range strings.Split(path, ".") {
		key := part
		var indexes []string
		for strings.HasSuffix(key, "]") {
			// peel trailing [n] groups from the right
			open := strings.LastIndexByte(key, '[')
			if open < 0 {
				break
			}
			n, err := strconv.Atoi(key[open+1 : len(key)-1])
			if err != nil || n < 0 {
				break
			}
			indexes = append([]string{strconv.Itoa(n)}, indexes...)
			key = key[:open]
		}
		if key != "" {
			parts = append(parts, gjson.Escape(key))
		} else if len(indexes) == 0 {
			return "", false
		}
		parts = append(parts, indexes...)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "."), true
}

// Str returns the string contents when v is a JSON string.
func (v Value) Str() (string, bool) {
	if v.Kind != String {
		return "", false
	}
	return v.Text, true
}

// String renders v the way entry values are displayed: primitives as-is,
// containers summarised by their size.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Number:
		return formatNumber(v.Text)
	case String:
		return v.Text
	case Array:
		return fmt.Sprintf("Array(%d)", len(v.Items))
	case Object:
		return fmt.Sprintf("Object(%d)", len(v.Fields))
	}
	return ""
}

// formatNumber renders a numeric literal the way JavaScript prints numbers:
// the shortest round-tripping digits, in plain decimal for magnitudes in
// [1e-6, 1e21) and in exponent form ("1e+21", "1.5e-7") outside it.
func formatNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case err != nil:
		return literal
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
