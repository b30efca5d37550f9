package types

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// Value is an immutable JSON value. Objects keep their member order, and
// values decoded from a document keep their original encoding so that
// sections nobody touched serialise back byte for byte.
type Value struct {
	kind    ValueKind
	boolean bool
	text    string
	items   []Value
	members []Member
	raw     []byte
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

func NullValue() Value {
	return Value{}
}

func BoolValue(b bool) Value {
	return Value{kind: ValueBool, boolean: b}
}

func IntValue(n int) Value {
	return Value{kind: ValueNumber, text: strconv.Itoa(n)}
}

func FloatValue(f float64) Value {
	return Value{kind: ValueNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

func StringValue(s string) Value {
	return Value{kind: ValueString, text: s}
}

func ArrayValue(items ...Value) Value {
	return Value{kind: ValueArray, items: append([]Value(nil), items...)}
}

func StringsValue(values ...string) Value {
	items := make([]Value, 0, len(values))
	for _, value := range values {
		items = append(items, StringValue(value))
	}
	return Value{kind: ValueArray, items: items}
}

// ObjectValue builds an object from members. A repeated key keeps its
// first position and its last value.
func ObjectValue(members ...Member) Value {
	out := Value{kind: ValueObject}
	for _, member := range members {
		out = out.Set(member.Key, member.Value)
	}
	return out
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == ValueNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == ValueBool
}

func (v Value) AsString() (string, bool) {
	return v.text, v.kind == ValueString
}

// NumberText returns the literal text of a number as it appeared in the
// source document.
func (v Value) NumberText() (string, bool) {
	return v.text, v.kind == ValueNumber
}

// Items returns a copy of the elements of an array, nil otherwise.
func (v Value) Items() []Value {
	if v.kind != ValueArray {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// StringItems returns the elements of an array of strings. ok is false
// when v is not an array or holds a non-string element.
func (v Value) StringItems() ([]string, bool) {
	if v.kind != ValueArray {
		return nil, false
	}
	out := make([]string, 0, len(v.items))
	for _, item := range v.items {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Members returns a copy of the members of an object, nil otherwise.
func (v Value) Members() []Member {
	if v.kind != ValueObject {
		return nil
	}
	return append([]Member(nil), v.members...)
}

func (v Value) Keys() []string {
	if v.kind != ValueObject {
		return nil
	}
	keys := make([]string, 0, len(v.members))
	for _, member := range v.members {
		keys = append(keys, member.Key)
	}
	return keys
}

// Len is the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case ValueArray:
		return len(v.items)
	case ValueObject:
		return len(v.members)
	default:
		return 0
	}
}

func (v Value) Get(key string) (Value, bool) {
	if v.kind != ValueObject {
		return Value{}, false
	}
	for _, member := range v.members {
		if member.Key == key {
			return member.Value, true
		}
	}
	return Value{}, false
}

// Set returns a copy of the object with key bound to value. An existing
// key keeps its position; a new key is appended. Set on a non-object
// starts a new object.
func (v Value) Set(key string, value Value) Value {
	out := Value{kind: ValueObject}
	if v.kind == ValueObject {
		out.members = make([]Member, 0, len(v.members)+1)
		out.members = append(out.members, v.members...)
	}
	for i := range out.members {
		if out.members[i].Key == key {
			out.members[i].Value = value
			return out
		}
	}
	out.members = append(out.members, Member{Key: key, Value: value})
	return out
}

// Delete returns a copy of the object without key.
func (v Value) Delete(key string) Value {
	if v.kind != ValueObject {
		return v
	}
	out := Value{kind: ValueObject, members: make([]Member, 0, len(v.members))}
	for _, member := range v.members {
		if member.Key != key {
			out.members = append(out.members, member)
		}
	}
	return out
}

// Equal reports structural equality. Object member order is ignored.
func (v Value) Equal(other Value) bool {
	return equalValues(v, other, false)
}

// Identical is Equal with object member order taken into account.
func (v Value) Identical(other Value) bool {
	return equalValues(v, other, true)
}

func equalValues(a Value, b Value, ordered bool) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ValueNull:
		return true
	case ValueBool:
		return a.boolean == b.boolean
	case ValueNumber, ValueString:
		return a.text == b.text
	case ValueArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !equalValues(a.items[i], b.items[i], ordered) {
				return false
			}
		}
		return true
	case ValueObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i, member := range a.members {
			if ordered {
				if b.members[i].Key != member.Key || !equalValues(member.Value, b.members[i].Value, ordered) {
					return false
				}
				continue
			}
			other, ok := b.Get(member.Key)
			if !ok || !equalValues(member.Value, other, ordered) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v as compact JSON.
func (v Value) String() string {
	w := jwriter.Writer{NoEscapeHTML: true}
	v.MarshalEasyJSON(&w)
	out, err := w.BuildBytes()
	if err != nil {
		return ""
	}
	return string(out)
}

func (v Value) MarshalEasyJSON(w *jwriter.Writer) {
	switch v.kind {
	case ValueArray:
		w.RawByte('[')
		for i, item := range v.items {
			if i > 0 {
				w.RawByte(',')
			}
			item.MarshalEasyJSON(w)
		}
		w.RawByte(']')
	case ValueObject:
		w.RawByte('{')
		for i, member := range v.members {
			if i > 0 {
				w.RawByte(',')
			}
			w.String(member.Key)
			w.RawByte(':')
			member.Value.MarshalEasyJSON(w)
		}
		w.RawByte('}')
	default:
		writeScalar(w, v)
	}
}

func (v *Value) UnmarshalEasyJSON(l *jlexer.Lexer) {
	raw := l.Raw()
	if !l.Ok() {
		return
	}
	parsed, err := decodeRaw(append([]byte(nil), raw...))
	if err != nil {
		l.AddError(err)
		return
	}
	*v = parsed
}

func (v Value) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	v.MarshalEasyJSON(&w)
	return w.BuildBytes()
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var errEmptyDocument = errors.New("empty JSON document")

// DecodeValue parses a complete JSON document.
func DecodeValue(data []byte) (Value, error) {
	l := jlexer.Lexer{Data: data}
	raw := l.Raw()
	l.Consumed()
	if err := l.Error(); err != nil {
		return Value{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Value{}, errEmptyDocument
	}
	return decodeRaw(append([]byte(nil), raw...))
}

func decodeRaw(raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, errEmptyDocument
	}
	l := jlexer.Lexer{Data: raw}
	var out Value
	switch raw[0] {
	case '{':
		return decodeObject(raw)
	case '[':
		return decodeArray(raw)
	case '"':
		out = Value{kind: ValueString, text: l.String(), raw: raw}
	case 't', 'f':
		out = Value{kind: ValueBool, boolean: l.Bool(), raw: raw}
	case 'n':
		l.Null()
		out = Value{kind: ValueNull, raw: raw}
	default:
		out = Value{kind: ValueNumber, text: string(l.JsonNumber()), raw: raw}
	}
	l.Consumed()
	if err := l.Error(); err != nil {
		return Value{}, err
	}
	return out, nil
}

func decodeObject(raw []byte) (Value, error) {
	l := jlexer.Lexer{Data: raw}
	out := Value{kind: ValueObject, raw: raw}
	index := map[string]int{}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.String()
		l.WantColon()
		childRaw := l.Raw()
		if !l.Ok() {
			break
		}
		child, err := decodeRaw(childRaw)
		if err != nil {
			return Value{}, err
		}
		if i, ok := index[key]; ok {
			out.members[i].Value = child
		} else {
			index[key] = len(out.members)
			out.members = append(out.members, Member{Key: key, Value: child})
		}
		l.WantComma()
	}
	l.Delim('}')
	l.Consumed()
	if err := l.Error(); err != nil {
		return Value{}, err
	}
	return out, nil
}

func decodeArray(raw []byte) (Value, error) {
	l := jlexer.Lexer{Data: raw}
	out := Value{kind: ValueArray, raw: raw}
	l.Delim('[')
	for !l.IsDelim(']') {
		childRaw := l.Raw()
		if !l.Ok() {
			break
		}
		child, err := decodeRaw(childRaw)
		if err != nil {
			return Value{}, err
		}
		out.items = append(out.items, child)
		l.WantComma()
	}
	l.Delim(']')
	l.Consumed()
	if err := l.Error(); err != nil {
		return Value{}, err
	}
	return out, nil
}

func writeScalar(w *jwriter.Writer, v Value) {
	if v.raw != nil {
		w.Raw(v.raw, nil)
		return
	}
	switch v.kind {
	case ValueBool:
		w.Bool(v.boolean)
	case ValueNumber:
		w.RawString(v.text)
	case ValueString:
		w.String(v.text)
	default:
		w.RawString("null")
	}
}
