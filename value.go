package figtree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/MrJohz/figtree/figparser"
)

// ValueKind discriminates the Value tagged union.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueInt    ValueKind = "int"
	ValueFloat  ValueKind = "float"
	ValueBool   ValueKind = "bool"
	ValueIdent  ValueKind = "ident"
	ValueNull   ValueKind = "null"
	ValueList   ValueKind = "list"
	ValueDict   ValueKind = "dict"
)

// Dict maps string keys to values. It can contain any Value, including
// containers.
type Dict = map[string]Value

// List is an ordered sequence of values.
type List = []Value

// Value is an attribute value. Kind determines which typed field is populated.
type Value struct {
	Kind  ValueKind
	Str   string  // populated when Kind == ValueString or ValueIdent
	Int   int64   // populated when Kind == ValueInt
	Float float64 // populated when Kind == ValueFloat
	Bool  bool    // populated when Kind == ValueBool
	List  List    // populated when Kind == ValueList
	Dict  Dict    // populated when Kind == ValueDict
}

// StringValue constructs a string Value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// IdentValue constructs an identifier Value, written !name in source.
func IdentValue(s string) Value { return Value{Kind: ValueIdent, Str: s} }

func IntValue(n int64) Value { return Value{Kind: ValueInt, Int: n} }

func FloatValue(f float64) Value { return Value{Kind: ValueFloat, Float: f} }

func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

func NullValue() Value { return Value{Kind: ValueNull} }

// ListValue constructs a list Value; no arguments gives an empty list.
func ListValue(items ...Value) Value {
	if items == nil {
		items = List{}
	}
	return Value{Kind: ValueList, List: items}
}

// DictValue wraps d; a nil map becomes an empty dict.
func DictValue(d Dict) Value {
	if d == nil {
		d = Dict{}
	}
	return Value{Kind: ValueDict, Dict: d}
}

// valueFromScalar maps a parser scalar onto the document Value.
func valueFromScalar(s figparser.Scalar) Value {
	switch s.Kind {
	case figparser.ScalarString:
		return StringValue(s.Str)
	case figparser.ScalarInt:
		return IntValue(s.Int)
	case figparser.ScalarFloat:
		return FloatValue(s.Float)
	case figparser.ScalarBool:
		return BoolValue(s.Bool)
	case figparser.ScalarIdent:
		return IdentValue(s.Str)
	default:
		return NullValue()
	}
}

// AsString returns the contained string if v is a string.
func (v Value) AsString() (string, bool) {
	return v.Str, v.Kind == ValueString
}

// AsIdent returns the identifier name if v is an identifier.
func (v Value) AsIdent() (string, bool) {
	return v.Str, v.Kind == ValueIdent
}

func (v Value) AsInt() (int64, bool) {
	return v.Int, v.Kind == ValueInt
}

func (v Value) AsFloat() (float64, bool) {
	return v.Float, v.Kind == ValueFloat
}

func (v Value) AsBool() (bool, bool) {
	return v.Bool, v.Kind == ValueBool
}

func (v Value) AsList() (List, bool) {
	return v.List, v.Kind == ValueList
}

func (v Value) AsDict() (Dict, bool) {
	return v.Dict, v.Kind == ValueDict
}

// DictKeys returns the keys of a dict value in sorted order, or nil if v is
// not a dict.
func (v Value) DictKeys() []string {
	if v.Kind != ValueDict {
		return nil
	}
	return sortedKeys(v.Dict)
}

func (v Value) IsNull() bool {
	return v.Kind == ValueNull
}

// Interface converts v into plain Go values: string, int64, float64, bool,
// nil, []any and map[string]any. Identifiers become their bare name.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString, ValueIdent:
		return v.Str
	case ValueInt:
		return v.Int
	case ValueFloat:
		return v.Float
	case ValueBool:
		return v.Bool
	case ValueList:
		out := make([]any, len(v.List))
		for i, item := range v.List {
			out[i] = item.Interface()
		}
		return out
	case ValueDict:
		out := make(map[string]any, len(v.Dict))
		for k, item := range v.Dict {
			out[k] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// String renders v in figtree value syntax. Dict keys are sorted.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return strconv.Quote(v.Str)
	case ValueIdent:
		return "!" + v.Str
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValueDict:
		keys := v.DictKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ": " + v.Dict[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
