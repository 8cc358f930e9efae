package figtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAccessors(t *testing.T) {
	s, ok := StringValue("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = IdentValue("x").AsString()
	assert.False(t, ok, "identifiers are not strings")

	id, ok := IdentValue("fast").AsIdent()
	assert.True(t, ok)
	assert.Equal(t, "fast", id)

	n, ok := IntValue(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = IntValue(7).AsFloat()
	assert.False(t, ok)

	f, ok := FloatValue(1.5).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	b, ok := BoolValue(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	l, ok := ListValue(IntValue(1)).AsList()
	assert.True(t, ok)
	assert.Len(t, l, 1)

	d, ok := DictValue(Dict{"k": NullValue()}).AsDict()
	assert.True(t, ok)
	assert.Len(t, d, 1)

	assert.True(t, NullValue().IsNull())
	assert.False(t, StringValue("").IsNull())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{StringValue(`say "hi"`), `"say \"hi\""`},
		{IdentValue("fast"), "!fast"},
		{IntValue(-3), "-3"},
		{FloatValue(2.5), "2.5"},
		{BoolValue(false), "false"},
		{NullValue(), "null"},
		{ListValue(), "[]"},
		{ListValue(IntValue(1), StringValue("a")), `[1, "a"]`},
		{DictValue(Dict{"b": IntValue(2), "a": ListValue()}), `{"a": [], "b": 2}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.value.String())
	}
}

func TestValueInterface(t *testing.T) {
	v := DictValue(Dict{
		"list": ListValue(IntValue(1), FloatValue(2.5), IdentValue("x")),
		"nil":  NullValue(),
		"ok":   BoolValue(true),
	})
	assert.Equal(t, map[string]any{
		"list": []any{int64(1), 2.5, "x"},
		"nil":  nil,
		"ok":   true,
	}, v.Interface())
}

func TestValueDictKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, DictValue(Dict{"c": NullValue(), "a": NullValue(), "b": NullValue()}).DictKeys())
	assert.Nil(t, IntValue(1).DictKeys())
}
