package figtree

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/MrJohz/figtree/figparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseString(src)
	require.NoError(t, err, "input: %s", src)
	require.NotNil(t, doc)
	return doc
}

func requireParseError(t *testing.T, src string) *figparser.ParseError {
	t.Helper()
	doc, err := ParseString(src)
	require.Error(t, err, "input: %s", src)
	assert.Nil(t, doc)
	var pe *figparser.ParseError
	require.True(t, errors.As(err, &pe), "input: %s", src)
	return pe
}

func TestParseEmptyDocument(t *testing.T) {
	for _, src := range []string{"", "   \n", "// just a comment\n", "/* block */"} {
		doc := mustParse(t, src)
		assert.Equal(t, 0, doc.NodeCount(), "input: %q", src)
	}
}

func TestParseNodes(t *testing.T) {
	doc := mustParse(t, "node {} hello { nested {} }")
	assert.Equal(t, 2, doc.NodeCount())
	assert.Equal(t, []string{"hello", "node"}, doc.Names())

	hello := doc.Node("hello")
	require.NotNil(t, hello)
	assert.True(t, hello.HasNode("nested"))
	assert.Equal(t, 0, hello.Node("nested").NodeCount())
	assert.Equal(t, 0, doc.Node("node").AttrCount())
}

func TestParseKeyValues(t *testing.T) {
	doc := mustParse(t, `
node {
    'str': 'a string',
    'int': 42,
    'neg': -7,
    'float': 3.5,
    'yes': true,
    'no': false,
    'nil': null,
    'ident': !an_identifier,
}`)
	node := doc.Node("node")
	require.NotNil(t, node)

	tests := []struct {
		key  string
		want Value
	}{
		{"str", StringValue("a string")},
		{"int", IntValue(42)},
		{"neg", IntValue(-7)},
		{"float", FloatValue(3.5)},
		{"yes", BoolValue(true)},
		{"no", BoolValue(false)},
		{"nil", NullValue()},
		{"ident", IdentValue("an_identifier")},
	}
	assert.Equal(t, len(tests), node.AttrCount())
	for _, tt := range tests {
		got, ok := node.Attr(tt.key)
		require.True(t, ok, "key: %s", tt.key)
		assert.Equal(t, tt.want, got, "key: %s", tt.key)
	}
}

func TestParseContainers(t *testing.T) {
	doc := mustParse(t, `
node {
    'list': [1, 'two', [3], {'four': 4}],
    'empty list': [],
    'dict': {'a': [true, false], 'b': {'c': null}},
    'empty dict': {},
}`)
	node := doc.Node("node")
	require.NotNil(t, node)

	list, _ := node.Attr("list")
	assert.Equal(t, ListValue(
		IntValue(1),
		StringValue("two"),
		ListValue(IntValue(3)),
		DictValue(Dict{"four": IntValue(4)}),
	), list)

	empty, _ := node.Attr("empty list")
	assert.Equal(t, ListValue(), empty)

	dict, _ := node.Attr("dict")
	assert.Equal(t, DictValue(Dict{
		"a": ListValue(BoolValue(true), BoolValue(false)),
		"b": DictValue(Dict{"c": NullValue()}),
	}), dict)

	emptyDict, _ := node.Attr("empty dict")
	assert.Equal(t, DictValue(nil), emptyDict)
}

func TestParseTrailingCommaAfterList(t *testing.T) {
	doc := mustParse(t, "node{'k':[1,2,],sub{}}")
	node := doc.Node("node")
	require.NotNil(t, node)

	k, ok := node.Attr("k")
	require.True(t, ok)
	assert.Equal(t, ListValue(IntValue(1), IntValue(2)), k)
	assert.True(t, node.HasNode("sub"))
}

func TestParseStringConcatenation(t *testing.T) {
	doc := mustParse(t, `node { 'k': 'hello, ' "world" r/!/ }`)
	v, _ := doc.Node("node").Attr("k")
	assert.Equal(t, StringValue("hello, world!"), v)
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want Value
	}{
		{"0x10", IntValue(16)},
		{"0o10", IntValue(8)},
		{"0b10", IntValue(2)},
		{"0d10", IntValue(10)},
		{"1_0__5", IntValue(105)},
		{"10e5", FloatValue(1000000.0)},
		{"10.5", FloatValue(10.5)},
		{".25", FloatValue(0.25)},
	}
	for _, tt := range tests {
		doc := mustParse(t, "node { 'v': "+tt.src+" }")
		got, _ := doc.Node("node").Attr("v")
		assert.Equal(t, tt.want, got, "input: %s", tt.src)
	}
}

func TestParseNamespacesAreIndependent(t *testing.T) {
	doc := mustParse(t, "node{subby{'exists':true} 'subby':null}")
	node := doc.Node("node")
	require.NotNil(t, node)

	require.True(t, node.HasNode("subby"))
	exists, ok := node.Node("subby").Attr("exists")
	require.True(t, ok)
	assert.Equal(t, BoolValue(true), exists)

	attr, ok := node.Attr("subby")
	require.True(t, ok)
	assert.True(t, attr.IsNull())
}

func TestParseLaterAttributeWins(t *testing.T) {
	doc := mustParse(t, "node { 'k': 1, 'k': 2 }")
	v, _ := doc.Node("node").Attr("k")
	assert.Equal(t, IntValue(2), v)

	doc = mustParse(t, "node { 'd': {'k': 1, 'k': 'two'} }")
	d, _ := doc.Node("node").Attr("d")
	assert.Equal(t, DictValue(Dict{"k": StringValue("two")}), d)
}

func TestParseRepeatedNodes(t *testing.T) {
	tests := []struct {
		src  string
		name string
		pos  figparser.Position
	}{
		{"node{} node{}", "node", figparser.Position{Line: 0, Column: 7}},
		{"node{sub{} sub{}}", "sub", figparser.Position{Line: 0, Column: 11}},
		{"a{}\nb{ x{} }\na{}", "a", figparser.Position{Line: 2, Column: 0}},
	}
	for _, tt := range tests {
		pe := requireParseError(t, tt.src)
		assert.Equal(t, figparser.ErrRepeatedNode, pe.Kind, "input: %s", tt.src)
		assert.Equal(t, tt.name, pe.Name, "input: %s", tt.src)
		assert.Equal(t, tt.pos, pe.Pos, "input: %s", tt.src)
	}
}

func TestParseSameNameInDifferentScopes(t *testing.T) {
	doc := mustParse(t, "a { x {} } b { x {} } x {}")
	assert.True(t, doc.Node("a").HasNode("x"))
	assert.True(t, doc.Node("b").HasNode("x"))
	assert.True(t, doc.HasNode("x"))
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind figparser.ParseErrorKind
	}{
		{"node{'k1':true 'k2':'v'}", figparser.ErrUnexpectedToken},
		{"node { 'k': bare }", figparser.ErrUnexpectedToken},
		{"node {", figparser.ErrUnexpectedEOF},
		{"node { 'k': [1, 2", figparser.ErrUnexpectedEOF},
		{"node { 'k': 'open }", figparser.ErrLex},
		{"node { /* open }", figparser.ErrLex},
	}
	for _, tt := range tests {
		pe := requireParseError(t, tt.src)
		assert.Equal(t, tt.kind, pe.Kind, "input: %s", tt.src)
	}
}

func TestParseLexErrorKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind figparser.LexErrorKind
	}{
		{"node { 'k': 'open }", figparser.ErrUnclosedString},
		{"node { /* open }", figparser.ErrUnclosedComment},
		{`node { 'k': '\q' }`, figparser.ErrInvalidEscape},
		{"node { 'k': 0b12 }", figparser.ErrIntegerParse},
		{"node { 'k': @ }", figparser.ErrUnrecognisedChar},
	}
	for _, tt := range tests {
		_, err := ParseString(tt.src)
		var le *figparser.LexError
		require.True(t, errors.As(err, &le), "input: %s", tt.src)
		assert.Equal(t, tt.kind, le.Kind, "input: %s", tt.src)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := `a { 'x': [1, {'y': !z}], b { 'q': 'r' 's' } } c { 'n': null }`
	first := mustParse(t, src)
	second := mustParse(t, src)
	assert.Equal(t, first, second)
}

func TestParseBytes(t *testing.T) {
	doc, err := ParseBytes([]byte("node { 'k': 1 }"))
	require.NoError(t, err)
	v, _ := doc.Node("node").Attr("k")
	assert.Equal(t, IntValue(1), v)
}

func TestParseFileSample(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "sample.ft"))
	require.NoError(t, err)
	assert.Equal(t, []string{"test"}, doc.Names())

	test := doc.Node("test")
	require.NotNil(t, test)

	s, _ := test.Attr("string")
	assert.Equal(t, StringValue("value"), s)

	list, _ := test.Attr("list")
	assert.Equal(t, ListValue(IntValue(1), IntValue(2), IntValue(3), StringValue("four")), list)

	concat, _ := test.Attr("concat")
	assert.Equal(t, StringValue("hello, world"), concat)

	numbers, _ := test.Attr("numbers")
	assert.Equal(t, ListValue(
		IntValue(16), IntValue(8), IntValue(2), IntValue(10), IntValue(1000), FloatValue(-2500),
	), numbers)

	sub := test.Node("subtest")
	require.NotNil(t, sub)
	dict, _ := sub.Attr("dict")
	assert.Equal(t, DictValue(Dict{
		"an identifier": IdentValue("jello_shots"),
		"raw":           StringValue(`C:\path\to\file`),
	}), dict)

	missing, ok := sub.Attr("nonexistent")
	require.True(t, ok)
	assert.True(t, missing.IsNull())
}

func TestParseFileNamesFileInErrors(t *testing.T) {
	path := filepath.Join("testdata", "repeated.ft")
	_, err := ParseFile(path)
	require.Error(t, err)

	var pe *figparser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, figparser.ErrRepeatedNode, pe.Kind)
	assert.Equal(t, path, pe.Filename)
	assert.Equal(t, path+`: line 2, col 1: repeated node "node"`, err.Error())
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "does-not-exist.ft"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening figtree file")

	var pe *figparser.ParseError
	assert.False(t, errors.As(err, &pe))
}

func TestParseWithListener(t *testing.T) {
	var kinds []figparser.EventKind
	_, err := ParseString("node { 'k': [1] }", figparser.WithListener(func(e figparser.Event) {
		kinds = append(kinds, e.Kind)
	}))
	require.NoError(t, err)
	assert.Equal(t, []figparser.EventKind{
		figparser.EventFileStart,
		figparser.EventNodeStart,
		figparser.EventKey,
		figparser.EventListStart,
		figparser.EventValue,
		figparser.EventListEnd,
		figparser.EventNodeEnd,
		figparser.EventFileEnd,
	}, kinds)
}
