package figparser

import (
	"fmt"
	"strconv"
)

// EventKind identifies a structural parse event.
type EventKind int

const (
	EventFileStart EventKind = iota
	EventFileEnd
	EventNodeStart // Name holds the node name
	EventNodeEnd
	EventKey   // Name holds the attribute or dict key
	EventValue // Value holds the scalar
	EventListStart
	EventListEnd
	EventDictStart
	EventDictEnd
)

var eventNames = map[EventKind]string{
	EventFileStart: "FileStart",
	EventFileEnd:   "FileEnd",
	EventNodeStart: "NodeStart",
	EventNodeEnd:   "NodeEnd",
	EventKey:       "Key",
	EventValue:     "Value",
	EventListStart: "ListStart",
	EventListEnd:   "ListEnd",
	EventDictStart: "DictStart",
	EventDictEnd:   "DictEnd",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one step of the parser's output. Start events are always
// matched by their End event, and a Key is always followed by exactly one
// value: a Value event or a complete list or dict.
type Event struct {
	Kind  EventKind
	Name  string
	Value Scalar
	Pos   Position
}

func (e Event) String() string {
	switch e.Kind {
	case EventNodeStart, EventKey:
		return fmt.Sprintf("%s %s", e.Kind, strconv.Quote(e.Name))
	case EventValue:
		return fmt.Sprintf("%s %s", e.Kind, e.Value)
	default:
		return e.Kind.String()
	}
}

// ScalarKind discriminates the Scalar tagged union.
type ScalarKind string

const (
	ScalarString ScalarKind = "string"
	ScalarInt    ScalarKind = "int"
	ScalarFloat  ScalarKind = "float"
	ScalarBool   ScalarKind = "bool"
	ScalarIdent  ScalarKind = "ident"
	ScalarNull   ScalarKind = "null"
)

// Scalar is a leaf value carried by an EventValue. Kind determines which
// typed field is populated.
type Scalar struct {
	Kind  ScalarKind
	Str   string  // populated when Kind == ScalarString or ScalarIdent
	Int   int64   // populated when Kind == ScalarInt
	Float float64 // populated when Kind == ScalarFloat
	Bool  bool    // populated when Kind == ScalarBool
}

func (s Scalar) String() string {
	switch s.Kind {
	case ScalarString:
		return strconv.Quote(s.Str)
	case ScalarInt:
		return strconv.FormatInt(s.Int, 10)
	case ScalarFloat:
		return strconv.FormatFloat(s.Float, 'g', -1, 64)
	case ScalarBool:
		return strconv.FormatBool(s.Bool)
	case ScalarIdent:
		return "!" + s.Str
	case ScalarNull:
		return "null"
	default:
		return "<invalid>"
	}
}

// scalarFromToken converts a single-token value into a Scalar. Strings are
// handled by the parser because adjacent literals concatenate.
func scalarFromToken(tok Token) (Scalar, bool) {
	switch tok.Kind {
	case TokenInteger:
		return Scalar{Kind: ScalarInt, Int: tok.Int}, true
	case TokenFloat:
		return Scalar{Kind: ScalarFloat, Float: tok.Float}, true
	case TokenIdentifier:
		switch tok.Literal {
		case "true":
			return Scalar{Kind: ScalarBool, Bool: true}, true
		case "false":
			return Scalar{Kind: ScalarBool, Bool: false}, true
		case "null":
			return Scalar{Kind: ScalarNull}, true
		}
	}
	return Scalar{}, false
}
