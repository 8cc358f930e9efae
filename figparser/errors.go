package figparser

import (
	"fmt"
	"strconv"
)

// LexErrorKind classifies lexer failures.
type LexErrorKind int

const (
	ErrUnclosedComment LexErrorKind = iota
	ErrUnclosedString
	ErrUnclosedIdent
	ErrNewlineInIdentifier
	ErrInvalidEscape
	ErrInvalidUnicodeEscape
	ErrFloatParse
	ErrIntegerParse
	ErrUnrecognisedChar
	ErrRead
)

var lexErrorNames = map[LexErrorKind]string{
	ErrUnclosedComment:      "unclosed block comment",
	ErrUnclosedString:       "unclosed string",
	ErrUnclosedIdent:        "unclosed escaped identifier",
	ErrNewlineInIdentifier:  "newline in escaped identifier",
	ErrInvalidEscape:        "invalid escape",
	ErrInvalidUnicodeEscape: "invalid unicode escape",
	ErrFloatParse:           "invalid float literal",
	ErrIntegerParse:         "invalid integer literal",
	ErrUnrecognisedChar:     "unrecognised character",
	ErrRead:                 "read error",
}

func (k LexErrorKind) String() string {
	if name, ok := lexErrorNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LexErrorKind(%d)", int(k))
}

// LexError is a lexer-level failure. Pos is the first character of the token
// being scanned.
type LexError struct {
	Kind  LexErrorKind
	Pos   Position
	Char  rune   // offending character for ErrInvalidEscape and ErrUnrecognisedChar
	Text  string // offending literal or escape digits, when there is one
	Cause error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line+1, e.Pos.Column+1, e.describe())
}

func (e *LexError) describe() string {
	msg := e.Kind.String()
	switch {
	case e.Kind == ErrInvalidEscape || e.Kind == ErrUnrecognisedChar:
		msg = fmt.Sprintf("%s %q", msg, e.Char)
	case e.Text != "":
		msg = fmt.Sprintf("%s %q", msg, e.Text)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *LexError) Unwrap() error { return e.Cause }

// ParseErrorKind classifies parser and builder failures.
type ParseErrorKind int

const (
	ErrLex ParseErrorKind = iota
	ErrUnexpectedEOF
	ErrUnexpectedToken
	ErrRepeatedNode
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrLex:
		return "lex error"
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrRepeatedNode:
		return "repeated node"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is the error returned by the parser and the document builder.
// Lexer failures arrive wrapped with Kind ErrLex; errors.As reaches the
// underlying *LexError through Unwrap.
type ParseError struct {
	Kind     ParseErrorKind
	Pos      Position
	Token    Token  // offending token for ErrUnexpectedToken
	Name     string // node name for ErrRepeatedNode
	Filename string // set by callers that know where the input came from
	Cause    error
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case ErrLex:
		if le, ok := e.Cause.(*LexError); ok {
			msg = le.describe()
		} else {
			msg = fmt.Sprintf("%s: %v", e.Kind, e.Cause)
		}
	case ErrUnexpectedToken:
		msg = fmt.Sprintf("unexpected %s", e.Token)
	case ErrRepeatedNode:
		msg = "repeated node " + strconv.Quote(e.Name)
	default:
		msg = e.Kind.String()
	}
	loc := fmt.Sprintf("line %d, col %d", e.Pos.Line+1, e.Pos.Column+1)
	if e.Filename != "" {
		loc = e.Filename + ": " + loc
	}
	return loc + ": " + msg
}

func (e *ParseError) Unwrap() error { return e.Cause }
