package figparser

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenComma                // ,
	TokenColon                // :
	TokenBang                 // !
	TokenIdentifier           // name or `escaped name`
	TokenString               // '...', "..." or r/.../ with escapes decoded
	TokenInteger              // 42, -7, 0xff, 0o17, 0b101, 0d99
	TokenFloat                // 1.5, .5, 10e5
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenComma:      "','",
	TokenColon:      "':'",
	TokenBang:       "'!'",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenInteger:    "integer",
	TokenFloat:      "float",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string  // decoded text for identifiers and strings, source text otherwise
	Int     int64   // populated when Kind == TokenInteger
	Float   float64 // populated when Kind == TokenFloat
	Pos     Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", t.Literal)
	case TokenString:
		return "string " + strconv.Quote(t.Literal)
	case TokenInteger, TokenFloat:
		return fmt.Sprintf("%s %s", t.Kind, t.Literal)
	default:
		return t.Kind.String()
	}
}
