package figparser

import (
	"errors"
	"io"
	"log/slog"
	"strings"
)

type contextKind int

const (
	ctxBasefile contextKind = iota
	ctxNode
	ctxValue
	ctxList
	ctxDict
)

// parseContext is one frame of the parser's explicit stack. hasComma is
// true when the next key may start without a separator: right after the
// opening delimiter, after a comma, or after a nested node.
type parseContext struct {
	kind     contextKind
	hasComma bool
}

// Parser turns the Lexer's tokens into a stream of Events, one per call to
// Next. It keeps its own stack instead of recursing so callers can pause
// between events.
type Parser struct {
	lex     *Lexer
	cfg     *config
	stack   []parseContext
	started bool
	ended   bool
	err     error
}

// NewParser creates a Parser reading tokens from lex.
func NewParser(lex *Lexer, opts ...Option) *Parser {
	return &Parser{
		lex:   lex,
		cfg:   newConfig(opts),
		stack: make([]parseContext, 0, 8),
	}
}

// Next returns the next event. After EventFileEnd it returns io.EOF. The
// first error, always a *ParseError, is returned by every later call.
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	if p.ended {
		return Event{}, io.EOF
	}

	ev, err := p.step()
	if err != nil {
		p.err = p.wrap(err)
		p.cfg.log("parser", "parse error", slog.String("error", p.err.Error()))
		return Event{}, p.err
	}
	if ev.Kind == EventFileEnd {
		p.ended = true
	}

	p.cfg.log("parser", "event",
		slog.String("kind", ev.Kind.String()),
		slog.String("pos", ev.Pos.String()),
		slog.Int("depth", len(p.stack)))
	if p.cfg.emitter != nil {
		p.cfg.emitter.Emit(ev)
	}
	return ev, nil
}

// wrap converts lexer errors into ParseErrors and stamps the filename.
func (p *Parser) wrap(err error) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		var le *LexError
		if errors.As(err, &le) {
			pe = &ParseError{Kind: ErrLex, Pos: le.Pos, Cause: le}
		} else {
			pe = &ParseError{Kind: ErrLex, Cause: err}
		}
	}
	if pe.Filename == "" {
		pe.Filename = p.cfg.filename
	}
	return pe
}

func (p *Parser) step() (Event, error) {
	if !p.started {
		p.started = true
		p.push(ctxBasefile, false)
		return Event{Kind: EventFileStart}, nil
	}

	switch p.top().kind {
	case ctxBasefile:
		return p.parseBasefile()
	case ctxNode:
		return p.parseNode()
	case ctxValue:
		return p.parseValue()
	case ctxList:
		return p.parseList()
	default:
		return p.parseDict()
	}
}

func (p *Parser) push(kind contextKind, hasComma bool) {
	p.stack = append(p.stack, parseContext{kind: kind, hasComma: hasComma})
}

func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) top() *parseContext {
	return &p.stack[len(p.stack)-1]
}

func unexpected(tok Token) error {
	if tok.Kind == TokenEOF {
		return &ParseError{Kind: ErrUnexpectedEOF, Pos: tok.Pos}
	}
	return &ParseError{Kind: ErrUnexpectedToken, Pos: tok.Pos, Token: tok}
}

func (p *Parser) parseBasefile() (Event, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Event{}, err
	}
	switch tok.Kind {
	case TokenEOF:
		return Event{Kind: EventFileEnd, Pos: tok.Pos}, nil
	case TokenIdentifier:
		return p.startNode(tok)
	default:
		return Event{}, unexpected(tok)
	}
}

// startNode expects the '{' following a node name.
func (p *Parser) startNode(name Token) (Event, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Event{}, err
	}
	if tok.Kind != TokenLBrace {
		return Event{}, unexpected(tok)
	}
	p.push(ctxNode, true)
	return Event{Kind: EventNodeStart, Name: name.Literal, Pos: name.Pos}, nil
}

func (p *Parser) parseNode() (Event, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Event{}, err
	}
	switch tok.Kind {
	case TokenRBrace:
		p.pop()
		return Event{Kind: EventNodeEnd, Pos: tok.Pos}, nil
	case TokenIdentifier:
		p.top().hasComma = true
		return p.startNode(tok)
	case TokenString:
		return p.parseKey(tok)
	default:
		return Event{}, unexpected(tok)
	}
}

func (p *Parser) parseDict() (Event, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Event{}, err
	}
	switch tok.Kind {
	case TokenRBrace:
		p.pop()
		p.consumeOptionalComma()
		return Event{Kind: EventDictEnd, Pos: tok.Pos}, nil
	case TokenString:
		return p.parseKey(tok)
	default:
		return Event{}, unexpected(tok)
	}
}

// parseKey handles `STRING ':'` inside a node or dict. A key is only
// allowed first in its scope or after a comma.
func (p *Parser) parseKey(key Token) (Event, error) {
	scope := p.top()
	if !scope.hasComma {
		return Event{}, unexpected(key)
	}
	tok, err := p.lex.Next()
	if err != nil {
		return Event{}, err
	}
	if tok.Kind != TokenColon {
		return Event{}, unexpected(tok)
	}
	scope.hasComma = false
	p.push(ctxValue, false)
	return Event{Kind: EventKey, Name: key.Literal, Pos: key.Pos}, nil
}

func (p *Parser) parseList() (Event, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return Event{}, err
	}
	switch tok.Kind {
	case TokenRBracket:
		_, _ = p.lex.Next()
		p.pop()
		p.consumeOptionalComma()
		return Event{Kind: EventListEnd, Pos: tok.Pos}, nil
	case TokenEOF:
		return Event{}, unexpected(tok)
	}
	p.push(ctxValue, false)
	return p.parseValue()
}

// parseValue reads exactly one value. The Value context is popped first, so
// a list or dict pushes its own context in its place.
func (p *Parser) parseValue() (Event, error) {
	p.pop()

	tok, err := p.lex.Next()
	if err != nil {
		return Event{}, err
	}

	var ev Event
	switch tok.Kind {
	case TokenString:
		ev = Event{Kind: EventValue, Value: Scalar{Kind: ScalarString, Str: p.concatStrings(tok)}, Pos: tok.Pos}
	case TokenBang:
		id, err := p.lex.Next()
		if err != nil {
			return Event{}, err
		}
		if id.Kind != TokenIdentifier {
			return Event{}, unexpected(id)
		}
		ev = Event{Kind: EventValue, Value: Scalar{Kind: ScalarIdent, Str: id.Literal}, Pos: tok.Pos}
	case TokenLBracket:
		p.push(ctxList, true)
		return Event{Kind: EventListStart, Pos: tok.Pos}, nil
	case TokenLBrace:
		p.push(ctxDict, true)
		return Event{Kind: EventDictStart, Pos: tok.Pos}, nil
	default:
		s, ok := scalarFromToken(tok)
		if !ok {
			return Event{}, unexpected(tok)
		}
		ev = Event{Kind: EventValue, Value: s, Pos: tok.Pos}
	}

	p.consumeOptionalComma()
	return ev, nil
}

// concatStrings appends any string literals directly following first.
// A lexer error stops the run; it is latched and surfaces on the next call.
func (p *Parser) concatStrings(first Token) string {
	var sb strings.Builder
	sb.WriteString(first.Literal)
	for {
		tok, err := p.lex.Peek()
		if err != nil || tok.Kind != TokenString {
			return sb.String()
		}
		_, _ = p.lex.Next()
		sb.WriteString(tok.Literal)
	}
}

// consumeOptionalComma eats a comma following a finished value and marks
// the enclosing scope as ready for another key.
func (p *Parser) consumeOptionalComma() {
	tok, err := p.lex.Peek()
	if err != nil || tok.Kind != TokenComma {
		return
	}
	_, _ = p.lex.Next()
	p.top().hasComma = true
}
