package figparser

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// rawDelimiters are the characters that may follow 'r' to open a raw string.
const rawDelimiters = `/|#$%("'`

// Lexer tokenizes figtree source text into a stream of tokens.
type Lexer struct {
	src    *Source
	cfg    *config
	start  Position // first character of the token being scanned
	peeked *Token
	err    error // first error, returned from then on
}

// NewLexer creates a new Lexer reading from r.
func NewLexer(r io.Reader, opts ...Option) *Lexer {
	return &Lexer{src: NewSource(r), cfg: newConfig(opts)}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.Next()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer. At the end of input
// it returns a TokenEOF token, repeatedly. Once an error has been returned,
// every later call returns the same error.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	if l.err != nil {
		return Token{}, l.err
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
		l.cfg.log("lexer", "lex error", slog.String("error", err.Error()))
		return Token{}, err
	}
	return tok, nil
}

func (l *Lexer) fail(kind LexErrorKind) *LexError {
	return &LexError{Kind: kind, Pos: l.start, Cause: l.src.Err()}
}

func (l *Lexer) token(kind TokenKind, literal string) Token {
	return Token{Kind: kind, Literal: literal, Pos: l.start}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		l.start = l.src.Pos()
		ch, ok := l.src.Next()
		if !ok {
			return nil
		}
		if unicode.IsSpace(ch) {
			continue
		}
		if ch == '/' {
			next, ok := l.src.Next()
			switch {
			case ok && next == '/':
				// Line comment: skip to end of line
				for {
					c, ok := l.src.Next()
					if !ok || c == '\n' {
						break
					}
				}
				continue
			case ok && next == '*':
				if err := l.skipBlockComment(); err != nil {
					return err
				}
				continue
			case ok:
				l.src.Unread(next)
			}
		}
		l.src.Unread(ch)
		return nil
	}
}

// skipBlockComment consumes a block comment whose opening "/*" has already
// been read. Block comments nest.
func (l *Lexer) skipBlockComment() error {
	depth := 1
	for depth > 0 {
		ch, ok := l.src.Next()
		if !ok {
			if l.src.Err() != nil {
				return l.fail(ErrRead)
			}
			return l.fail(ErrUnclosedComment)
		}
		switch ch {
		case '*':
			if next, ok := l.src.Peek(); ok && next == '/' {
				l.src.Next()
				depth--
			}
		case '/':
			if next, ok := l.src.Peek(); ok && next == '*' {
				l.src.Next()
				depth++
			}
		}
	}
	return nil
}

func (l *Lexer) scan() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	l.start = l.src.Pos()
	ch, ok := l.src.Next()
	if !ok {
		if l.src.Err() != nil {
			return Token{}, l.fail(ErrRead)
		}
		return l.token(TokenEOF, ""), nil
	}

	// Single-character tokens
	switch ch {
	case '{':
		return l.token(TokenLBrace, "{"), nil
	case '}':
		return l.token(TokenRBrace, "}"), nil
	case '[':
		return l.token(TokenLBracket, "["), nil
	case ']':
		return l.token(TokenRBracket, "]"), nil
	case ',':
		return l.token(TokenComma, ","), nil
	case ':':
		return l.token(TokenColon, ":"), nil
	case '!':
		return l.token(TokenBang, "!"), nil
	case '\'', '"':
		return l.scanString(ch)
	case '`':
		return l.scanEscapedIdentifier()
	case 'r':
		if next, ok := l.src.Peek(); ok && strings.ContainsRune(rawDelimiters, next) {
			l.src.Next()
			return l.scanRawString(next)
		}
	}

	if isDigit(ch) || (ch == '.' && l.nextIsDigit()) ||
		((ch == '+' || ch == '-') && (l.nextIsDigit() || l.nextIs('.'))) {
		return l.scanNumber(ch)
	}

	if isIdentStart(ch) {
		return l.scanIdentifier(ch), nil
	}

	err := l.fail(ErrUnrecognisedChar)
	err.Char = ch
	return Token{}, err
}

func (l *Lexer) nextIs(want rune) bool {
	next, ok := l.src.Peek()
	return ok && next == want
}

func (l *Lexer) nextIsDigit() bool {
	next, ok := l.src.Peek()
	return ok && isDigit(next)
}

func (l *Lexer) scanString(quote rune) (Token, error) {
	var sb strings.Builder
	for {
		ch, ok := l.src.Next()
		if !ok {
			return Token{}, l.fail(ErrUnclosedString)
		}
		switch ch {
		case quote:
			return l.token(TokenString, sb.String()), nil
		case '\\':
			r, err := l.scanEscape(quote, ErrUnclosedString)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanEscapedIdentifier reads a `backtick quoted` identifier. It uses the
// string escape grammar but may not contain a literal newline.
func (l *Lexer) scanEscapedIdentifier() (Token, error) {
	var sb strings.Builder
	for {
		ch, ok := l.src.Next()
		if !ok {
			return Token{}, l.fail(ErrUnclosedIdent)
		}
		switch ch {
		case '`':
			return l.token(TokenIdentifier, sb.String()), nil
		case '\n':
			return Token{}, l.fail(ErrNewlineInIdentifier)
		case '\\':
			r, err := l.scanEscape('`', ErrUnclosedIdent)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanEscape decodes the escape sequence following a backslash. unclosed is
// the error kind reported when the input ends mid-escape.
func (l *Lexer) scanEscape(quote rune, unclosed LexErrorKind) (rune, error) {
	esc, ok := l.src.Next()
	if !ok {
		return 0, l.fail(unclosed)
	}
	switch esc {
	case '/', '\\', '"', '\'':
		return esc, nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'u':
		var digits strings.Builder
		for i := 0; i < 4; i++ {
			c, ok := l.src.Next()
			if !ok {
				return 0, l.fail(unclosed)
			}
			digits.WriteRune(c)
		}
		code, err := strconv.ParseUint(digits.String(), 16, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			e := l.fail(ErrInvalidUnicodeEscape)
			e.Text = digits.String()
			return 0, e
		}
		return rune(code), nil
	}
	if esc == quote {
		return esc, nil
	}
	e := l.fail(ErrInvalidEscape)
	e.Char = esc
	return 0, e
}

// scanRawString reads the body of a raw string once "r" and the first
// delimiter have been consumed. The length of the opening delimiter run sets
// the length of the run that closes the string; shorter runs of the closing
// character are part of the body.
func (l *Lexer) scanRawString(delim rune) (Token, error) {
	closer := delim
	if delim == '(' {
		closer = ')'
	}

	n := 1
	for l.nextIs(delim) {
		l.src.Next()
		n++
	}

	var sb strings.Builder
	for {
		ch, ok := l.src.Next()
		if !ok {
			return Token{}, l.fail(ErrUnclosedString)
		}
		if ch != closer {
			sb.WriteRune(ch)
			continue
		}
		run := 1
		for l.nextIs(closer) {
			l.src.Next()
			run++
		}
		if run >= n {
			sb.WriteString(strings.Repeat(string(closer), run-n))
			return l.token(TokenString, sb.String()), nil
		}
		sb.WriteString(strings.Repeat(string(closer), run))
	}
}

func (l *Lexer) scanNumber(first rune) (Token, error) {
	if first == '0' {
		tok, ok, err := l.scanPrefixedInteger()
		if ok || err != nil {
			return tok, err
		}
	}

	var sb strings.Builder
	sb.WriteRune(first)
	isFloat := first == '.'
	sawDot := first == '.'

digits:
	for {
		ch, ok := l.src.Next()
		if !ok {
			break
		}
		switch {
		case isDigit(ch) || ch == '_':
			sb.WriteRune(ch)
		case ch == '.' && !sawDot:
			sawDot, isFloat = true, true
			sb.WriteRune(ch)
		case ch == 'e' || ch == 'E':
			isFloat = true
			sb.WriteRune(ch)
			if sign, ok := l.src.Peek(); ok && (sign == '+' || sign == '-') {
				l.src.Next()
				sb.WriteRune(sign)
			}
			for l.nextIsDigit() {
				d, _ := l.src.Next()
				sb.WriteRune(d)
			}
			break digits
		default:
			l.src.Unread(ch)
			break digits
		}
	}

	literal := sb.String()
	clean := strings.ReplaceAll(literal, "_", "")

	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			e := l.fail(ErrFloatParse)
			e.Text, e.Cause = literal, err
			return Token{}, e
		}
		tok := l.token(TokenFloat, literal)
		tok.Float = f
		return tok, nil
	}

	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		e := l.fail(ErrIntegerParse)
		e.Text, e.Cause = literal, err
		return Token{}, e
	}
	tok := l.token(TokenInteger, literal)
	tok.Int = n
	return tok, nil
}

// scanPrefixedInteger handles 0x, 0o, 0b and 0d literals after the leading
// zero has been read. It reports false, with the input rewound to just after
// the zero, when no base prefix followed by a digit is present.
func (l *Lexer) scanPrefixedInteger() (Token, bool, error) {
	prefix, ok := l.src.Next()
	if !ok {
		return Token{}, false, nil
	}
	base := 0
	switch prefix {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	case 'd', 'D':
		base = 10
	default:
		l.src.Unread(prefix)
		return Token{}, false, nil
	}

	first, ok := l.src.Next()
	if !ok {
		l.src.Unread(prefix)
		return Token{}, false, nil
	}
	if first != '_' && !isBaseDigit(first, base) {
		l.src.Unread(first)
		l.src.Unread(prefix)
		return Token{}, false, nil
	}

	var digits strings.Builder
	digits.WriteRune(first)
	for {
		ch, ok := l.src.Next()
		if !ok {
			break
		}
		if ch != '_' && !isAlnum(ch) {
			l.src.Unread(ch)
			break
		}
		digits.WriteRune(ch)
	}

	literal := "0" + string(prefix) + digits.String()
	n, err := strconv.ParseInt(strings.ReplaceAll(digits.String(), "_", ""), base, 64)
	if err != nil {
		e := l.fail(ErrIntegerParse)
		e.Text, e.Cause = literal, err
		return Token{}, true, e
	}
	tok := l.token(TokenInteger, literal)
	tok.Int = n
	return tok, true, nil
}

func (l *Lexer) scanIdentifier(first rune) Token {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		ch, ok := l.src.Next()
		if !ok {
			break
		}
		if !isIdentPart(ch) {
			l.src.Unread(ch)
			break
		}
		sb.WriteRune(ch)
	}
	return l.token(TokenIdentifier, sb.String())
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isBaseDigit(ch rune, base int) bool {
	var v int
	switch {
	case isDigit(ch):
		v = int(ch - '0')
	case ch >= 'a' && ch <= 'z':
		v = int(ch-'a') + 10
	case ch >= 'A' && ch <= 'Z':
		v = int(ch-'A') + 10
	default:
		return false
	}
	return v < base
}

// isIdentStart accepts letters, combining marks and connector punctuation
// such as '_'.
func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.Is(unicode.M, ch) || unicode.Is(unicode.Pc, ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}
