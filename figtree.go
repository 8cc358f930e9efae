// Package figtree parses figtree configuration documents.
//
// A document is a set of named nodes. Each node holds string-keyed
// attributes and further nodes:
//
//	server {
//	    'host': 'localhost', 'port': 8080,
//	    'tags': ['a', 'b'], 'mode': !fast,
//	    tls { 'enabled': false }
//	}
//
// Parse runs the whole pipeline (figparser.Lexer, figparser.Parser and
// Build) and returns either a complete Document or the first error, a
// *figparser.ParseError carrying the position of the offending token.
//
// Usage:
//
//	doc, err := figtree.ParseFile("server.ft")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port, _ := doc.Node("server").Attr("port")
//	fmt.Println(port.Int)
package figtree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MrJohz/figtree/figparser"
)

// Parse reads a figtree document from r.
func Parse(r io.Reader, opts ...figparser.Option) (*Document, error) {
	lex := figparser.NewLexer(r, opts...)
	return Build(figparser.NewParser(lex, opts...))
}

// ParseString parses a document held in a string.
func ParseString(src string, opts ...figparser.Option) (*Document, error) {
	return Parse(strings.NewReader(src), opts...)
}

// ParseBytes parses a document held in memory.
func ParseBytes(src []byte, opts ...figparser.Option) (*Document, error) {
	return Parse(bytes.NewReader(src), opts...)
}

// ParseFile opens and parses the named file. Parse errors name the file.
func ParseFile(path string, opts ...figparser.Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening figtree file: %w", err)
	}
	defer f.Close()

	opts = append([]figparser.Option{figparser.WithFilename(path)}, opts...)
	doc, err := Parse(f, opts...)
	if err != nil {
		var pe *figparser.ParseError
		if errors.As(err, &pe) && pe.Filename == "" {
			pe.Filename = path
		}
		return nil, err
	}
	return doc, nil
}
