// Package figparser implements the lexer and pull parser for the figtree
// configuration language.
//
// A figtree document is a sequence of named nodes. Nodes hold string-keyed
// attributes and nested nodes; attribute values are strings, integers,
// floats, booleans, null, !identifiers, lists and dicts. Both // line and
// nested /* block */ comments are skipped.
//
// The package is structured as a pipeline of pull-driven stages:
//
//   - Source: decodes runes from an io.Reader and supports multi-rune
//     pushback while keeping the line/column cursor in step.
//   - Lexer: converts runes into a token stream with one token of lookahead.
//   - Parser: drives an explicit context stack and yields one structural
//     Event per call to Next.
//
// Building a tree out of the events is the job of the figtree package:
//
//	p := figparser.NewParser(figparser.NewLexer(r))
//	for {
//	    ev, err := p.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(ev)
//	}
//
// Every stage stops at its first error and keeps returning it.
package figparser
