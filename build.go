package figtree

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrJohz/figtree/figparser"
)

// EventSource yields parse events one at a time. *figparser.Parser is the
// usual implementation.
type EventSource interface {
	Next() (figparser.Event, error)
}

// Build consumes a complete event stream and assembles the Document. The
// first error from the source, or a repeated node name, aborts the build and
// no partial document is returned.
func Build(src EventSource) (*Document, error) {
	b := &builder{src: src}
	return b.buildFile()
}

type builder struct {
	src    EventSource
	peeked *figparser.Event
}

func (b *builder) next() (figparser.Event, error) {
	if b.peeked != nil {
		ev := *b.peeked
		b.peeked = nil
		return ev, nil
	}
	ev, err := b.src.Next()
	if errors.Is(err, io.EOF) {
		return figparser.Event{}, &figparser.ParseError{Kind: figparser.ErrUnexpectedEOF}
	}
	return ev, err
}

func (b *builder) peek() (figparser.Event, error) {
	if b.peeked != nil {
		return *b.peeked, nil
	}
	ev, err := b.next()
	if err != nil {
		return figparser.Event{}, err
	}
	b.peeked = &ev
	return ev, nil
}

func unexpectedEvent(ev figparser.Event, where string) error {
	return fmt.Errorf("%s: unexpected %s event in %s", ev.Pos, ev.Kind, where)
}

func (b *builder) buildFile() (*Document, error) {
	ev, err := b.next()
	if err != nil {
		return nil, err
	}
	if ev.Kind != figparser.EventFileStart {
		return nil, unexpectedEvent(ev, "file header")
	}

	doc := NewDocument()
	for {
		ev, err := b.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case figparser.EventFileEnd:
			return doc, nil
		case figparser.EventNodeStart:
			node, err := doc.AddNode(ev.Name)
			if err != nil {
				return nil, atEvent(err, ev)
			}
			if err := b.buildNode(node); err != nil {
				return nil, err
			}
		default:
			return nil, unexpectedEvent(ev, "file")
		}
	}
}

// atEvent positions a repeated-node error at the offending node's name.
func atEvent(err error, ev figparser.Event) error {
	var pe *figparser.ParseError
	if errors.As(err, &pe) {
		pe.Pos = ev.Pos
	}
	return err
}

func (b *builder) buildNode(node *Node) error {
	for {
		ev, err := b.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case figparser.EventNodeEnd:
			return nil
		case figparser.EventNodeStart:
			sub, err := node.AddNode(ev.Name)
			if err != nil {
				return atEvent(err, ev)
			}
			if err := b.buildNode(sub); err != nil {
				return err
			}
		case figparser.EventKey:
			val, err := b.buildValue()
			if err != nil {
				return err
			}
			node.SetAttr(ev.Name, val)
		default:
			return unexpectedEvent(ev, "node")
		}
	}
}

func (b *builder) buildValue() (Value, error) {
	ev, err := b.next()
	if err != nil {
		return Value{}, err
	}
	switch ev.Kind {
	case figparser.EventValue:
		return valueFromScalar(ev.Value), nil
	case figparser.EventListStart:
		return b.buildList()
	case figparser.EventDictStart:
		return b.buildDict()
	default:
		return Value{}, unexpectedEvent(ev, "value position")
	}
}

func (b *builder) buildList() (Value, error) {
	list := List{}
	for {
		ev, err := b.peek()
		if err != nil {
			return Value{}, err
		}
		if ev.Kind == figparser.EventListEnd {
			_, _ = b.next()
			return ListValue(list...), nil
		}
		val, err := b.buildValue()
		if err != nil {
			return Value{}, err
		}
		list = append(list, val)
	}
}

func (b *builder) buildDict() (Value, error) {
	dict := Dict{}
	for {
		ev, err := b.next()
		if err != nil {
			return Value{}, err
		}
		switch ev.Kind {
		case figparser.EventDictEnd:
			return DictValue(dict), nil
		case figparser.EventKey:
			val, err := b.buildValue()
			if err != nil {
				return Value{}, err
			}
			dict[ev.Name] = val
		default:
			return Value{}, unexpectedEvent(ev, "dict")
		}
	}
}
