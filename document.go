package figtree

import (
	"github.com/MrJohz/figtree/figparser"
)

// Node is a named container of attributes and subnodes. The two namespaces
// are independent: a node may hold a subnode and an attribute with the same
// name.
type Node struct {
	Subnodes   map[string]*Node
	Attributes map[string]Value
}

// NewNode constructs an empty Node.
func NewNode() *Node {
	return &Node{
		Subnodes:   make(map[string]*Node),
		Attributes: make(map[string]Value),
	}
}

// AddNode inserts a new, empty subnode and returns it so children can be
// attached. It fails with an ErrRepeatedNode *figparser.ParseError if the
// name is already taken; existing subnodes are never reused.
func (n *Node) AddNode(name string) (*Node, error) {
	return insertNode(n.Subnodes, name)
}

// Node returns the named subnode, or nil if there is none.
func (n *Node) Node(name string) *Node {
	return n.Subnodes[name]
}

// HasNode reports whether a subnode with the given name exists.
func (n *Node) HasNode(name string) bool {
	_, ok := n.Subnodes[name]
	return ok
}

// Attr looks up an attribute by key. Returns the value and true if found.
func (n *Node) Attr(key string) (Value, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// SetAttr stores an attribute, replacing any previous value for key.
func (n *Node) SetAttr(key string, v Value) {
	n.Attributes[key] = v
}

func (n *Node) NodeCount() int { return len(n.Subnodes) }

func (n *Node) AttrCount() int { return len(n.Attributes) }

// SubnodeNames returns the subnode names in sorted order.
func (n *Node) SubnodeNames() []string { return sortedKeys(n.Subnodes) }

// AttrNames returns the attribute keys in sorted order.
func (n *Node) AttrNames() []string { return sortedKeys(n.Attributes) }

// Document is the root collection of top-level nodes.
type Document struct {
	Nodes map[string]*Node
}

// NewDocument constructs an empty Document.
func NewDocument() *Document {
	return &Document{Nodes: make(map[string]*Node)}
}

// AddNode inserts a new top-level node, failing if the name is taken.
func (d *Document) AddNode(name string) (*Node, error) {
	return insertNode(d.Nodes, name)
}

// Node returns the named top-level node, or nil if there is none.
func (d *Document) Node(name string) *Node {
	return d.Nodes[name]
}

func (d *Document) HasNode(name string) bool {
	_, ok := d.Nodes[name]
	return ok
}

func (d *Document) NodeCount() int { return len(d.Nodes) }

// Names returns the top-level node names in sorted order.
func (d *Document) Names() []string { return sortedKeys(d.Nodes) }

func insertNode(scope map[string]*Node, name string) (*Node, error) {
	if _, ok := scope[name]; ok {
		return nil, &figparser.ParseError{Kind: figparser.ErrRepeatedNode, Name: name}
	}
	node := NewNode()
	scope[name] = node
	return node, nil
}
