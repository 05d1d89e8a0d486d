// Package xml builds XML documents as trees of nodes.
//
// A document is composed of nodes of different kinds (elements, text,
// comments etc) created through the New* constructors and linked together
// with InsertChild. Trees are not safe for concurrent mutation, callers
// needing that must serialize access themselves.
package xml

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	InvalidKind Kind = iota
	DocumentKind
	ElementKind
	TextKind
	CDataKind
	CommentKind
	ProcInstKind
	DoctypeKind
	DeclKind
)

var ErrInvalidArgument = errors.New("invalid argument")
var ErrNotImplemented = errors.New("not implemented")

// Node is a single node in a document tree. Kind-specific payload lives in
// the exported fields, the tree structure itself (parent link and ordered
// children) is only reachable through methods which keep both sides of the
// relation consistent: a node is in the children of its parent and nowhere
// else, and appears there exactly once.
type Node struct {
	Kind Kind
	Name string // element name or processing instruction target
	Data string // character data, comment text, doctype declaration
	attr []Attr

	parent   *Node
	children []*Node
}

func NewDocument() *Node {
	return &Node{Kind: DocumentKind}
}

func NewElement(name string) (*Node, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Node{Kind: ElementKind, Name: name}, nil
}

func NewText(data string) *Node {
	return &Node{Kind: TextKind, Data: data}
}

func NewCData(data string) (*Node, error) {
	if strings.Contains(data, "]]>") {
		return nil, fmt.Errorf("%w: CDATA section can not contain \"]]>\"", ErrInvalidArgument)
	}

	return &Node{Kind: CDataKind, Data: data}, nil
}

func NewComment(data string) (*Node, error) {
	if strings.Contains(data, "--") {
		return nil, fmt.Errorf("%w: comment can not contain \"--\"", ErrInvalidArgument)
	}

	if strings.HasSuffix(data, "-") {
		return nil, fmt.Errorf("%w: comment can not end with \"-\"", ErrInvalidArgument)
	}

	return &Node{Kind: CommentKind, Data: data}, nil
}

func NewProcInst(target, data string) (*Node, error) {
	if err := validateName(target); err != nil {
		return nil, err
	}

	if strings.EqualFold(target, "xml") {
		return nil, fmt.Errorf("%w: processing instruction target can not be %#v", ErrInvalidArgument, target)
	}

	if strings.Contains(data, "?>") {
		return nil, fmt.Errorf("%w: processing instruction can not contain \"?>\"", ErrInvalidArgument)
	}

	return &Node{Kind: ProcInstKind, Name: target, Data: data}, nil
}

func NewDoctype(data string) *Node {
	return &Node{Kind: DoctypeKind, Data: data}
}

// NewDecl creates an XML declaration node. Encoding and standalone are
// omitted from the declaration when empty.
func NewDecl(version, encoding, standalone string) (*Node, error) {
	if version != "1.0" && version != "1.1" {
		return nil, fmt.Errorf("%w: version %#v is not supported", ErrInvalidArgument, version)
	}

	if standalone != "" && standalone != "yes" && standalone != "no" {
		return nil, fmt.Errorf("%w: standalone must be \"yes\" or \"no\"", ErrInvalidArgument)
	}

	node := &Node{Kind: DeclKind, attr: []Attr{{Name: "version", Value: version}}}
	if encoding != "" {
		node.attr = append(node.attr, Attr{Name: "encoding", Value: encoding})
	}

	if standalone != "" {
		node.attr = append(node.attr, Attr{Name: "standalone", Value: standalone})
	}

	return node, nil
}

// Parent returns the node this node is attached to, or nil for a detached
// node or a tree root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Up is the parent query as an explicit navigation step.
func (n *Node) Up() *Node {
	return n.parent
}

// Children returns a copy of the node's children in document order. The
// returned slice can be modified freely without affecting the node.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// InsertChild appends child to the node's children. A child attached to
// another node is detached from it first. If child is already a direct
// child of this node the call does nothing and returns (nil, nil).
func (n *Node) InsertChild(child *Node) (*Node, error) {
	return n.insert(len(n.children), child, false)
}

// InsertChildAt inserts child at the given position, shifting subsequent
// children to higher positions. The index may equal len(Children()), which
// means append. Otherwise same contract as InsertChild.
func (n *Node) InsertChildAt(index int, child *Node) (*Node, error) {
	return n.insert(index, child, true)
}

func (n *Node) insert(index int, child *Node, bounded bool) (*Node, error) {
	if child == nil {
		return nil, fmt.Errorf("%w: child must not be nil", ErrInvalidArgument)
	}

	// inserting a direct child again is a no-op, whatever the index
	if child.parent == n {
		return nil, nil
	}

	if bounded && (index < 0 || index > len(n.children)) {
		return nil, fmt.Errorf("%w: index %d is out of range [0, %d]", ErrInvalidArgument, index, len(n.children))
	}

	for p := n; p != nil; p = p.parent {
		if p == child {
			return nil, fmt.Errorf("%w: node can not be inserted into its own subtree", ErrInvalidArgument)
		}
	}

	child.Remove()

	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n

	return child, nil
}

// Remove detaches the node from its parent and returns the former parent,
// or nil if the node was not attached to begin with.
func (n *Node) Remove() *Node {
	parent := n.parent
	if parent == nil {
		return nil
	}

	for i, c := range parent.children {
		if c == n {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}

	n.parent = nil
	return parent
}

// RemoveChild detaches child from the node, returning false if child is not
// a direct child of the node.
func (n *Node) RemoveChild(child *Node) (bool, error) {
	if child == nil {
		return false, fmt.Errorf("%w: child must not be nil", ErrInvalidArgument)
	}

	if child.parent != n {
		return false, nil
	}

	child.Remove()
	return true, nil
}

// RemoveChildAt detaches and returns the child at the given position,
// shifting subsequent children to lower positions.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("%w: index %d is out of range [0, %d]", ErrInvalidArgument, index, len(n.children)-1)
	}

	child := n.children[index]
	n.children = append(n.children[:index], n.children[index+1:]...)
	child.parent = nil

	return child, nil
}

// Next returns the sibling immediately after this node, or nil if the node
// is detached or is the last child of its parent.
func (n *Node) Next() *Node {
	if n.parent == nil {
		return nil
	}

	siblings := n.parent.children
	for i, c := range siblings {
		if c == n && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}

	return nil
}

// Prev returns the sibling immediately before this node, or nil if the node
// is detached or is the first child of its parent.
func (n *Node) Prev() *Node {
	if n.parent == nil {
		return nil
	}

	siblings := n.parent.children
	for i, c := range siblings {
		if c == n && i > 0 {
			return siblings[i-1]
		}
	}

	return nil
}

// Top returns the root of the tree containing this node, or the node itself
// when it has no parent.
func (n *Node) Top() *Node {
	top := n
	for top.parent != nil {
		top = top.parent
	}

	return top
}
