// Package cstfixture builds cst.Node trees by hand, the way a test (or, in
// the absence of any real JS parser in this repository, the debug CLI's
// bundled demo snippet) constructs a concrete syntax tree without a lexer.
// It is the one concrete implementation of cst.Node in this module; the
// real boundary is satisfied by whatever parser a caller plugs in.
package cstfixture

import (
	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/facts"
)

// Node is a hand-built cst.Node: a kind, optional leaf text, a span and a
// set of children, some of which may additionally be reachable by name
// through Field.
type Node struct {
	kind     cst.Kind
	text     string
	span     facts.Span
	children []cst.Node
	fields   map[string]cst.Node
}

// New returns a leaf or branch node of kind with the given span and
// children (in source order). Use SetField to additionally expose named
// children.
func New(kind cst.Kind, text string, span facts.Span, children ...cst.Node) *Node {
	return &Node{kind: kind, text: text, span: span, children: children}
}

// SetField records child as the named field of n and returns n, so field
// assignments can chain off of New.
func (n *Node) SetField(name string, child cst.Node) *Node {
	if n.fields == nil {
		n.fields = make(map[string]cst.Node)
	}
	n.fields[name] = child
	return n
}

func (n *Node) Kind() cst.Kind       { return n.kind }
func (n *Node) Span() facts.Span     { return n.span }
func (n *Node) Text() string         { return n.text }
func (n *Node) Children() []cst.Node { return n.children }

func (n *Node) Field(name string) cst.Node {
	child, ok := n.fields[name]
	if !ok {
		return nil
	}
	return child
}
