// Package nodeutil contains small helpers for walking tree-sitter nodes
package nodeutil

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// NamedChildrenOf returns the named children of a node, or nil for a nil node
func NamedChildrenOf(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// UnnamedChildrenOf returns the anonymous children of a node, such as keywords
// inside a `modifiers` node
func UnnamedChildrenOf(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var children []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			children = append(children, child)
		}
	}
	return children
}

// ChildrenOfType returns the named children of a node with the given type
func ChildrenOfType(node *sitter.Node, nodeType string) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range NamedChildrenOf(node) {
		if child.Type() == nodeType {
			out = append(out, child)
		}
	}
	return out
}

// FirstChildOfType returns the first named child with the given type, or nil
func FirstChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for _, child := range NamedChildrenOf(node) {
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// CheckType returns an error if the node is missing or is not of the expected type
func CheckType(node *sitter.Node, expected string) error {
	if node == nil {
		return fmt.Errorf("expected node of type %s, got nothing", expected)
	}
	if node.Type() != expected {
		return fmt.Errorf("expected node of type %s, got %s", expected, node.Type())
	}
	return nil
}

// Line returns the one-based line a node starts on
func Line(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.StartPoint().Row) + 1
}

// FirstError finds the first ERROR or missing node in a tree, or nil
func FirstError(node *sitter.Node) *sitter.Node {
	if node == nil || !node.HasError() {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := FirstError(node.Child(i)); found != nil {
			return found
		}
	}
	return node
}
