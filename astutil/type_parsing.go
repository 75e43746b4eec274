package astutil

import (
	"fmt"
	"strings"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/nodeutil"
	sitter "github.com/smacker/go-tree-sitter"
)

// IsTypeNode reports whether a node is one of the grammar's type nodes
func IsTypeNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "integral_type", "floating_point_type", "void_type", "boolean_type",
		"generic_type", "array_type", "type_identifier", "scoped_type_identifier",
		"annotated_type":
		return true
	default:
		return false
	}
}

// ParseType converts a Java type node into a type expression.
// Type annotations (`@NonNull String`) are dropped.
func ParseType(node *sitter.Node, source []byte) (javatype.TypeExpr, error) {
	if node == nil {
		return javatype.TypeExpr{}, fmt.Errorf("missing type node")
	}

	switch node.Type() {
	case "integral_type", "floating_point_type", "boolean_type", "void_type", "type_identifier":
		return javatype.Named(node.Content(source)), nil
	case "scoped_type_identifier":
		// This contains a reference to the type of a nested class or a qualified name
		// Ex: java.util.List, Map.Entry
		return javatype.Named(scopedName(node, source)), nil
	case "generic_type":
		// A generic type is any type that is of the form GenericType<T>
		base := node.NamedChild(0)
		if base == nil {
			return javatype.TypeExpr{}, fmt.Errorf("generic type without a name: %s", node.Content(source))
		}
		name := base.Content(source)
		if base.Type() == "scoped_type_identifier" {
			name = scopedName(base, source)
		}

		args, err := ExtractTypeArguments(node, source)
		if err != nil {
			return javatype.TypeExpr{}, err
		}
		return javatype.Named(name, args...), nil
	case "array_type":
		elem, err := ParseType(node.ChildByFieldName("element"), source)
		if err != nil {
			return javatype.TypeExpr{}, err
		}
		return javatype.ArrayOf(elem, CountDimensions(node.ChildByFieldName("dimensions"), source)), nil
	case "annotated_type":
		children := nodeutil.NamedChildrenOf(node)
		for i := len(children) - 1; i >= 0; i-- {
			if IsTypeNode(children[i]) {
				return ParseType(children[i], source)
			}
		}
		return javatype.TypeExpr{}, fmt.Errorf("annotated type without a type: %s", node.Content(source))
	case "wildcard":
		return parseWildcard(node, source)
	}

	return javatype.TypeExpr{}, fmt.Errorf("unknown type to convert: %s (%s)", node.Type(), node.Content(source))
}

func parseWildcard(node *sitter.Node, source []byte) (javatype.TypeExpr, error) {
	kind := javatype.Unbounded
	var boundNode *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch {
		case child.Type() == "extends":
			kind = javatype.ExtendsBound
		case child.Type() == "super":
			kind = javatype.SuperBound
		case child.IsNamed() && IsTypeNode(child):
			boundNode = child
		}
	}

	if boundNode == nil {
		return javatype.AnyWildcard(), nil
	}

	bound, err := ParseType(boundNode, source)
	if err != nil {
		return javatype.TypeExpr{}, err
	}
	if kind == javatype.SuperBound {
		return javatype.Super(bound), nil
	}
	return javatype.Extends(bound), nil
}

// ExtractTypeArguments parses the type arguments of a generic_type node.
// Returns nil if the node is not a generic type or has no type arguments.
func ExtractTypeArguments(node *sitter.Node, source []byte) ([]javatype.TypeExpr, error) {
	if node == nil || node.Type() != "generic_type" {
		return nil, nil
	}

	argsNode := nodeutil.FirstChildOfType(node, "type_arguments")
	if argsNode == nil {
		return nil, nil
	}

	var typeArgs []javatype.TypeExpr
	for _, argNode := range nodeutil.NamedChildrenOf(argsNode) {
		if argNode.Type() == "comment" {
			continue
		}
		arg, err := ParseType(argNode, source)
		if err != nil {
			return nil, err
		}
		typeArgs = append(typeArgs, arg)
	}
	return typeArgs, nil
}

// CountDimensions counts the `[]` pairs in a dimensions node
func CountDimensions(node *sitter.Node, source []byte) int {
	if node == nil {
		return 0
	}
	return strings.Count(node.Content(source), "[")
}

// scopedName joins the identifiers of a scoped type, skipping any annotations
func scopedName(node *sitter.Node, source []byte) string {
	var parts []string
	for _, child := range nodeutil.NamedChildrenOf(node) {
		switch child.Type() {
		case "type_identifier":
			parts = append(parts, child.Content(source))
		case "scoped_type_identifier":
			parts = append(parts, scopedName(child, source))
		case "generic_type":
			// Outer<T>.Inner drops the outer type arguments
			parts = append(parts, child.NamedChild(0).Content(source))
		}
	}
	return strings.Join(parts, ".")
}
