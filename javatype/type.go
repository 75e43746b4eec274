// Package javatype models Java type references as they appear in source, and
// the substitution of type parameters through an interface hierarchy.
package javatype

import (
	"strings"

	"golang.org/x/exp/slices"
)

// ObjectName is the qualified name of the universal supertype
const ObjectName = "java.lang.Object"

// WildcardKind distinguishes plain types from the three wildcard forms
type WildcardKind int

const (
	NotWildcard WildcardKind = iota
	// Unbounded is a bare `?`
	Unbounded
	// ExtendsBound is `? extends X`
	ExtendsBound
	// SuperBound is `? super X`
	SuperBound
)

var primitives = map[string]struct{}{
	"boolean": {}, "byte": {}, "short": {}, "int": {}, "long": {},
	"char": {}, "float": {}, "double": {}, "void": {},
}

// TypeExpr is an immutable reference to a Java type, such as
// `java.util.Map<String, List<? extends T>>[]`
//
// Two expressions are considered the same type when their rendered forms are
// equal, see Equal.
type TypeExpr struct {
	// Name is the (possibly qualified) name of the type, empty for wildcards
	Name string
	// Args are the generic type arguments, in order
	Args []TypeExpr
	// Wildcard is set when the expression is a wildcard type argument
	Wildcard WildcardKind
	// Bound is the bound of an ExtendsBound or SuperBound wildcard
	Bound *TypeExpr
	// Dims is the number of array dimensions
	Dims int
}

// Named builds a plain (possibly generic) type reference
func Named(name string, args ...TypeExpr) TypeExpr {
	return TypeExpr{Name: name, Args: args}
}

// ArrayOf wraps a type in additional array dimensions
func ArrayOf(elem TypeExpr, dims int) TypeExpr {
	elem.Dims += dims
	return elem
}

// AnyWildcard is the unbounded wildcard `?`
func AnyWildcard() TypeExpr {
	return TypeExpr{Wildcard: Unbounded}
}

// Extends builds `? extends bound`
func Extends(bound TypeExpr) TypeExpr {
	return TypeExpr{Wildcard: ExtendsBound, Bound: &bound}
}

// Super builds `? super bound`
func Super(bound TypeExpr) TypeExpr {
	return TypeExpr{Wildcard: SuperBound, Bound: &bound}
}

// IsZero reports whether the expression references no type at all
func (t TypeExpr) IsZero() bool {
	return t.Name == "" && t.Wildcard == NotWildcard
}

// IsPrimitive reports whether the type is a Java primitive or void (not an array of one)
func (t TypeExpr) IsPrimitive() bool {
	if t.Dims > 0 || t.Wildcard != NotWildcard {
		return false
	}
	_, ok := primitives[t.Name]
	return ok
}

// IsVoid reports whether the type is `void`
func (t TypeExpr) IsVoid() bool {
	return t.Name == "void" && t.Dims == 0
}

// IsArray reports whether the type has array dimensions
func (t TypeExpr) IsArray() bool {
	return t.Dims > 0
}

// IsObject reports whether the type is the universal supertype, written either
// qualified or as the bare `Object`
func (t TypeExpr) IsObject() bool {
	return t.Wildcard == NotWildcard && t.Dims == 0 && len(t.Args) == 0 &&
		(t.Name == ObjectName || t.Name == "Object")
}

// IsBareName reports whether the expression is a single name with no arguments,
// dimensions or wildcard, the only shape a type parameter reference can take
func (t TypeExpr) IsBareName() bool {
	return t.Wildcard == NotWildcard && t.Dims == 0 && len(t.Args) == 0 && t.Name != ""
}

// SimpleName returns the last segment of the type's name
// Ex: java.util.List -> List
func (t TypeExpr) SimpleName() string {
	return SimpleName(t.Name)
}

// Element returns the type with its array dimensions removed
func (t TypeExpr) Element() TypeExpr {
	t.Dims = 0
	return t
}

// Equal compares two type expressions by their rendered form
func (t TypeExpr) Equal(other TypeExpr) bool {
	return t.String() == other.String()
}

// MapNames rebuilds the expression with every type name passed through rename.
// Wildcard markers are kept, their bounds are renamed.
func (t TypeExpr) MapNames(rename func(name string) string) TypeExpr {
	out := TypeExpr{Wildcard: t.Wildcard, Dims: t.Dims}
	if t.Name != "" {
		out.Name = rename(t.Name)
	}
	if t.Bound != nil {
		bound := t.Bound.MapNames(rename)
		out.Bound = &bound
	}
	if len(t.Args) > 0 {
		out.Args = make([]TypeExpr, len(t.Args))
		for i, arg := range t.Args {
			out.Args[i] = arg.MapNames(rename)
		}
	}
	return out
}

// String renders the type the way it would be written in Java source
func (t TypeExpr) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t TypeExpr) write(sb *strings.Builder) {
	switch t.Wildcard {
	case Unbounded:
		sb.WriteString("?")
		return
	case ExtendsBound, SuperBound:
		sb.WriteString("? ")
		if t.Wildcard == ExtendsBound {
			sb.WriteString("extends ")
		} else {
			sb.WriteString("super ")
		}
		if t.Bound != nil {
			t.Bound.write(sb)
		}
		return
	}

	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg.write(sb)
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.Dims; i++ {
		sb.WriteString("[]")
	}
}

// Join renders a list of types separated by ", "
func Join(types []TypeExpr) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// EqualLists compares two type lists element by element
func EqualLists(a, b []TypeExpr) bool {
	return slices.EqualFunc(a, b, TypeExpr.Equal)
}

// SimpleName returns the last dotted segment of a name
func SimpleName(name string) string {
	if ind := strings.LastIndexByte(name, '.'); ind >= 0 {
		return name[ind+1:]
	}
	return name
}

// SameName compares two type names, where a name that is not qualified
// matches any qualified name with the same simple name
// Ex: Observable matches rx.Observable, but rx.Observable does not match io.Observable
func SameName(a, b string) bool {
	if a == b {
		return true
	}
	if strings.Contains(a, ".") && strings.Contains(b, ".") {
		return false
	}
	return SimpleName(a) == SimpleName(b)
}

// SameType compares two expressions node by node, matching type names with
// SameName. `List<String>` is the same type as `java.util.List<java.lang.String>`.
func SameType(a, b TypeExpr) bool {
	if a.Wildcard != b.Wildcard || a.Dims != b.Dims || (a.Bound == nil) != (b.Bound == nil) {
		return false
	}
	if a.Bound != nil && !SameType(*a.Bound, *b.Bound) {
		return false
	}
	if a.Name != b.Name && (a.Name == "" || b.Name == "" || !SameName(a.Name, b.Name)) {
		return false
	}
	return slices.EqualFunc(a.Args, b.Args, SameType)
}

// MarshalYAML renders the type as its Java source form
func (t TypeExpr) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
