package symbol

import "github.com/NickyBoy89/viewstategen/javatype"

// ValueKind describes how an annotation member's value was written
type ValueKind int

const (
	// ExpressionValue is any value that is not one of the literal forms below,
	// such as a reference to a constant
	ExpressionValue ValueKind = iota
	// ClassValue is a class literal, e.g. `SkipStrategy.class`
	ClassValue
	// StringValue is a string literal
	StringValue
)

// AnnotationValue is the value of a single annotation member
type AnnotationValue struct {
	Kind ValueKind
	// Raw is the value as written in source
	Raw string
	// Class is the referenced type of a ClassValue
	Class javatype.TypeExpr
	// Text is the unquoted contents of a StringValue
	Text string
}

// Annotation is an annotation written on an interface or method.
// A single unnamed value, as in `@StateStrategyType(SkipStrategy.class)`, is
// stored under the "value" member.
type Annotation struct {
	Name   string
	Values map[string]AnnotationValue
	Line   int
}

// Value looks up a member of the annotation
func (a Annotation) Value(member string) (AnnotationValue, bool) {
	v, ok := a.Values[member]
	return v, ok
}

// FindAnnotation returns the first annotation that matches the given name,
// compared with javatype.SameName
func FindAnnotation(annotations []Annotation, name string) (Annotation, bool) {
	for _, a := range annotations {
		if javatype.SameName(a.Name, name) {
			return a, true
		}
	}
	return Annotation{}, false
}
