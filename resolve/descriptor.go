package resolve

import (
	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/symbol"
	"golang.org/x/exp/slices"
)

// Argument is a single method argument, after substitution
type Argument struct {
	Type    javatype.TypeExpr `yaml:"type"`
	Name    string            `yaml:"name"`
	Varargs bool              `yaml:"varargs,omitempty"`
}

// Method describes one abstract method that becomes a replayable command
type Method struct {
	Name string `yaml:"name"`
	// TypeParameters are the method's own type parameters, with substituted bounds
	TypeParameters []symbol.TypeParam `yaml:"-"`
	// GenericCount is the number of method-level type parameters
	GenericCount int `yaml:"genericCount,omitempty"`
	// GenericClause is the rendered type parameter list, e.g. `<T extends Number>`
	GenericClause string              `yaml:"genericClause,omitempty"`
	ReturnType    javatype.TypeExpr   `yaml:"returnType"`
	Arguments     []Argument          `yaml:"arguments,omitempty"`
	Thrown        []javatype.TypeExpr `yaml:"thrown,omitempty"`

	// Strategy is the qualified name of the replay strategy
	Strategy string `yaml:"strategy"`
	Tag      Tag    `yaml:"tag"`

	// DeclaringInterface is the (nested) name of the interface the method was
	// declared in
	DeclaringInterface string `yaml:"declaringInterface"`
	File               string `yaml:"file"`
	Line               int    `yaml:"line"`
	// Imports are the wildcard imports of the declaring file, which the
	// method's types may depend on
	Imports []string `yaml:"-"`

	// Set by AssignUniqueIDs

	UniqueID string `yaml:"uniqueId"`
	// CarrierName names the record holding the arguments of one call, empty
	// when the method has no arguments
	CarrierName string `yaml:"carrier,omitempty"`
	// CarrierLocal is the local variable name the generated method stores the
	// carrier in. It differs from "params" when an argument is named so.
	CarrierLocal string `yaml:"carrierLocal"`
	// ArgumentCollision reports an argument named like the default carrier local
	ArgumentCollision bool `yaml:"argumentCollision,omitempty"`

	// Observable is set when the method returns the asynchronous stream type
	Observable bool `yaml:"observable,omitempty"`
}

// ArgumentTypes returns the type of each argument, in order
func (m *Method) ArgumentTypes() []javatype.TypeExpr {
	types := make([]javatype.TypeExpr, len(m.Arguments))
	for i, arg := range m.Arguments {
		types[i] = arg.Type
	}
	return types
}

// SameKey reports whether both descriptors denote the same abstract method:
// equal names, and argument types that denote the same types in order, however
// each file spelled them. Argument names are ignored.
func (m *Method) SameKey(other *Method) bool {
	return m.Name == other.Name && slices.EqualFunc(m.Arguments, other.Arguments, func(a, b Argument) bool {
		return javatype.SameType(a.Type, b.Type)
	})
}

// ObservedType is the element type of an observable method's stream, or the
// zero type when the method is not observable
func (m *Method) ObservedType() javatype.TypeExpr {
	if !m.Observable || len(m.ReturnType.Args) != 1 {
		return javatype.TypeExpr{}
	}
	return m.ReturnType.Args[0]
}

func indexOfKey(methods []*Method, target *Method) int {
	return slices.IndexFunc(methods, target.SameKey)
}
