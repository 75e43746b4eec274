package symbol

import "github.com/NickyBoy89/viewstategen/javatype"

// Definition represents a single method or method parameter declaration
type Definition struct {
	// The name the definition was declared with
	Name string
	// The declared type: the return type for methods, the parameter type for parameters
	Type javatype.TypeExpr
	// Type parameters declared on this definition (methods only)
	TypeParameters []TypeParam
	// If the object is a method, it has parameters
	Parameters []*Definition
	// Types listed in the method's throws clause
	Throws []javatype.TypeExpr
	// Annotations written on the declaration
	Annotations []Annotation

	IsStatic  bool
	IsDefault bool
	IsPrivate bool
	// Whether the method declares a body
	HasBody bool
	// Whether this parameter is a spread (varargs) parameter
	Varargs bool

	// One-based source line of the declaration
	Line int
}

// IsAbstract reports whether a method declared in an interface must be
// implemented by a class implementing it
func (d *Definition) IsAbstract() bool {
	return !d.IsStatic && !d.IsDefault && !d.IsPrivate && !d.HasBody
}

// ParameterByName returns a parameter's definition, given its name
func (d *Definition) ParameterByName(name string) *Definition {
	for _, param := range d.Parameters {
		if param.Name == name {
			return param
		}
	}
	return nil
}

// ParameterTypes returns the declared types of all the parameters
func (d *Definition) ParameterTypes() []javatype.TypeExpr {
	types := make([]javatype.TypeExpr, len(d.Parameters))
	for ind, param := range d.Parameters {
		types[ind] = param.Type
	}
	return types
}

func (d *Definition) TypeParameterNames() []string {
	if d == nil {
		return nil
	}
	return TypeParamNames(d.TypeParameters)
}
