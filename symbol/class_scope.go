package symbol

import "github.com/NickyBoy89/viewstategen/javatype"

// ClassScope represents a single declared interface or class, and the
// declarations in it that matter for view-state generation
type ClassScope struct {
	// Name is the declared name, prefixed by any enclosing types
	// Ex: MainActivity.View
	Name string
	// QualifiedName is the name prefixed by the file's package
	QualifiedName string
	IsInterface   bool
	// Annotations written on the declaration
	Annotations []Annotation
	// Type parameters for generic declarations (e.g. T, U for interface Foo<T, U>)
	TypeParameters []TypeParam
	// Superclass is set for classes that extend another class
	Superclass *javatype.TypeExpr
	// Interfaces are the `extends` list of an interface, or the `implements`
	// list of a class, with the type arguments supplied to each
	Interfaces []javatype.TypeExpr
	// Parents holds the linked declaration of each entry in Interfaces, or nil
	// when the declaration is not part of the parsed sources
	Parents []*ClassScope
	// Methods declared directly in the body, in source order
	Methods []*Definition
	// Every type that is nested within this one
	Subclasses []*ClassScope
	// File is the file the declaration was parsed from
	File *FileScope
	// One-based source line of the declaration
	Line int
}

// IsTypeParameter checks if a given name is a type parameter of this declaration
func (cs *ClassScope) IsTypeParameter(name string) bool {
	for _, tp := range cs.TypeParameters {
		if tp.Name == name {
			return true
		}
	}
	return false
}

// TypeParameterNames returns the names of the declared type parameters
func (cs *ClassScope) TypeParameterNames() []string {
	return TypeParamNames(cs.TypeParameters)
}

// FindMethod searches through the immediate declaration's methods
func (cs *ClassScope) FindMethod() Finder {
	cm := classMethodFinder(*cs)
	return &cm
}

type classMethodFinder ClassScope

func (cm *classMethodFinder) By(criteria func(d *Definition) bool) []*Definition {
	results := []*Definition{}
	for _, method := range cm.Methods {
		if criteria(method) {
			results = append(results, method)
		}
	}
	return results
}

func (cm *classMethodFinder) ByName(name string) []*Definition {
	return cm.By(func(d *Definition) bool {
		return d.Name == name
	})
}

// AbstractMethods returns the methods an implementation has to provide, in
// source order
func (cs *ClassScope) AbstractMethods() []*Definition {
	return cs.FindMethod().By(func(d *Definition) bool {
		return d.IsAbstract()
	})
}

// FindClassScope searches this declaration and its nested types for a
// declaration with the given (possibly dotted) name
func (cs *ClassScope) FindClassScope(name string) *ClassScope {
	if cs.Name == name {
		return cs
	}
	for _, subclass := range cs.Subclasses {
		if found := subclass.FindClassScope(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for this declaration and every nested declaration, parents first
func (cs *ClassScope) Walk(fn func(*ClassScope)) {
	fn(cs)
	for _, subclass := range cs.Subclasses {
		subclass.Walk(fn)
	}
}
