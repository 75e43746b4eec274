package resolve

import (
	"strings"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/symbol"
)

// BuildDescriptors builds a descriptor for every abstract method declared
// directly in iface. Types are substituted through bindings, and each
// method's strategy and tag are taken in order from its own annotation, the
// interface's annotation, the inherited policy and the defaults.
func (r *Resolver) BuildDescriptors(bindings javatype.Bindings, iface *symbol.ClassScope, inherited Policy) []*Method {
	interfacePolicy := r.ReadStrategy(iface.Annotations).Overlay(inherited)

	var imports []string
	path := ""
	if iface.File != nil {
		imports = iface.File.WildcardImports
		path = iface.File.Path
	}

	var methods []*Method
	for _, declaration := range iface.AbstractMethods() {
		methodBindings := bindings.WithIdentity(declaration.TypeParameterNames()...)

		policy := r.ReadStrategy(declaration.Annotations).Overlay(interfacePolicy)
		if policy.Strategy == "" {
			policy.Strategy = r.opts.DefaultStrategy
		}
		if policy.Tag == nil {
			tag := LiteralTag(declaration.Name)
			policy.Tag = &tag
		}

		method := &Method{
			Name:               declaration.Name,
			TypeParameters:     substituteTypeParams(methodBindings, declaration.TypeParameters),
			GenericCount:       len(declaration.TypeParameters),
			ReturnType:         javatype.Substitute(methodBindings, declaration.Type),
			Thrown:             javatype.SubstituteAll(methodBindings, declaration.Throws),
			Strategy:           policy.Strategy,
			Tag:                *policy.Tag,
			DeclaringInterface: iface.Name,
			File:               path,
			Line:               declaration.Line,
			Imports:            imports,
		}
		method.GenericClause = genericClause(method.TypeParameters)

		for _, param := range declaration.Parameters {
			method.Arguments = append(method.Arguments, Argument{
				Type:    javatype.Substitute(methodBindings, param.Type),
				Name:    param.Name,
				Varargs: param.Varargs,
			})
		}

		methods = append(methods, method)
	}
	return methods
}

func substituteTypeParams(bindings javatype.Bindings, params []symbol.TypeParam) []symbol.TypeParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]symbol.TypeParam, len(params))
	for i, param := range params {
		out[i] = symbol.TypeParam{Name: param.Name, Bounds: javatype.SubstituteAll(bindings, param.Bounds)}
	}
	return out
}

// genericClause renders a method's type parameters. A bound of Object is
// dropped, as is a bound that was substituted into an unbounded wildcard.
func genericClause(params []symbol.TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, param := range params {
		var bounds []string
		for _, bound := range param.Bounds {
			switch {
			case bound.IsObject():
			case bound.Wildcard == javatype.ExtendsBound:
				bounds = append(bounds, bound.Bound.String())
			case bound.Wildcard != javatype.NotWildcard:
			default:
				bounds = append(bounds, bound.String())
			}
		}
		if len(bounds) == 0 {
			parts[i] = param.Name
		} else {
			parts[i] = param.Name + " extends " + strings.Join(bounds, " & ")
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
