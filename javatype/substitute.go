package javatype

// Bindings maps type parameter names to the type expressions bound to them
// along one edge of an interface hierarchy.
//
// Bindings are treated as values: every operation that extends a set of
// bindings returns a new map.
type Bindings map[string]TypeExpr

// Clone returns an independent copy of the bindings
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for name, t := range b {
		out[name] = t
	}
	return out
}

// WithIdentity returns a copy of the bindings where each of the given names is
// bound to itself, shadowing any outer binding with the same name.
// This is used for method-level type parameters.
func (b Bindings) WithIdentity(names ...string) Bindings {
	out := b.Clone()
	for _, name := range names {
		out[name] = Named(name)
	}
	return out
}

// Compose zips an interface's declared type parameters with the type
// arguments a subtype supplied for them, substituting each argument through
// the subtype's own bindings first. The caller checks that the lengths match.
//
// Ex: with outer {U: String}, Compose([T], [List<U>], outer) -> {T: List<String>}
func Compose(params []string, args []TypeExpr, outer Bindings) Bindings {
	out := make(Bindings, len(params))
	for i, param := range params {
		if i >= len(args) {
			break
		}
		out[param] = Substitute(outer, args[i])
	}
	return out
}

// Substitute replaces every type parameter in t that has a binding.
//
// Names without a binding are assumed to be concrete types (or method-level
// parameters) and are kept. Arrays and primitives are passed through as-is.
// An `? extends` wildcard whose bound becomes Object collapses to `?`.
func Substitute(b Bindings, t TypeExpr) TypeExpr {
	return substitute(b, t, nil)
}

func substitute(b Bindings, t TypeExpr, chain map[string]struct{}) TypeExpr {
	switch {
	case t.Wildcard != NotWildcard:
		if t.Bound == nil {
			return t
		}
		bound := substitute(b, *t.Bound, chain)
		if t.Wildcard == ExtendsBound && bound.IsObject() {
			return AnyWildcard()
		}
		return TypeExpr{Wildcard: t.Wildcard, Bound: &bound}
	case t.Dims > 0, t.IsPrimitive():
		return t
	case len(t.Args) == 0:
		bound, ok := b[t.Name]
		if !ok {
			return t
		}
		if _, looping := chain[t.Name]; looping {
			return t
		}
		if bound.IsBareName() && bound.Name == t.Name {
			return bound
		}
		next := make(map[string]struct{}, len(chain)+1)
		for name := range chain {
			next[name] = struct{}{}
		}
		next[t.Name] = struct{}{}
		return substitute(b, bound, next)
	default:
		out := TypeExpr{Name: t.Name, Args: make([]TypeExpr, len(t.Args))}
		for i, arg := range t.Args {
			out.Args[i] = substitute(b, arg, chain)
		}
		return out
	}
}

// SubstituteAll substitutes each type of a list
func SubstituteAll(b Bindings, types []TypeExpr) []TypeExpr {
	if types == nil {
		return nil
	}
	out := make([]TypeExpr, len(types))
	for i, t := range types {
		out[i] = Substitute(b, t)
	}
	return out
}
