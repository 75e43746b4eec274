package symbol

import (
	"github.com/NickyBoy89/viewstategen/javatype"
	"golang.org/x/exp/slices"
)

// TypeParam represents a declared type parameter (interface or method),
// including any upper bounds (e.g. `T extends Number & Comparable<T>`).
type TypeParam struct {
	Name   string
	Bounds []javatype.TypeExpr
}

func TypeParamNames(params []TypeParam) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

// MergeTypeParams returns the type parameters in scope inside a generic
// method of a generic interface. A method's type parameter shadows an
// interface type parameter with the same name.
func MergeTypeParams(outer, inner []TypeParam) []TypeParam {
	merged := slices.DeleteFunc(slices.Clone(outer), func(p TypeParam) bool {
		return slices.ContainsFunc(inner, func(q TypeParam) bool {
			return q.Name == p.Name
		})
	})
	return append(merged, inner...)
}
