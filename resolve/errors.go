package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NickyBoy89/viewstategen/javatype"
)

// Sentinels for the ways resolving a root interface can fail.
// Every *Error unwraps to exactly one of these.
var (
	ErrUnsupportedGenericInterface = errors.New("code generation can't be applied to a generic interface")
	ErrGenericArityMismatch        = errors.New("unsupported generic interface shape")
	ErrConflictingStrategy         = errors.New("conflicting strategies")
	ErrConflictingTag              = errors.New("conflicting tags")
	ErrCyclicInheritance           = errors.New("cyclic interface inheritance")
)

// Error describes why a single root interface could not be resolved.
// Errors never affect the resolution of other roots.
type Error struct {
	// Kind is one of the Err* sentinels
	Kind error
	// Root is the interface that was being resolved
	Root string
	// Interfaces involved in the failure. For conflicts these are the
	// interface that declared the method first, then the second one.
	Interfaces []string
	// Method and ArgumentTypes are set for conflicts
	Method        string
	ArgumentTypes []javatype.TypeExpr
	// Detail holds extra context, such as the expected number of type arguments
	Detail string
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Root)
	sb.WriteString(": ")
	switch e.Kind {
	case ErrConflictingStrategy, ErrConflictingTag:
		field := "strategies"
		if e.Kind == ErrConflictingTag {
			field = "tags"
		}
		fmt.Fprintf(&sb, "both %s and %s have method %s(%s) with different %s. Override this method in %s or make the %s equal",
			e.Interfaces[0], e.Interfaces[1], e.Method, javatype.Join(e.ArgumentTypes), field, e.Root, field)
	case ErrGenericArityMismatch:
		fmt.Fprintf(&sb, "code generation for interface %s failed (%s). Simplify your generics", e.Interfaces[0], e.Detail)
	case ErrCyclicInheritance:
		fmt.Fprintf(&sb, "%s: %s", e.Kind, strings.Join(e.Interfaces, " -> "))
	default:
		sb.WriteString(e.Kind.Error())
		if e.Detail != "" {
			sb.WriteString(" ")
			sb.WriteString(e.Detail)
		}
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}
