package javatype

import (
	"fmt"
	"strings"
)

// Parse reads a type written in Java syntax, such as `Map<String, List<T>>[]`
// or `? extends Number`. Varargs (`String...`) are read as one array dimension.
func Parse(typeStr string) (TypeExpr, error) {
	s := strings.TrimSpace(typeStr)
	if s == "" {
		return TypeExpr{}, fmt.Errorf("empty type")
	}

	if strings.HasPrefix(s, "?") {
		rest := strings.TrimSpace(s[1:])
		switch {
		case rest == "":
			return AnyWildcard(), nil
		case strings.HasPrefix(rest, "extends "):
			bound, err := Parse(rest[len("extends "):])
			if err != nil {
				return TypeExpr{}, fmt.Errorf("wildcard bound of %q: %w", typeStr, err)
			}
			return Extends(bound), nil
		case strings.HasPrefix(rest, "super "):
			bound, err := Parse(rest[len("super "):])
			if err != nil {
				return TypeExpr{}, fmt.Errorf("wildcard bound of %q: %w", typeStr, err)
			}
			return Super(bound), nil
		}
		return TypeExpr{}, fmt.Errorf("malformed wildcard %q", typeStr)
	}

	var dims int
	for {
		if strings.HasSuffix(s, "[]") {
			s = strings.TrimSpace(s[:len(s)-2])
		} else if strings.HasSuffix(s, "...") {
			s = strings.TrimSpace(s[:len(s)-3])
		} else {
			break
		}
		dims++
	}

	start := strings.IndexByte(s, '<')
	if start == -1 {
		if !validName(s) {
			return TypeExpr{}, fmt.Errorf("malformed type name %q", typeStr)
		}
		return TypeExpr{Name: s, Dims: dims}, nil
	}

	if !strings.HasSuffix(s, ">") {
		return TypeExpr{}, fmt.Errorf("unbalanced angle brackets in %q", typeStr)
	}

	name := strings.TrimSpace(s[:start])
	if !validName(name) {
		return TypeExpr{}, fmt.Errorf("malformed type name %q", typeStr)
	}

	parts, err := splitTopLevel(s[start+1 : len(s)-1])
	if err != nil {
		return TypeExpr{}, fmt.Errorf("type arguments of %q: %w", typeStr, err)
	}
	if len(parts) == 0 {
		return TypeExpr{}, fmt.Errorf("empty type argument list in %q", typeStr)
	}

	out := TypeExpr{Name: name, Dims: dims, Args: make([]TypeExpr, len(parts))}
	for i, part := range parts {
		arg, err := Parse(part)
		if err != nil {
			return TypeExpr{}, err
		}
		out.Args[i] = arg
	}
	return out, nil
}

// MustParse is like Parse, but panics if the type cannot be read
func MustParse(typeStr string) TypeExpr {
	t, err := Parse(typeStr)
	if err != nil {
		panic(err)
	}
	return t
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\n<>,?[]")
}

// splitTopLevel splits a type argument list at the commas that are not nested
// inside another pair of angle brackets
// Ex: "String, List<Integer>" -> ["String", "List<Integer>"]
func splitTopLevel(argsStr string) ([]string, error) {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range argsStr {
		switch ch {
		case '<':
			depth++
			current.WriteRune(ch)
		case '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("too many '>'")
			}
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				trimmed := strings.TrimSpace(current.String())
				if trimmed == "" {
					return nil, fmt.Errorf("empty type argument")
				}
				result = append(result, trimmed)
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unclosed '<'")
	}

	if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
		result = append(result, trimmed)
	} else if len(result) > 0 {
		return nil, fmt.Errorf("trailing comma")
	}

	return result, nil
}
