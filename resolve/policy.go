package resolve

import (
	"strconv"

	"github.com/NickyBoy89/viewstategen/symbol"
)

// Tag is the grouping key of a command
type Tag struct {
	// Text is the tag as a plain string. For tags that reference a constant,
	// this is the reference as written.
	Text string
	// Expr is the tag as a Java expression, what the generated code passes
	// to the command. Two tags are the same when their expressions are.
	Expr string
}

// LiteralTag builds the tag for a plain string
func LiteralTag(text string) Tag {
	return Tag{Text: text, Expr: strconv.Quote(text)}
}

// Policy is the explicit replay configuration written on an interface or a
// method. Empty members were not set and fall back to inherited values.
type Policy struct {
	Strategy string
	Tag      *Tag
}

// Overlay returns p with every unset member taken from fallback
func (p Policy) Overlay(fallback Policy) Policy {
	if p.Strategy == "" {
		p.Strategy = fallback.Strategy
	}
	if p.Tag == nil {
		p.Tag = fallback.Tag
	}
	return p
}

// ReadStrategy looks for the strategy marker annotation and reads its `value`
// member as the strategy type and its `tag` member as the tag.
//
// Values are not validated: a strategy that is not a class literal is used as
// written.
func ReadStrategy(annotations []symbol.Annotation, marker string) Policy {
	annotation, ok := symbol.FindAnnotation(annotations, marker)
	if !ok {
		return Policy{}
	}

	var policy Policy
	if value, ok := annotation.Value("value"); ok {
		if value.Kind == symbol.ClassValue {
			policy.Strategy = value.Class.String()
		} else {
			policy.Strategy = value.Raw
		}
	}
	if value, ok := annotation.Value("tag"); ok {
		if value.Kind == symbol.StringValue {
			tag := Tag{Text: value.Text, Expr: value.Raw}
			policy.Tag = &tag
		} else {
			policy.Tag = &Tag{Text: value.Raw, Expr: value.Raw}
		}
	}
	return policy
}

// MarshalYAML writes the tag as its plain text
func (t Tag) MarshalYAML() (interface{}, error) {
	return t.Text, nil
}
