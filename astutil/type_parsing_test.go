package astutil

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// parseJavaType parses a Java source file and returns its root node
func parseJavaType(t *testing.T, source string) *sitter.Node {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}
	return tree.RootNode()
}

// fieldType finds the type node of the first field declaration
func fieldType(t *testing.T, root *sitter.Node) *sitter.Node {
	field := findNode(root, "field_declaration")
	if field == nil {
		t.Fatal("Could not find field_declaration node")
	}
	return field.ChildByFieldName("type")
}

// findNode recursively searches for a node of a given type
func findNode(node *sitter.Node, typeName string) *sitter.Node {
	if node.Type() == typeName {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		found := findNode(node.Child(i), typeName)
		if found != nil {
			return found
		}
	}
	return nil
}

func TestParseType_FieldTypes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "primitive int",
			source: "class C { int field; }",
			want:   "int",
		},
		{
			name:   "floating point",
			source: "class C { double field; }",
			want:   "double",
		},
		{
			name:   "boolean",
			source: "class C { boolean field; }",
			want:   "boolean",
		},
		{
			name:   "type identifier is kept as written",
			source: "class C { String field; }",
			want:   "String",
		},
		{
			name:   "type parameter",
			source: "class C<T> { T field; }",
			want:   "T",
		},
		{
			name:   "scoped type identifier",
			source: "class C { java.util.Date field; }",
			want:   "java.util.Date",
		},
		{
			name:   "generic with one argument",
			source: "class C { List<String> field; }",
			want:   "List<String>",
		},
		{
			name:   "nested generics",
			source: "class C { Map<String, List<Integer>> field; }",
			want:   "Map<String, List<Integer>>",
		},
		{
			name:   "qualified generic",
			source: "class C { java.util.Map<String, Long> field; }",
			want:   "java.util.Map<String, Long>",
		},
		{
			name:   "extends wildcard",
			source: "class C { List<? extends Number> field; }",
			want:   "List<? extends Number>",
		},
		{
			name:   "super wildcard",
			source: "class C { Comparator<? super T> field; }",
			want:   "Comparator<? super T>",
		},
		{
			name:   "unbounded wildcard",
			source: "class C { Class<?> field; }",
			want:   "Class<?>",
		},
		{
			name:   "primitive array",
			source: "class C { int[] field; }",
			want:   "int[]",
		},
		{
			name:   "two dimensional generic array",
			source: "class C { List<String>[][] field; }",
			want:   "List<String>[][]",
		},
		{
			name:   "nested class reference",
			source: "class C { Map.Entry<String, Integer> field; }",
			want:   "Map.Entry<String, Integer>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseJavaType(t, tt.source)
			got, err := ParseType(fieldType(t, root), []byte(tt.source))
			if err != nil {
				t.Fatalf("ParseType returned error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got.String())
			}
		})
	}
}

func TestParseType_MethodReturnTypes(t *testing.T) {
	source := "interface V { void hide(); <T extends Number> T[] pick(T first); }"
	root := parseJavaType(t, source)

	var got []string
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		if n.Type() == "method_declaration" {
			parsed, err := ParseType(n.ChildByFieldName("type"), []byte(source))
			if err != nil {
				t.Fatalf("ParseType returned error: %v", err)
			}
			got = append(got, parsed.String())
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collect(n.NamedChild(i))
		}
	}
	collect(root)

	if len(got) != 2 || got[0] != "void" || got[1] != "T[]" {
		t.Fatalf("Expected [void T[]], got %v", got)
	}
}

func TestExtractTypeArguments(t *testing.T) {
	source := "class C { Map<String, List<Integer>> field; }"
	root := parseJavaType(t, source)

	args, err := ExtractTypeArguments(fieldType(t, root), []byte(source))
	if err != nil {
		t.Fatalf("ExtractTypeArguments returned error: %v", err)
	}
	if len(args) != 2 {
		t.Fatalf("Expected 2 type arguments, got %d", len(args))
	}
	if args[0].String() != "String" || args[1].String() != "List<Integer>" {
		t.Errorf("Unexpected type arguments: %v", args)
	}

	plain := "class C { String field; }"
	none, err := ExtractTypeArguments(fieldType(t, parseJavaType(t, plain)), []byte(plain))
	if err != nil || none != nil {
		t.Errorf("Expected no type arguments for a plain type, got %v (%v)", none, err)
	}
}

func TestParseType_NilNode(t *testing.T) {
	if _, err := ParseType(nil, nil); err == nil {
		t.Error("Expected an error for a missing type node")
	}
}
