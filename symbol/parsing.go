package symbol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NickyBoy89/viewstategen/astutil"
	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/nodeutil"
	sitter "github.com/smacker/go-tree-sitter"
)

func extractTypeParameterBounds(param *sitter.Node, source []byte) ([]javatype.TypeExpr, error) {
	boundNode := nodeutil.FirstChildOfType(param, "type_bound")
	if boundNode == nil {
		return nil, nil
	}

	var bounds []javatype.TypeExpr
	for _, child := range nodeutil.NamedChildrenOf(boundNode) {
		if !astutil.IsTypeNode(child) {
			continue
		}
		bound, err := astutil.ParseType(child, source)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, bound)
	}
	return bounds, nil
}

func extractTypeParameters(node *sitter.Node, source []byte) ([]TypeParam, error) {
	if node == nil {
		return nil, nil
	}

	var params []TypeParam
	for _, param := range nodeutil.NamedChildrenOf(node) {
		if param.Type() != "type_parameter" {
			continue
		}
		nameNode := nodeutil.FirstChildOfType(param, "type_identifier")
		if nameNode == nil {
			nameNode = nodeutil.FirstChildOfType(param, "identifier")
		}
		if nameNode == nil {
			continue
		}
		bounds, err := extractTypeParameterBounds(param, source)
		if err != nil {
			return nil, fmt.Errorf("bounds of type parameter %s: %w", nameNode.Content(source), err)
		}
		params = append(params, TypeParam{
			Name:   nameNode.Content(source),
			Bounds: bounds,
		})
	}
	return params, nil
}

// ParseSymbols generates a symbol table for a single source file
func ParseSymbols(root *sitter.Node, source []byte) (*FileScope, error) {
	file := &FileScope{
		Imports: make(map[string]string),
	}

	for _, node := range nodeutil.NamedChildrenOf(root) {
		switch node.Type() {
		case "package_declaration":
			for _, child := range nodeutil.NamedChildrenOf(node) {
				if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
					file.Package = child.Content(source)
				}
			}
		case "import_declaration":
			parseImport(file, node, source)
		case "class_declaration", "interface_declaration":
			scope, err := parseClassScope(file, node, source, "")
			if err != nil {
				return nil, err
			}
			file.TopLevelClasses = append(file.TopLevelClasses, scope)
		}
	}

	return file, nil
}

func parseImport(file *FileScope, node *sitter.Node, source []byte) {
	var static, wildcard bool
	for _, child := range nodeutil.UnnamedChildrenOf(node) {
		if child.Type() == "static" {
			static = true
		}
	}
	if nodeutil.FirstChildOfType(node, "asterisk") != nil {
		wildcard = true
	}
	if static {
		// Static imports bring in members, never types we need to resolve
		return
	}

	nameNode := node.NamedChild(0)
	if nameNode == nil {
		return
	}

	if wildcard {
		file.WildcardImports = append(file.WildcardImports, nameNode.Content(source))
		return
	}

	if nameNode.Type() != "scoped_identifier" {
		return
	}
	importedItem := nameNode.ChildByFieldName("name").Content(source)
	importPath := nameNode.ChildByFieldName("scope").Content(source)
	file.Imports[importedItem] = importPath
}

func parseClassScope(file *FileScope, root *sitter.Node, source []byte, enclosing string) (*ClassScope, error) {
	nameNode := root.ChildByFieldName("name")
	if err := nodeutil.CheckType(nameNode, "identifier"); err != nil {
		return nil, fmt.Errorf("line %d: %w", nodeutil.Line(root), err)
	}

	name := nameNode.Content(source)
	if enclosing != "" {
		name = enclosing + "." + name
	}

	scope := &ClassScope{
		Name:          name,
		QualifiedName: file.Qualify(name),
		IsInterface:   root.Type() == "interface_declaration",
		File:          file,
		Line:          nodeutil.Line(root),
	}

	annotations, _, err := parseModifiers(nodeutil.FirstChildOfType(root, "modifiers"), source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	scope.Annotations = annotations

	scope.TypeParameters, err = extractTypeParameters(root.ChildByFieldName("type_parameters"), source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if scope.IsInterface {
		scope.Interfaces, err = parseTypeList(nodeutil.FirstChildOfType(root, "extends_interfaces"), source)
	} else {
		if superNode := root.ChildByFieldName("superclass"); superNode != nil {
			for _, child := range nodeutil.NamedChildrenOf(superNode) {
				if astutil.IsTypeNode(child) {
					superclass, superErr := astutil.ParseType(child, source)
					if superErr != nil {
						return nil, fmt.Errorf("%s: superclass: %w", name, superErr)
					}
					scope.Superclass = &superclass
					break
				}
			}
		}
		scope.Interfaces, err = parseTypeList(root.ChildByFieldName("interfaces"), source)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: supertypes: %w", name, err)
	}

	for _, node := range nodeutil.NamedChildrenOf(root.ChildByFieldName("body")) {
		switch node.Type() {
		case "method_declaration":
			// Only interface methods become commands, class bodies are scanned
			// for nested declarations
			if !scope.IsInterface {
				continue
			}
			method, err := parseMethod(node, source)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			scope.Methods = append(scope.Methods, method)
		case "class_declaration", "interface_declaration":
			other, err := parseClassScope(file, node, source, name)
			if err != nil {
				return nil, err
			}
			scope.Subclasses = append(scope.Subclasses, other)
		}
	}

	return scope, nil
}

// parseTypeList reads the types of an `extends_interfaces` or `super_interfaces`
// node, both of which wrap a `type_list`
func parseTypeList(node *sitter.Node, source []byte) ([]javatype.TypeExpr, error) {
	if node == nil {
		return nil, nil
	}
	list := nodeutil.FirstChildOfType(node, "type_list")
	if list == nil {
		list = node
	}

	var types []javatype.TypeExpr
	for _, child := range nodeutil.NamedChildrenOf(list) {
		if !astutil.IsTypeNode(child) {
			continue
		}
		parsed, err := astutil.ParseType(child, source)
		if err != nil {
			return nil, err
		}
		types = append(types, parsed)
	}
	return types, nil
}

type modifierSet map[string]bool

// parseModifiers reads the annotations and keywords of a `modifiers` node
func parseModifiers(node *sitter.Node, source []byte) ([]Annotation, modifierSet, error) {
	keywords := make(modifierSet)
	if node == nil {
		return nil, keywords, nil
	}

	for _, modifier := range nodeutil.UnnamedChildrenOf(node) {
		keywords[modifier.Type()] = true
	}

	var annotations []Annotation
	for _, child := range nodeutil.NamedChildrenOf(node) {
		switch child.Type() {
		case "marker_annotation", "annotation":
			annotation, err := parseAnnotation(child, source)
			if err != nil {
				return nil, nil, err
			}
			annotations = append(annotations, annotation)
		}
	}
	return annotations, keywords, nil
}

func parseAnnotation(node *sitter.Node, source []byte) (Annotation, error) {
	annotation := Annotation{
		Name:   strings.Join(strings.Fields(node.ChildByFieldName("name").Content(source)), ""),
		Values: make(map[string]AnnotationValue),
		Line:   nodeutil.Line(node),
	}

	for _, arg := range nodeutil.NamedChildrenOf(node.ChildByFieldName("arguments")) {
		switch arg.Type() {
		case "comment":
		case "element_value_pair":
			value, err := parseAnnotationValue(arg.ChildByFieldName("value"), source)
			if err != nil {
				return Annotation{}, fmt.Errorf("annotation @%s: %w", annotation.Name, err)
			}
			annotation.Values[arg.ChildByFieldName("key").Content(source)] = value
		default:
			value, err := parseAnnotationValue(arg, source)
			if err != nil {
				return Annotation{}, fmt.Errorf("annotation @%s: %w", annotation.Name, err)
			}
			annotation.Values["value"] = value
		}
	}

	return annotation, nil
}

func parseAnnotationValue(node *sitter.Node, source []byte) (AnnotationValue, error) {
	if node == nil {
		return AnnotationValue{}, fmt.Errorf("missing annotation value")
	}

	value := AnnotationValue{Raw: node.Content(source)}
	switch node.Type() {
	case "class_literal":
		typeNode := node.NamedChild(0)
		class, err := astutil.ParseType(typeNode, source)
		if err != nil {
			return AnnotationValue{}, err
		}
		value.Kind = ClassValue
		value.Class = class
	case "string_literal":
		value.Kind = StringValue
		text, err := strconv.Unquote(value.Raw)
		if err != nil {
			text = strings.Trim(value.Raw, `"`)
		}
		value.Text = text
	}
	return value, nil
}

func parseMethod(node *sitter.Node, source []byte) (*Definition, error) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("line %d: method without a name", nodeutil.Line(node))
	}
	name := nameNode.Content(source)

	annotations, keywords, err := parseModifiers(nodeutil.FirstChildOfType(node, "modifiers"), source)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}

	declaration := &Definition{
		Name:        name,
		Annotations: annotations,
		IsStatic:    keywords["static"],
		IsDefault:   keywords["default"],
		IsPrivate:   keywords["private"],
		HasBody:     node.ChildByFieldName("body") != nil,
		Line:        nodeutil.Line(node),
		Parameters:  []*Definition{},
	}

	declaration.TypeParameters, err = extractTypeParameters(node.ChildByFieldName("type_parameters"), source)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}

	declaration.Type, err = astutil.ParseType(node.ChildByFieldName("type"), source)
	if err != nil {
		return nil, fmt.Errorf("method %s: return type: %w", name, err)
	}
	// Legacy array syntax: int values()[]
	declaration.Type.Dims += astutil.CountDimensions(node.ChildByFieldName("dimensions"), source)

	// Parse the parameters

	for _, parameter := range nodeutil.NamedChildrenOf(node.ChildByFieldName("parameters")) {
		var param *Definition
		switch parameter.Type() {
		case "formal_parameter":
			param, err = parseFormalParameter(parameter, source)
		case "spread_parameter":
			param, err = parseSpreadParameter(parameter, source)
		default:
			// receiver parameters and comments
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		declaration.Parameters = append(declaration.Parameters, param)
	}

	if throws := nodeutil.FirstChildOfType(node, "throws"); throws != nil {
		declaration.Throws, err = parseTypeList(throws, source)
		if err != nil {
			return nil, fmt.Errorf("method %s: throws: %w", name, err)
		}
	}

	return declaration, nil
}

func parseFormalParameter(node *sitter.Node, source []byte) (*Definition, error) {
	paramType, err := astutil.ParseType(node.ChildByFieldName("type"), source)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", node.Content(source), err)
	}
	// Legacy array syntax: String args[]
	paramType.Dims += astutil.CountDimensions(node.ChildByFieldName("dimensions"), source)

	annotations, _, err := parseModifiers(nodeutil.FirstChildOfType(node, "modifiers"), source)
	if err != nil {
		return nil, err
	}

	return &Definition{
		Name:        node.ChildByFieldName("name").Content(source),
		Type:        paramType,
		Annotations: annotations,
		Line:        nodeutil.Line(node),
	}, nil
}

// parseSpreadParameter reads a varargs parameter, in the format:
// (type) ... (variable_declarator name: (name))
func parseSpreadParameter(node *sitter.Node, source []byte) (*Definition, error) {
	var typeNode, nameNode *sitter.Node
	for _, child := range nodeutil.NamedChildrenOf(node) {
		switch {
		case astutil.IsTypeNode(child) && typeNode == nil:
			typeNode = child
		case child.Type() == "variable_declarator":
			nameNode = child.ChildByFieldName("name")
		}
	}
	if typeNode == nil || nameNode == nil {
		return nil, fmt.Errorf("malformed varargs parameter %s", node.Content(source))
	}

	paramType, err := astutil.ParseType(typeNode, source)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", node.Content(source), err)
	}

	return &Definition{
		Name:    nameNode.Content(source),
		Type:    javatype.ArrayOf(paramType, 1),
		Varargs: true,
		Line:    nodeutil.Line(node),
	}, nil
}
