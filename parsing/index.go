package parsing

import (
	"sort"
	"strings"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/symbol"
	log "github.com/sirupsen/logrus"
)

// Index holds the symbol tables of every parsed file, and resolves type names
// across them
type Index struct {
	files  []*symbol.FileScope
	byName map[string]*symbol.ClassScope
}

// NewIndex creates an index over the given files
func NewIndex(files ...*symbol.FileScope) *Index {
	idx := &Index{byName: make(map[string]*symbol.ClassScope)}
	for _, file := range files {
		idx.Add(file)
	}
	return idx
}

// Add registers every declaration of a file under its qualified name
func (idx *Index) Add(file *symbol.FileScope) {
	idx.files = append(idx.files, file)
	for _, cs := range file.AllClasses() {
		if existing, ok := idx.byName[cs.QualifiedName]; ok {
			log.WithFields(log.Fields{
				"type":     cs.QualifiedName,
				"file":     file.Path,
				"previous": existing.File.Path,
			}).Warn("Type declared more than once, using the last declaration")
		}
		idx.byName[cs.QualifiedName] = cs
	}
}

// Files returns the indexed files, in the order they were added
func (idx *Index) Files() []*symbol.FileScope {
	return idx.files
}

// Lookup returns the declaration with the given qualified name, or nil
func (idx *Index) Lookup(qualifiedName string) *symbol.ClassScope {
	return idx.byName[qualifiedName]
}

// Find returns every declaration whose qualified name, nested name or simple
// name equals name, sorted by qualified name
func (idx *Index) Find(name string) []*symbol.ClassScope {
	if exact, ok := idx.byName[name]; ok {
		return []*symbol.ClassScope{exact}
	}

	var matches []*symbol.ClassScope
	for qualified, cs := range idx.byName {
		if cs.Name == name || javatype.SimpleName(qualified) == name {
			matches = append(matches, cs)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].QualifiedName < matches[j].QualifiedName
	})
	return matches
}

// Link qualifies every type name referenced by the indexed declarations and
// connects each interface to the declarations it extends.
//
// Linking is idempotent, so files kept in a cache can be linked again into a
// new index.
func (idx *Index) Link() {
	for _, file := range idx.files {
		for _, cs := range file.AllClasses() {
			idx.linkClass(file, cs)
		}
	}
}

func (idx *Index) linkClass(file *symbol.FileScope, cs *symbol.ClassScope) {
	scopeParams := toSet(cs.TypeParameterNames())
	qualify := func(params map[string]struct{}) func(string) string {
		return func(name string) string {
			return idx.qualifyName(file, cs, params, name)
		}
	}
	classQualify := qualify(scopeParams)

	qualifyTypeParams(cs.TypeParameters, classQualify)
	cs.Annotations = qualifyAnnotations(cs.Annotations, classQualify)

	if cs.Superclass != nil {
		superclass := cs.Superclass.MapNames(classQualify)
		cs.Superclass = &superclass
	}

	cs.Parents = make([]*symbol.ClassScope, len(cs.Interfaces))
	for i, parent := range cs.Interfaces {
		cs.Interfaces[i] = parent.MapNames(classQualify)
		cs.Parents[i] = idx.byName[cs.Interfaces[i].Name]
	}

	for _, method := range cs.Methods {
		methodParams := toSet(symbol.TypeParamNames(symbol.MergeTypeParams(cs.TypeParameters, method.TypeParameters)))
		methodQualify := qualify(methodParams)

		qualifyTypeParams(method.TypeParameters, methodQualify)
		method.Annotations = qualifyAnnotations(method.Annotations, classQualify)
		method.Type = method.Type.MapNames(methodQualify)
		for _, param := range method.Parameters {
			param.Type = param.Type.MapNames(methodQualify)
			param.Annotations = qualifyAnnotations(param.Annotations, classQualify)
		}
		for i, thrown := range method.Throws {
			method.Throws[i] = thrown.MapNames(methodQualify)
		}
	}
}

// qualifyName expands a type name as written in a file into its qualified
// form. In order: type parameters are kept, then types nested in the current
// or an enclosing declaration, single-type imports, types declared in the same
// package, and indexed types named by wildcard imports are expanded. Anything
// else is kept as written.
func (idx *Index) qualifyName(file *symbol.FileScope, cs *symbol.ClassScope, typeParams map[string]struct{}, name string) string {
	if _, ok := typeParams[name]; ok {
		return name
	}

	first, rest := name, ""
	if ind := strings.IndexByte(name, '.'); ind >= 0 {
		first, rest = name[:ind], name[ind:]
	}

	for enclosing := cs.Name; enclosing != ""; enclosing = parentName(enclosing) {
		if nested := file.FindClassScope(enclosing + "." + first); nested != nil {
			return nested.QualifiedName + rest
		}
	}
	if top := file.FindClassScope(first); top != nil {
		return top.QualifiedName + rest
	}

	if imported, ok := file.ImportFor(first); ok {
		return imported + rest
	}

	if file.Package != "" {
		if samePackage, ok := idx.byName[file.Qualify(first)]; ok {
			return samePackage.QualifiedName + rest
		}
	}

	for _, pkg := range file.WildcardImports {
		if onDemand, ok := idx.byName[pkg+"."+first]; ok {
			return onDemand.QualifiedName + rest
		}
	}

	return name
}

func qualifyTypeParams(params []symbol.TypeParam, qualify func(string) string) {
	for i := range params {
		for j, bound := range params[i].Bounds {
			params[i].Bounds[j] = bound.MapNames(qualify)
		}
	}
}

func qualifyAnnotations(annotations []symbol.Annotation, qualify func(string) string) []symbol.Annotation {
	for i, annotation := range annotations {
		annotations[i].Name = qualify(annotation.Name)
		for member, value := range annotation.Values {
			if value.Kind == symbol.ClassValue {
				value.Class = value.Class.MapNames(qualify)
				annotation.Values[member] = value
			}
		}
	}
	return annotations
}

func parentName(name string) string {
	if ind := strings.LastIndexByte(name, '.'); ind >= 0 {
		return name[:ind]
	}
	return ""
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
