package symbol

// FileScope represents the scope in a single source file, that can contain one
// or more declarations
type FileScope struct {
	// Path of the source file, used in diagnostics
	Path string
	// The package that the file is located in
	Package string
	// Every single-type import in the file
	// Formatted as map[ImportedType: full.package.path]
	Imports map[string]string
	// Packages (or types) imported with a trailing `.*`
	WildcardImports []string
	// Top-level declarations in this file, in source order
	TopLevelClasses []*ClassScope
}

// FindClassScope searches for a declaration by its (possibly dotted) name
// within the file
func (fs *FileScope) FindClassScope(name string) *ClassScope {
	for _, top := range fs.TopLevelClasses {
		if scope := top.FindClassScope(name); scope != nil {
			return scope
		}
	}
	return nil
}

// AllClasses returns every declaration in the file, nested ones included, in
// source order
func (fs *FileScope) AllClasses() []*ClassScope {
	var all []*ClassScope
	for _, top := range fs.TopLevelClasses {
		top.Walk(func(cs *ClassScope) {
			all = append(all, cs)
		})
	}
	return all
}

// ImportFor returns the qualified name a simple type name was imported as
func (fs *FileScope) ImportFor(name string) (string, bool) {
	pkg, ok := fs.Imports[name]
	if !ok {
		return "", false
	}
	return pkg + "." + name, true
}

// Qualify prefixes a name declared in this file with the file's package
func (fs *FileScope) Qualify(name string) string {
	if fs.Package == "" {
		return name
	}
	return fs.Package + "." + name
}
