// Package parsing turns Java source files into linked symbol tables
package parsing

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/NickyBoy89/viewstategen/nodeutil"
	"github.com/NickyBoy89/viewstategen/symbol"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// SourceFile represents a single Java source file and what was parsed from it
type SourceFile struct {
	// Name is the path of the file, used in diagnostics
	Name string
	// Source is the contents of the file
	Source []byte
	// Ast is the root of the file's syntax tree, set by ParseAST
	Ast *sitter.Node
	// Symbols is the file's symbol table, set by ParseSymbols
	Symbols *symbol.FileScope
}

// ReadSourceFile reads a file from disk without parsing it
func ReadSourceFile(path string) (SourceFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{Name: path, Source: source}, nil
}

// ParseAST parses the source of the file with the Java grammar.
// A file containing syntax errors is rejected with the position of the first one.
func (file *SourceFile) ParseAST() error {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, file.Source)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file.Name, err)
	}

	root := tree.RootNode()
	if bad := nodeutil.FirstError(root); bad != nil {
		point := bad.StartPoint()
		return fmt.Errorf("%s:%d:%d: syntax error near %q", file.Name, point.Row+1, point.Column+1, truncate(bad.Content(file.Source), 40))
	}

	file.Ast = root
	return nil
}

// ParseSymbols builds the symbol table of a file that has already been parsed
func (file *SourceFile) ParseSymbols() (*symbol.FileScope, error) {
	if file.Ast == nil {
		return nil, fmt.Errorf("%s: ParseAST must be called before ParseSymbols", file.Name)
	}
	symbols, err := symbol.ParseSymbols(file.Ast, file.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name, err)
	}
	symbols.Path = file.Name
	file.Symbols = symbols
	return symbols, nil
}

// Parse runs ParseAST and ParseSymbols
func (file *SourceFile) Parse() (*symbol.FileScope, error) {
	if err := file.ParseAST(); err != nil {
		return nil, err
	}
	return file.ParseSymbols()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
