package parsing

import (
	"testing"
	"unicode/utf8"

	"github.com/NickyBoy89/viewstategen/symbol"
)

func mustParse(t *testing.T, name, src string) *symbol.FileScope {
	t.Helper()
	file := SourceFile{Name: name, Source: []byte(src)}
	symbols, err := file.Parse()
	if err != nil {
		t.Fatalf("failed to parse %s: %v", name, err)
	}
	return symbols
}

const baseViewSrc = `
package com.example.base;

public interface BaseView<T> {
    void setItems(java.util.List<T> items);
}
`

const mainViewSrc = `
package com.example.main;

import com.example.base.BaseView;
import com.example.model.Item;
import com.arellomobile.mvp.viewstate.strategy.SkipStrategy;
import com.arellomobile.mvp.viewstate.strategy.StateStrategyType;

public interface MainView extends BaseView<Item>, Local, MvpView {
    @StateStrategyType(SkipStrategy.class)
    <E extends Exception> void fail(E error, Item item, Nested nested) throws E;

    interface Nested {}
}
`

const localSrc = `
package com.example.main;

public interface Local {
    void local();
}
`

func TestIndex_LinkQualifiesNames(t *testing.T) {
	idx := NewIndex(
		mustParse(t, "BaseView.java", baseViewSrc),
		mustParse(t, "MainView.java", mainViewSrc),
		mustParse(t, "Local.java", localSrc),
	)
	idx.Link()

	main := idx.Lookup("com.example.main.MainView")
	if main == nil {
		t.Fatal("expected MainView to be indexed")
	}

	want := []string{"com.example.base.BaseView<com.example.model.Item>", "com.example.main.Local", "MvpView"}
	for i, parent := range main.Interfaces {
		if parent.String() != want[i] {
			t.Errorf("extends[%d]: expected %s, got %s", i, want[i], parent)
		}
	}

	if main.Parents[0] != idx.Lookup("com.example.base.BaseView") {
		t.Errorf("expected BaseView to be linked")
	}
	if main.Parents[1] != idx.Lookup("com.example.main.Local") {
		t.Errorf("expected same-package Local to be linked")
	}
	if main.Parents[2] != nil {
		t.Errorf("expected MvpView to stay unlinked, it is not part of the sources")
	}

	fail := main.FindMethod().ByName("fail")[0]
	params := fail.ParameterTypes()
	if params[0].String() != "E" {
		t.Errorf("expected method type parameter to stay unqualified, got %s", params[0])
	}
	if params[1].String() != "com.example.model.Item" {
		t.Errorf("expected imported type to be qualified, got %s", params[1])
	}
	if params[2].String() != "com.example.main.MainView.Nested" {
		t.Errorf("expected nested type to be qualified, got %s", params[2])
	}
	if fail.Throws[0].String() != "E" {
		t.Errorf("expected thrown type parameter to stay unqualified, got %s", fail.Throws[0])
	}
	if fail.TypeParameters[0].Bounds[0].String() != "Exception" {
		t.Errorf("expected java.lang types to be kept as written, got %s", fail.TypeParameters[0].Bounds[0])
	}

	annotation := fail.Annotations[0]
	if annotation.Name != "com.arellomobile.mvp.viewstate.strategy.StateStrategyType" {
		t.Errorf("expected annotation name to be qualified, got %s", annotation.Name)
	}
	if value, _ := annotation.Value("value"); value.Class.String() != "com.arellomobile.mvp.viewstate.strategy.SkipStrategy" {
		t.Errorf("expected class literal to be qualified, got %s", value.Class)
	}

	base := idx.Lookup("com.example.base.BaseView")
	if got := base.Methods[0].Parameters[0].Type.String(); got != "java.util.List<T>" {
		t.Errorf("expected interface type parameter to stay unqualified, got %s", got)
	}
}

func TestIndex_LinkIsIdempotent(t *testing.T) {
	idx := NewIndex(
		mustParse(t, "BaseView.java", baseViewSrc),
		mustParse(t, "MainView.java", mainViewSrc),
		mustParse(t, "Local.java", localSrc),
	)
	idx.Link()
	first := idx.Lookup("com.example.main.MainView").FindMethod().ByName("fail")[0].ParameterTypes()

	relinked := NewIndex(idx.Files()...)
	relinked.Link()
	second := relinked.Lookup("com.example.main.MainView").FindMethod().ByName("fail")[0].ParameterTypes()

	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("parameter %d changed after relinking: %s -> %s", i, first[i], second[i])
		}
	}
	if relinked.Lookup("com.example.main.MainView").Parents[0] != relinked.Lookup("com.example.base.BaseView") {
		t.Errorf("expected parents to be linked again")
	}
}

func TestIndex_Find(t *testing.T) {
	idx := NewIndex(
		mustParse(t, "MainView.java", mainViewSrc),
		mustParse(t, "Other.java", "package com.other;\npublic interface MainView {}\n"),
	)

	if got := idx.Find("com.other.MainView"); len(got) != 1 || got[0].QualifiedName != "com.other.MainView" {
		t.Errorf("expected exact lookup by qualified name, got %v", got)
	}

	got := idx.Find("MainView")
	if len(got) != 2 || got[0].QualifiedName != "com.example.main.MainView" || got[1].QualifiedName != "com.other.MainView" {
		t.Errorf("expected both MainView declarations sorted by qualified name, got %d", len(got))
	}

	if got := idx.Find("MainView.Nested"); len(got) != 1 {
		t.Errorf("expected lookup by nested name, got %d", len(got))
	}
	if got := idx.Find("Missing"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestSourceFile_SyntaxError(t *testing.T) {
	file := SourceFile{Name: "Broken.java", Source: []byte("package a;\npublic interface Broken { void x( }\n")}
	if err := file.ParseAST(); err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, err := file.ParseSymbols(); err == nil {
		t.Fatal("expected ParseSymbols to require a parsed tree")
	}
}

func TestIndex_LinkWildcardImports(t *testing.T) {
	idx := NewIndex(
		mustParse(t, "BaseView.java", "package com.base;\npublic interface BaseView { void showLoading(); }\n"),
		mustParse(t, "MainView.java", `
package com.app;

import com.base.*;
import java.util.*;

public interface MainView extends BaseView {
    void show(List<BaseView> views);
}
`),
	)
	idx.Link()

	main := idx.Lookup("com.app.MainView")
	if got := main.Interfaces[0].String(); got != "com.base.BaseView" {
		t.Errorf("expected wildcard-imported parent to be qualified, got %s", got)
	}
	if main.Parents[0] != idx.Lookup("com.base.BaseView") {
		t.Errorf("expected wildcard-imported parent to be linked")
	}

	got := main.Methods[0].Parameters[0].Type.String()
	if got != "List<com.base.BaseView>" {
		t.Errorf("expected only indexed types to be qualified through wildcard imports, got %s", got)
	}
}

func TestTruncate_KeepsWholeRunes(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("expected short text to be kept, got %q", got)
	}
	// "é" is two bytes, so a cut at byte 2 would split it
	got := truncate("aébc", 2)
	if got != "a..." {
		t.Errorf("expected the cut to move back to a rune boundary, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("expected valid UTF-8, got %q", got)
	}
}
