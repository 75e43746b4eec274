package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/resolve"
)

func testMethod(name, returnType string, args ...resolve.Argument) *resolve.Method {
	return &resolve.Method{
		Name:       name,
		ReturnType: javatype.MustParse(returnType),
		Arguments:  args,
		Strategy:   resolve.DefaultOptions.DefaultStrategy,
		Tag:        resolve.LiteralTag(name),
	}
}

func testView(methods ...*resolve.Method) *resolve.View {
	resolve.AssignUniqueIDs(methods)
	return &resolve.View{
		Name:          "MainView",
		QualifiedName: "com.example.MainView",
		Package:       "com.example",
		Methods:       methods,
	}
}

func TestGenerateViewState_Path(t *testing.T) {
	file, err := GenerateViewState(testView(), "$$State")
	if err != nil {
		t.Fatalf("GenerateViewState: %v", err)
	}

	if file.ClassName != "MainView$$State" {
		t.Errorf("Expected class name MainView$$State, got %s", file.ClassName)
	}
	if file.Path != filepath.Join("com", "example", "MainView$$State.java") {
		t.Errorf("Expected the file in its package directory, got %s", file.Path)
	}
}

func TestGenerateViewState_DefaultPackage(t *testing.T) {
	view := testView(testMethod("show", "void"))
	view.Package = ""

	file, err := GenerateViewState(view, "_State")
	if err != nil {
		t.Fatalf("GenerateViewState: %v", err)
	}

	if file.Path != "MainView_State.java" {
		t.Errorf("Expected the file at the root, got %s", file.Path)
	}
	if strings.Contains(string(file.Source), "package") {
		t.Errorf("Expected no package declaration, got:\n%s", file.Source)
	}
}

func TestGenerateViewState_Imports(t *testing.T) {
	first := testMethod("show", "void")
	first.Imports = []string{"com.example.model", "com.arellomobile.mvp.viewstate.strategy"}
	second := testMethod("hide", "void")
	second.Imports = []string{"com.example.model"}

	file, err := GenerateViewState(testView(first, second), "$$State")
	if err != nil {
		t.Fatalf("GenerateViewState: %v", err)
	}
	out := string(file.Source)

	for _, imported := range runtimeImports {
		if !strings.Contains(out, "import "+imported+";") {
			t.Errorf("Expected runtime import %s, got:\n%s", imported, out)
		}
	}
	if strings.Count(out, "import com.example.model.*;") != 1 {
		t.Errorf("Expected wildcard imports without duplicates, got:\n%s", out)
	}
	if strings.Index(out, "import com.arellomobile.mvp.viewstate.strategy.*;") > strings.Index(out, "import com.example.model.*;") {
		t.Errorf("Expected wildcard imports to be sorted, got:\n%s", out)
	}
	if strings.Contains(out, "import rx.") {
		t.Errorf("Expected no rx imports without observable methods, got:\n%s", out)
	}
}

func TestGenerateViewState_Observable(t *testing.T) {
	clicks := testMethod("clicks", "rx.Observable<String>")
	clicks.Observable = true

	file, err := GenerateViewState(testView(clicks, testMethod("show", "void")), "$$State")
	if err != nil {
		t.Fatalf("GenerateViewState: %v", err)
	}
	out := string(file.Source)
	flat := normalizeSpaces(out)

	for _, want := range []string{
		"import rx.subjects.BehaviorSubject;",
		"protected BehaviorSubject<String> clicks_Subject = BehaviorSubject.create();",
		"public rx.Observable<String> clicks()",
		"if (mViews != null && !mViews.isEmpty()) { mViewCommands.afterApply(LocalViewCommand.clicks, params); } return clicks_Subject.asObservable();",
		"protected Map<MainView, Subscription> subscriptions = new HashMap<>();",
		"subscription.add(view.clicks().subscribe(new Action1<String>() { @Override public void call(String s) { clicks_Subject.onNext(s); } }));",
		"public void detachView(MainView view) {",
	} {
		if !strings.Contains(flat, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(flat, "view.clicks();") {
		t.Errorf("Expected observable methods not to be forwarded, got:\n%s", out)
	}
}

func TestNewCommand_Signature(t *testing.T) {
	method := testMethod("show", "void",
		resolve.Argument{Type: javatype.MustParse("String"), Name: "title"},
		resolve.Argument{Type: javatype.MustParse("int[]"), Name: "counts", Varargs: true},
	)
	method.GenericClause = "<T>"
	method.GenericCount = 1
	method.Thrown = []javatype.TypeExpr{javatype.MustParse("java.io.IOException"), javatype.MustParse("T")}
	resolve.AssignUniqueIDs([]*resolve.Method{method})

	cmd := newCommand(method)

	if cmd.Signature != "<T> void show(String title, int... counts) throws java.io.IOException, T" {
		t.Errorf("Unexpected signature: %s", cmd.Signature)
	}
	if cmd.CarrierInit != "new ShowParams(title, counts)" {
		t.Errorf("Unexpected carrier init: %s", cmd.CarrierInit)
	}
	if cmd.ParamsAccess != "params.title, params.counts" {
		t.Errorf("Unexpected params access: %s", cmd.ParamsAccess)
	}
	if len(cmd.Fields) != 2 || cmd.Fields[1] != "int[] counts" {
		t.Errorf("Expected varargs fields to be stored as arrays, got %v", cmd.Fields)
	}
	if cmd.WildcardArgs != "<?>" {
		t.Errorf("Unexpected wildcard arguments: %s", cmd.WildcardArgs)
	}
}

func TestNewCommand_NoArguments(t *testing.T) {
	method := testMethod("hide", "void")
	resolve.AssignUniqueIDs([]*resolve.Method{method})

	cmd := newCommand(method)

	if cmd.CarrierType != "Void" || cmd.CarrierInit != "null" {
		t.Errorf("Expected a null Void carrier, got %s %s", cmd.CarrierType, cmd.CarrierInit)
	}
	if cmd.Signature != "void hide()" {
		t.Errorf("Unexpected signature: %s", cmd.Signature)
	}
}
