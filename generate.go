package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/resolve"
	"golang.org/x/exp/slices"
)

// runtimeImports are needed by every generated view state
var runtimeImports = []string{
	"com.arellomobile.mvp.viewstate.MvpViewState",
	"com.arellomobile.mvp.viewstate.ViewCommand",
	"com.arellomobile.mvp.viewstate.ViewCommands",
	"com.arellomobile.mvp.viewstate.strategy.AddToEndSingleStrategy",
	"com.arellomobile.mvp.viewstate.strategy.AddToEndStrategy",
	"com.arellomobile.mvp.viewstate.strategy.StateStrategy",
}

// observableImports are added when a view has methods returning a stream
var observableImports = []string{
	"java.util.Map",
	"java.util.HashMap",
	"rx.Observable",
	"rx.Subscription",
	"rx.subjects.BehaviorSubject",
	"rx.functions.Action1",
	"rx.subscriptions.CompositeSubscription",
}

// GeneratedFile is a rendered view state
type GeneratedFile struct {
	// Path is relative to the output directory
	Path      string
	ClassName string
	Source    []byte
}

// viewState is the data the view state template renders
type viewState struct {
	Package     string
	ClassName   string
	ViewName    string
	Imports     []string
	Methods     []command
	Observables []command
}

// command is a resolved method, with the pieces of Java source the template
// needs precomputed
type command struct {
	*resolve.Method
	// Signature is everything after `public` in the override's declaration
	Signature string
	// Parameters is the declared parameter list
	Parameters    string
	ArgumentNames string
	// CarrierType is the carrier's class, or Void for methods with no arguments
	CarrierType string
	CarrierInit string
	// ParamsAccess reads every argument back from a carrier named params
	ParamsAccess string
	// WildcardArgs instantiates a generic carrier, e.g. <?, ?>
	WildcardArgs string
	Fields       []string
}

var viewStateTemplate = template.Must(template.New("viewState").Parse(`
{{- if .Package}}package {{.Package}};

{{end -}}
{{range .Imports}}import {{.}};
{{end}}
public class {{.ClassName}} extends MvpViewState<{{.ViewName}}> implements {{.ViewName}}
{
	private ViewCommands<{{.ViewName}}> mViewCommands = new ViewCommands<>();

	@Override
	public void restoreState({{.ViewName}} view)
	{
		if (mViewCommands.isEmpty())
		{
			return;
		}

		mViewCommands.reapply(view);
	}
{{range .Methods}}{{if .Observable}}
	protected BehaviorSubject<{{.ObservedType}}> {{.Name}}_Subject = BehaviorSubject.create();

	@Override
	public {{.Signature}}
	{
		{{.CarrierType}} {{.CarrierLocal}} = {{.CarrierInit}};
		mViewCommands.beforeApply(LocalViewCommand.{{.UniqueID}}, {{.CarrierLocal}});

		if (mViews != null && !mViews.isEmpty())
		{
			mViewCommands.afterApply(LocalViewCommand.{{.UniqueID}}, {{.CarrierLocal}});
		}

		return {{.Name}}_Subject.asObservable();
	}
{{else}}
	@Override
	public {{.Signature}}
	{
		{{.CarrierType}} {{.CarrierLocal}} = {{.CarrierInit}};
		mViewCommands.beforeApply(LocalViewCommand.{{.UniqueID}}, {{.CarrierLocal}});

		if (mViews == null || mViews.isEmpty())
		{
			return;
		}

		for ({{$.ViewName}} view : mViews)
		{
			view.{{.Name}}({{.ArgumentNames}});
		}

		mViewCommands.afterApply(LocalViewCommand.{{.UniqueID}}, {{.CarrierLocal}});
	}
{{end}}{{end}}
{{- if .Observables}}
	protected Map<{{.ViewName}}, Subscription> subscriptions = new HashMap<>();

	@Override
	public void attachView({{.ViewName}} view) {
		super.attachView(view);
		if (subscriptions.containsKey(view)) {
			return;
		}
		CompositeSubscription subscription = new CompositeSubscription();
{{- range .Observables}}
		subscription.add(view.{{.Name}}().subscribe(new Action1<{{.ObservedType}}>() {
			@Override
			public void call({{.ObservedType}} s) {
				{{.Name}}_Subject.onNext(s);
			}
		}));
{{- end}}
		subscriptions.put(view, subscription);
	}

	@Override
	public void detachView({{.ViewName}} view) {
		if (subscriptions.containsKey(view)) {
			subscriptions.get(view).unsubscribe();
			subscriptions.remove(view);
		}
		super.detachView(view);
	}
{{end}}
{{- if .Methods}}
	private enum LocalViewCommand implements ViewCommand<{{.ViewName}}>
	{
{{- range $i, $m := .Methods}}{{if $i}},{{end}}
		{{$m.UniqueID}}({{$m.Strategy}}.class, {{$m.Tag.Expr}})
				{
					@Override
					public void apply({{$.ViewName}} mvpView, Object paramsObject)
					{
{{- if $m.CarrierName}}
						final {{$m.CarrierName}}{{$m.WildcardArgs}} params = ({{$m.CarrierName}}) paramsObject;
{{- end}}
						mvpView.{{$m.Name}}({{$m.ParamsAccess}});
					}
				}
{{- end}};

		private Class<? extends StateStrategy> mStateStrategyType;
		private String mTag;

		LocalViewCommand(Class<? extends StateStrategy> stateStrategyType, String tag)
		{
			mStateStrategyType = stateStrategyType;
			mTag = tag;
		}

		@Override
		public Class<? extends StateStrategy> getStrategyType()
		{
			return mStateStrategyType;
		}

		@Override
		public String getTag()
		{
			return mTag;
		}
	}
{{range .Methods}}{{if .CarrierName}}
	private class {{.CarrierName}}{{.GenericClause}}
	{
{{- range .Fields}}
		{{.}};
{{- end}}

		{{.CarrierName}}({{.Parameters}})
		{
{{- range .Arguments}}
			this.{{.Name}} = {{.Name}};
{{- end}}
		}
	}
{{end}}{{end}}{{end -}}
}
`))

// GenerateViewState renders the view state class of a resolved view. The
// class is named after the view, with nested names joined by `$`, followed by
// suffix, and is placed in the view's package.
func GenerateViewState(view *resolve.View, suffix string) (GeneratedFile, error) {
	data := viewState{
		Package:   view.Package,
		ClassName: strings.ReplaceAll(view.Name, ".", "$") + suffix,
		ViewName:  view.Name,
		Imports:   append([]string{}, runtimeImports...),
	}

	var wildcards []string
	for _, method := range view.Methods {
		cmd := newCommand(method)
		data.Methods = append(data.Methods, cmd)
		if method.Observable {
			data.Observables = append(data.Observables, cmd)
		}
		for _, imported := range method.Imports {
			if !slices.Contains(wildcards, imported) {
				wildcards = append(wildcards, imported)
			}
		}
	}

	sort.Strings(wildcards)
	for _, imported := range wildcards {
		data.Imports = append(data.Imports, imported+".*")
	}
	if len(data.Observables) > 0 {
		data.Imports = append(data.Imports, observableImports...)
	}

	var buf bytes.Buffer
	if err := viewStateTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s: %w", data.ClassName, err)
	}

	return GeneratedFile{
		Path:      filepath.Join(filepath.FromSlash(strings.ReplaceAll(view.Package, ".", "/")), data.ClassName+".java"),
		ClassName: data.ClassName,
		Source:    buf.Bytes(),
	}, nil
}

func newCommand(method *resolve.Method) command {
	cmd := command{
		Method:        method,
		Parameters:    parameterList(method.Arguments),
		ArgumentNames: resolve.ArgumentNames(method.Arguments),
		CarrierType:   "Void",
		CarrierInit:   "null",
	}

	var signature strings.Builder
	if method.GenericClause != "" {
		signature.WriteString(method.GenericClause)
		signature.WriteByte(' ')
	}
	fmt.Fprintf(&signature, "%s %s(%s)", method.ReturnType, method.Name, cmd.Parameters)
	if len(method.Thrown) > 0 {
		signature.WriteString(" throws ")
		signature.WriteString(javatype.Join(method.Thrown))
	}
	cmd.Signature = signature.String()

	if method.CarrierName != "" {
		cmd.CarrierType = method.CarrierName
		cmd.CarrierInit = fmt.Sprintf("new %s(%s)", method.CarrierName, cmd.ArgumentNames)
	}

	access := make([]string, len(method.Arguments))
	for i, arg := range method.Arguments {
		access[i] = "params." + arg.Name
		cmd.Fields = append(cmd.Fields, arg.Type.String()+" "+arg.Name)
	}
	cmd.ParamsAccess = strings.Join(access, ", ")

	if method.GenericCount > 0 {
		cmd.WildcardArgs = "<" + strings.Repeat("?, ", method.GenericCount-1) + "?>"
	}

	return cmd
}

// parameterList renders arguments as a declared parameter list, with varargs
// written as `T... name`
func parameterList(arguments []resolve.Argument) string {
	params := make([]string, len(arguments))
	for i, arg := range arguments {
		if arg.Varargs && arg.Type.IsArray() {
			elem := arg.Type
			elem.Dims--
			params[i] = elem.String() + "... " + arg.Name
		} else {
			params[i] = arg.Type.String() + " " + arg.Name
		}
	}
	return strings.Join(params, ", ")
}
