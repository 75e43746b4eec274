package main

import (
	"strings"
	"testing"
)

func TestEnumIntegration_LocalViewCommand(t *testing.T) {
	src := `
package enums.commands;

import com.arellomobile.mvp.viewstate.strategy.*;

@StateStrategyType(AddToEndSingleStrategy.class)
public interface ProgressView {
    void showProgress(int percent);

    @StateStrategyType(value = SkipStrategy.class, tag = "progress")
    void hideProgress();

    @StateStrategyType(value = SkipStrategy.class, tag = Tags.DONE)
    void done();
}
`
	out := renderViewStateFromJava(t, src, "ProgressView")
	flat := normalizeSpaces(out)

	for _, want := range []string{
		"import com.arellomobile.mvp.viewstate.strategy.*;",
		"private enum LocalViewCommand implements ViewCommand<ProgressView> {",
		`showProgress(AddToEndSingleStrategy.class, "showProgress")`,
		`hideProgress(SkipStrategy.class, "progress")`,
		"done(SkipStrategy.class, Tags.DONE)",
		"LocalViewCommand(Class<? extends StateStrategy> stateStrategyType, String tag)",
	} {
		if !strings.Contains(flat, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}

	// constants are separated by commas and the list is closed by a semicolon
	if !strings.Contains(flat, "} }, hideProgress(") || !strings.Contains(flat, "mvpView.done(); } };") {
		t.Errorf("Expected enum constants to be separated correctly, got:\n%s", out)
	}
}

func TestEnumIntegration_ParamsArgumentCollision(t *testing.T) {
	src := `
package enums.collision;

public interface FormView {
    void fill(String name, java.util.Map<String, String> params);
}
`
	flat := normalizeSpaces(renderViewStateFromJava(t, src, "FormView"))

	if !strings.Contains(flat, "FillParams params1 = new FillParams(name, params); mViewCommands.beforeApply(LocalViewCommand.fill, params1);") {
		t.Errorf("Expected the carrier local to be renamed, got:\n%s", flat)
	}
	if !strings.Contains(flat, "mvpView.fill(params.name, params.params);") {
		t.Errorf("Expected the command to read arguments from its carrier, got:\n%s", flat)
	}
}
