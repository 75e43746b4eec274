package main

import (
	"strings"
	"testing"
)

func TestAbstractIntegration_OnlyAbstractMethodsBecomeCommands(t *testing.T) {
	src := `
package abs.integration;

public interface ShapeView {
    void showArea(double area);

    default void showDefault() {
        showArea(0);
    }

    static ShapeView empty() {
        return null;
    }
}
`
	out := renderViewStateFromJava(t, src, "ShapeView")
	flat := normalizeSpaces(out)

	if !strings.Contains(flat, "public void showArea(double area)") {
		t.Fatalf("Expected abstract method override, got:\n%s", out)
	}
	if strings.Contains(flat, "showDefault") || strings.Contains(flat, "empty()") {
		t.Fatalf("Expected default and static methods to be left out, got:\n%s", out)
	}
}

func TestAbstractIntegration_EmptyView(t *testing.T) {
	src := `
package abs.empty;

public interface EmptyView {}
`
	out := renderViewStateFromJava(t, src, "EmptyView")
	flat := normalizeSpaces(out)

	if strings.Contains(flat, "LocalViewCommand") {
		t.Fatalf("Expected no command enum for a view without methods, got:\n%s", out)
	}
	if !strings.HasSuffix(flat, "mViewCommands.reapply(view); } }") {
		t.Fatalf("Expected the class to end after restoreState, got:\n%s", out)
	}
}
