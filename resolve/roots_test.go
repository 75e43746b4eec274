package resolve

import (
	"testing"

	"github.com/NickyBoy89/viewstategen/parsing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presentersSrc = `
@InjectViewState
class MainPresenter extends MvpPresenter<MainView> {}

@InjectViewState
class DetailPresenter extends MvpPresenter<DetailPresenter.View> {
    interface View extends MvpView {
        void showDetail(String id);
    }
}

@InjectViewState
class GenericPresenter<V extends MvpView> extends MvpPresenter<V> {}

class PlainPresenter extends MvpPresenter<OtherView> {}

@InjectViewState
class ExternalPresenter extends MvpPresenter<com.library.LibraryView> {}

interface MainView extends MvpView {
    void show();
}

interface OtherView extends MvpView {}

class NotAView {}
`

func selector(views ...string) RootSelector {
	return RootSelector{
		Views:               views,
		PresenterAnnotation: "InjectViewState",
		PresenterBase:       "MvpPresenter",
	}
}

func qualifiedNames(idx *parsing.Index, s RootSelector) ([]string, []error) {
	roots, errs := s.Select(idx)
	names := make([]string, len(roots))
	for i, root := range roots {
		names[i] = root.QualifiedName
	}
	return names, errs
}

func TestSelect_Presenters(t *testing.T) {
	idx := loadIndex(t, presentersSrc)

	names, errs := qualifiedNames(idx, selector())
	require.Empty(t, errs)
	assert.Equal(t, []string{"com.example.DetailPresenter.View", "com.example.MainView"}, names)
}

func TestSelect_NamedViews(t *testing.T) {
	idx := loadIndex(t, presentersSrc)

	names, errs := qualifiedNames(idx, selector("OtherView", "com.example.MainView", "MissingView", "NotAView"))
	assert.Equal(t, []string{
		"com.example.DetailPresenter.View",
		"com.example.MainView",
		"com.example.OtherView",
	}, names)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "MissingView")
	assert.Contains(t, errs[1].Error(), "not an interface")
}

func TestSelect_AmbiguousName(t *testing.T) {
	idx := loadIndex(t, presentersSrc)

	_, errs := qualifiedNames(idx, RootSelector{Views: []string{"View"}})
	assert.Empty(t, errs)

	idx = loadIndex(t, presentersSrc, "interface Holder { interface View {} }")
	_, errs = qualifiedNames(idx, RootSelector{Views: []string{"View"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "ambiguous")
}
