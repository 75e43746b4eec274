package resolve

import (
	"fmt"
	"sort"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/parsing"
	"github.com/NickyBoy89/viewstategen/symbol"
	log "github.com/sirupsen/logrus"
)

// RootSelector picks the interfaces that get a view state
type RootSelector struct {
	// Views are interfaces named explicitly, by simple, nested or qualified name
	Views []string
	// PresenterAnnotation marks presenter classes whose view type is a root
	PresenterAnnotation string
	// PresenterBase is the superclass of presenters; its single type argument
	// is the view
	PresenterBase string
}

// Select returns the roots found in idx, sorted by qualified name and
// without duplicates. A named view that cannot be found, or that is not an
// interface, is reported and does not stop the others from being selected.
func (s RootSelector) Select(idx *parsing.Index) ([]*symbol.ClassScope, []error) {
	roots := make(map[string]*symbol.ClassScope)
	var errs []error

	for _, name := range s.Views {
		matches := idx.Find(name)
		switch {
		case len(matches) == 0:
			errs = append(errs, fmt.Errorf("view %s: no such interface", name))
			continue
		case len(matches) > 1:
			errs = append(errs, fmt.Errorf("view %s: ambiguous name, matches %s and %s", name, matches[0].QualifiedName, matches[1].QualifiedName))
			continue
		}
		if !matches[0].IsInterface {
			errs = append(errs, fmt.Errorf("view %s: %s is not an interface", name, matches[0].QualifiedName))
			continue
		}
		roots[matches[0].QualifiedName] = matches[0]
	}

	if s.PresenterAnnotation != "" && s.PresenterBase != "" {
		for _, file := range idx.Files() {
			for _, cs := range file.AllClasses() {
				if view := s.presenterView(idx, cs); view != nil {
					roots[view.QualifiedName] = view
				}
			}
		}
	}

	selected := make([]*symbol.ClassScope, 0, len(roots))
	for _, root := range roots {
		selected = append(selected, root)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].QualifiedName < selected[j].QualifiedName
	})
	return selected, errs
}

// presenterView returns the view interface of an annotated presenter class
func (s RootSelector) presenterView(idx *parsing.Index, cs *symbol.ClassScope) *symbol.ClassScope {
	if cs.IsInterface || cs.Superclass == nil {
		return nil
	}
	if _, ok := symbol.FindAnnotation(cs.Annotations, s.PresenterAnnotation); !ok {
		return nil
	}
	if !javatype.SameName(cs.Superclass.Name, s.PresenterBase) || len(cs.Superclass.Args) != 1 {
		return nil
	}

	viewType := cs.Superclass.Args[0]
	logger := log.WithFields(log.Fields{
		"presenter": cs.QualifiedName,
		"view":      viewType.String(),
	})
	if cs.IsTypeParameter(viewType.Name) {
		logger.Debug("Presenter view is a type parameter, skipping it")
		return nil
	}

	view := idx.Lookup(viewType.Name)
	if view == nil {
		if matches := idx.Find(viewType.Name); len(matches) == 1 {
			view = matches[0]
		}
	}
	if view == nil || !view.IsInterface {
		logger.Debug("Presenter view is not an interface in the sources, skipping it")
		return nil
	}
	return view
}
