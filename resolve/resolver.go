// Package resolve computes the replayable commands of a view interface: the
// de-duplicated abstract methods of the interface and every interface it
// extends, with generics substituted and a strategy and tag for each.
package resolve

import (
	"fmt"

	"github.com/NickyBoy89/viewstategen/javatype"
	"github.com/NickyBoy89/viewstategen/symbol"
	log "github.com/sirupsen/logrus"
)

// Options configures a Resolver
type Options struct {
	// StrategyAnnotation is the marker annotation that carries a strategy and a tag
	StrategyAnnotation string
	// DefaultStrategy is used for methods where no strategy is set anywhere
	DefaultStrategy string
	// ObservableType is the stream type handled as a subscribe/republish pair
	ObservableType string
}

// DefaultOptions are the names used by the com.arellomobile.mvp runtime
var DefaultOptions = Options{
	StrategyAnnotation: "com.arellomobile.mvp.viewstate.strategy.StateStrategyType",
	DefaultStrategy:    "com.arellomobile.mvp.viewstate.strategy.AddToEndStrategy",
	ObservableType:     "rx.Observable",
}

// Resolver resolves root interfaces. It holds no state between calls, so a
// single Resolver can be used from multiple goroutines.
type Resolver struct {
	opts Options
}

// New creates a Resolver, filling unset options from DefaultOptions
func New(opts Options) *Resolver {
	if opts.StrategyAnnotation == "" {
		opts.StrategyAnnotation = DefaultOptions.StrategyAnnotation
	}
	if opts.DefaultStrategy == "" {
		opts.DefaultStrategy = DefaultOptions.DefaultStrategy
	}
	if opts.ObservableType == "" {
		opts.ObservableType = DefaultOptions.ObservableType
	}
	return &Resolver{opts: opts}
}

// ReadStrategy reads the explicit policy written on a declaration
func (r *Resolver) ReadStrategy(annotations []symbol.Annotation) Policy {
	return ReadStrategy(annotations, r.opts.StrategyAnnotation)
}

// View is a resolved root interface
type View struct {
	Interface *symbol.ClassScope `yaml:"-"`
	// Name is the nested name of the interface, e.g. MainActivity.View
	Name          string    `yaml:"name"`
	QualifiedName string    `yaml:"qualifiedName"`
	Package       string    `yaml:"package,omitempty"`
	Methods       []*Method `yaml:"methods"`
}

// Resolve computes the commands of a root interface: its own methods first,
// then the methods of every interface it extends in depth-first order.
//
// The root's methods shadow any ancestor method with the same key. Two
// ancestors declaring the same method must agree on its strategy and tag.
func (r *Resolver) Resolve(root *symbol.ClassScope) (*View, error) {
	if len(root.TypeParameters) > 0 {
		return nil, &Error{
			Kind:       ErrUnsupportedGenericInterface,
			Root:       root.Name,
			Interfaces: []string{root.Name},
		}
	}

	rootPolicy := r.ReadStrategy(root.Annotations)
	rootMethods := r.BuildDescriptors(javatype.Bindings{}, root, rootPolicy)

	w := walker{resolver: r, root: root, path: map[string]struct{}{root.QualifiedName: {}}}
	found, walkErr := w.collect(root, javatype.Bindings{}, rootPolicy, []string{root.Name})

	// Conflicts are reported in discovery order, so the descriptors found before
	// a failing edge are merged before reporting the edge itself.
	ancestors, err := r.merge(root, rootMethods, found)
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}

	methods := make([]*Method, 0, len(rootMethods)+len(ancestors))
	methods = append(methods, rootMethods...)
	methods = append(methods, ancestors...)

	AssignUniqueIDs(methods)
	for _, method := range methods {
		method.Observable = r.isObservable(method.ReturnType)
	}

	view := &View{
		Interface:     root,
		Name:          root.Name,
		QualifiedName: root.QualifiedName,
		Methods:       methods,
	}
	if root.File != nil {
		view.Package = root.File.Package
	}
	return view, nil
}

// merge filters the ancestors' descriptors, in discovery order: root methods
// shadow them, and duplicates must agree with the first declaration
func (r *Resolver) merge(root *symbol.ClassScope, rootMethods, found []*Method) ([]*Method, error) {
	var ancestors []*Method
	for _, method := range found {
		if indexOfKey(rootMethods, method) >= 0 {
			continue
		}

		ind := indexOfKey(ancestors, method)
		if ind < 0 {
			ancestors = append(ancestors, method)
			continue
		}

		existing := ancestors[ind]
		conflict := &Error{
			Root:          root.Name,
			Interfaces:    []string{existing.DeclaringInterface, method.DeclaringInterface},
			Method:        method.Name,
			ArgumentTypes: method.ArgumentTypes(),
		}
		if !javatype.SameName(existing.Strategy, method.Strategy) {
			conflict.Kind = ErrConflictingStrategy
			conflict.Detail = fmt.Sprintf("%s != %s", existing.Strategy, method.Strategy)
			return nil, conflict
		}
		if existing.Tag.Expr != method.Tag.Expr {
			conflict.Kind = ErrConflictingTag
			conflict.Detail = fmt.Sprintf("%s != %s", existing.Tag.Expr, method.Tag.Expr)
			return nil, conflict
		}
	}
	return ancestors, nil
}

func (r *Resolver) isObservable(t javatype.TypeExpr) bool {
	return t.Wildcard == javatype.NotWildcard && !t.IsArray() && javatype.SameName(t.Name, r.opts.ObservableType)
}

// walker walks the interfaces extended by one root
type walker struct {
	resolver *Resolver
	root     *symbol.ClassScope
	// path holds the interfaces on the current branch of the walk
	path map[string]struct{}
}

// collect returns the descriptors of every interface above iface, in
// depth-first order. Each call returns its own slice, the caller decides what
// to keep. On failure, the descriptors found before the failing edge are
// returned alongside the error.
func (w *walker) collect(iface *symbol.ClassScope, bindings javatype.Bindings, inherited Policy, trail []string) ([]*Method, error) {
	var found []*Method

	for i, ref := range iface.Interfaces {
		var parent *symbol.ClassScope
		if i < len(iface.Parents) {
			parent = iface.Parents[i]
		}
		if parent == nil {
			log.WithFields(log.Fields{
				"interface": iface.Name,
				"parent":    ref.String(),
			}).Debug("Parent interface is not part of the sources, skipping it")
			continue
		}

		if len(ref.Args) != len(parent.TypeParameters) {
			return found, &Error{
				Kind:       ErrGenericArityMismatch,
				Root:       w.root.Name,
				Interfaces: []string{parent.Name, iface.Name},
				Detail: fmt.Sprintf("%s declares %d type parameters, %s supplies %d",
					parent.Name, len(parent.TypeParameters), iface.Name, len(ref.Args)),
			}
		}

		branch := append(append([]string{}, trail...), parent.Name)
		if _, ok := w.path[parent.QualifiedName]; ok {
			return found, &Error{
				Kind:       ErrCyclicInheritance,
				Root:       w.root.Name,
				Interfaces: branch,
			}
		}

		edgeBindings := javatype.Compose(parent.TypeParameterNames(), ref.Args, bindings)
		edgePolicy := w.resolver.ReadStrategy(parent.Annotations).Overlay(inherited)

		found = append(found, w.resolver.BuildDescriptors(edgeBindings, parent, inherited)...)

		w.path[parent.QualifiedName] = struct{}{}
		above, err := w.collect(parent, edgeBindings, edgePolicy, branch)
		delete(w.path, parent.QualifiedName)

		found = append(found, above...)
		if err != nil {
			return found, err
		}
	}

	return found, nil
}
