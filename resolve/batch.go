package resolve

import (
	"context"

	"github.com/NickyBoy89/viewstategen/symbol"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of resolving one root
type Result struct {
	Root *symbol.ClassScope
	View *View
	Err  error
}

// ResolveAll resolves every root independently, with at most workers roots
// resolved at once. Results are returned in the order of roots; a root that
// fails does not stop the others. The only error returned is the context's.
func (r *Resolver) ResolveAll(ctx context.Context, roots []*symbol.ClassScope, workers int) ([]Result, error) {
	results := make([]Result, len(roots))

	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	for i, root := range roots {
		i, root := i, root
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			view, err := r.Resolve(root)
			if err != nil {
				log.WithField("interface", root.QualifiedName).WithError(err).Error("Failed to resolve view")
			}
			results[i] = Result{Root: root, View: view, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
