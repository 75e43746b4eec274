package parsing

import (
	"context"

	"github.com/NickyBoy89/viewstategen/symbol"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LoadIndex parses the given files in parallel and returns a linked index.
// Files that cannot be read or parsed are logged and left out of the index;
// their errors are returned alongside it.
func LoadIndex(ctx context.Context, cache *Cache, paths []string, workers int) (*Index, []error, error) {
	results := make([]*symbol.FileScope, len(paths))
	failures := make([]error, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			symbols, err := cache.Load(path)
			if err != nil {
				log.WithField("file", path).WithError(err).Warn("Skipping file")
				failures[i] = err
				return nil
			}
			results[i] = symbols
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	idx := NewIndex()
	var errs []error
	for i, symbols := range results {
		if symbols != nil {
			idx.Add(symbols)
		}
		if failures[i] != nil {
			errs = append(errs, failures[i])
		}
	}
	idx.Link()

	return idx, errs, nil
}
