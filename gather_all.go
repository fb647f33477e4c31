package schemair

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/schemair/ir"
	"github.com/signadot/schemair/schema"
)

var ErrUnsealedRegistry = errors.New("registry is not sealed")

// GatherAll runs Gather over each of roots concurrently against one shared
// registry, which must be sealed. Each walk has its own visited set.
// Results are in the order of roots. The first failing walk cancels the
// walks that have not started yet.
//
// When defs is nil each root gets its own registry, as with Gather.
func GatherAll(ctx context.Context, roots []ir.Schema, defs *schema.Registry, opts ...GatherOption) ([]*Result, error) {
	if defs != nil && !defs.Sealed() {
		return nil, ErrUnsealedRegistry
	}
	res := make([]*Result, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Gather(root, defs, opts...)
			if err != nil {
				return fmt.Errorf("root %d: %w", i, err)
			}
			res[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
