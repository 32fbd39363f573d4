package gitrun

import (
	"context"

	"github.com/dshills/pathwatch/internal/detect"
)

// Fetch strategies for making refs resolvable on shallow checkouts.
const (
	StrategyDeepen   = "deepen"
	StrategyTargeted = "targeted"
)

// EnsureResolvable makes sure both refs exist locally before the diff runs.
//
// Under StrategyDeepen a single best-effort FetchAll is issued when either
// ref is symbolic or relative; its failure is ignored because the diff is
// the real correctness gate. Under StrategyTargeted each ref is probed and
// only missing ones fetched, and a failed fetch is fatal.
func EnsureResolvable(ctx context.Context, c Client, strategy, before, after string) error {
	if strategy == StrategyTargeted {
		for _, ref := range []string{before, after} {
			if c.HasObject(ctx, ref) {
				continue
			}
			if err := c.FetchCommit(ctx, ref); err != nil {
				return &FetchError{Ref: ref, Err: err}
			}
		}
		return nil
	}
	if detect.IsFullOID(before) && detect.IsFullOID(after) {
		return nil
	}
	_ = c.FetchAll(ctx)
	return nil
}
