// Package gitrun talks to git for pathwatch.
//
// [Client] is the narrow capability the decision needs: probe an object,
// fetch, diff name-only, mark the checkout safe. The production [ExecClient]
// shells out to the git binary inside a fixed working directory; tests
// substitute a scripted in-memory fake.
//
// [EnsureResolvable] handles shallow CI checkouts, where a ref a few commits
// back or a hash outside the fetched range may be locally absent. Two
// strategies exist: eager deepen (fetch all branch tips, best effort) and
// targeted (probe each ref, fetch exactly the missing ones at depth 1, fatal
// on failure). The strategy is chosen once from configuration.
package gitrun
