// Package source supplies the candidate option list for the selection
// control.
//
// A Source fetches the full list from a Fetcher, stores it in a cache.Store
// under a fixed key, and hands callers a sampled prefix of it. When a fetch
// fails the last stored list is served instead for as long as its cache
// entry is live. Outcomes are reported as a tagged Result so callers can tell
// an empty list apart from a failed retrieval.
//
// # Usage
//
//	store := cache.New[[]option.Option]()
//	src := source.New(source.NewHTTPFetcher(endpoint), store,
//	    source.WithLogger(logger),
//	)
//
//	res := src.Resolve(ctx)
//	switch res.Status {
//	case source.StatusFresh, source.StatusCached:
//	    engine.SetOptions(res.Options)
//	case source.StatusUnavailable:
//	    // nothing to show
//	case source.StatusCanceled:
//	    // the host is gone; do nothing
//	}
//
// # Cancellation
//
// The context passed to Fetch and Resolve is checked after the fetch
// returns and before the cache is touched. A fetch that completes after its
// context was canceled changes nothing.
package source
