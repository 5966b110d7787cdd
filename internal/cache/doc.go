// Package cache provides a string-keyed in-memory store with per-entry
// time-to-live.
//
// Every Set stamps the entry with a store-wide monotonic version and
// schedules a fire-and-forget eviction task after the TTL. When the task
// fires it removes the entry only if the stored version still matches the
// one it was scheduled for, so an eviction left over from an earlier Set
// never deletes a newer entry under the same key.
//
// Entries are also checked lazily: an entry is readable only while
// now < createdAt + ttl, whether or not its eviction has fired yet.
//
// # Usage
//
//	store := cache.New[[]option.Option](cache.WithTTL(5 * time.Minute))
//	defer store.Close()
//
//	store.Set("coins", list)
//	if list, ok := store.Get("coins"); ok {
//	    // use list
//	}
//
// # Testing
//
// Inject a Clock and a Scheduler to control expiry without sleeping:
//
//	store := cache.New[int](
//	    cache.WithClock(clock),
//	    cache.WithScheduler(scheduler),
//	)
//
// # Thread Safety
//
// All Store methods are safe for concurrent use. Eviction tasks run on
// timer goroutines and take the same lock.
package cache
