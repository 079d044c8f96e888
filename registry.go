package enumgo

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// The process-wide cache registry owns every built cache; hosts look caches
// up by domain key and never hold a back-pointer from the cache to the host
// type, keeping ownership one-directional.
var (
	registry   sync.Map // domain key -> built cache
	buildGroup singleflight.Group
)

// For returns the process-wide cache for d.Key, building it on first use.
// Concurrent first use collapses to a single build; every caller observes
// the same finished cache.
//
// Registering the same key with a different value type is a host programming
// error and panics.
func For[T Integer](d Domain[T], opts ...Option) *Cache[T] {
	if d.Key == "" {
		panic("enumgo: domain key must not be empty")
	}
	if v, ok := registry.Load(d.Key); ok {
		return assertCache[T](d.Key, v)
	}
	v, _, _ := buildGroup.Do(d.Key, func() (any, error) {
		if v, ok := registry.Load(d.Key); ok {
			return v, nil
		}
		c := New(d, opts...)
		registry.Store(d.Key, c)
		return c, nil
	})
	return assertCache[T](d.Key, v)
}

// Lookup returns the cache previously built for key, if any.
func Lookup[T Integer](key string) (*Cache[T], bool) {
	v, ok := registry.Load(key)
	if !ok {
		return nil, false
	}
	return assertCache[T](key, v), true
}

func assertCache[T Integer](key string, v any) *Cache[T] {
	c, ok := v.(*Cache[T])
	if !ok {
		panic(fmt.Sprintf("enumgo: domain %q already registered with a different value type", key))
	}
	return c
}
