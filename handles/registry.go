package handles

import (
	"runtime"
	"slices"
	"sync"
	"weak"

	"github.com/reusee/clbridge/values"
)

// Registry caches proxies for peer handles. A proxy stays cached while it is
// reachable; when it is collected its handle is queued for release.
type Registry struct {
	owner values.Caller

	mu      sync.Mutex
	proxies map[int64]weak.Pointer[values.Proxy]
	pending []int64
}

// New returns a registry creating proxies owned by owner.
func New(owner values.Caller) *Registry {
	return &Registry{
		owner:   owner,
		proxies: make(map[int64]weak.Pointer[values.Proxy]),
	}
}

func (r *Registry) GetOrCreate(handle int64) *values.Proxy {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ptr, ok := r.proxies[handle]; ok {
		if proxy := ptr.Value(); proxy != nil {
			return proxy
		}
	}

	// the peer handed the handle out again, so a queued release is stale
	r.pending = slices.DeleteFunc(r.pending, func(h int64) bool {
		return h == handle
	})

	proxy := values.NewProxy(handle, r.owner)
	r.proxies[handle] = weak.Make(proxy)
	runtime.AddCleanup(proxy, r.collected, handle)
	return proxy
}

// collected runs after the proxy for handle became unreachable.
func (r *Registry) collected(handle int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ptr, ok := r.proxies[handle]
	if !ok || ptr.Value() != nil {
		// released explicitly, or replaced by a live proxy
		return
	}
	delete(r.proxies, handle)
	r.pending = append(r.pending, handle)
}

// Release queues the handle of proxy for release and forgets the proxy.
func (r *Registry) Release(proxy *values.Proxy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ptr, ok := r.proxies[proxy.Handle]
	if !ok || ptr.Value() != proxy {
		return
	}
	delete(r.proxies, proxy.Handle)
	r.pending = append(r.pending, proxy.Handle)
}

// Drain returns the queued handles in release order and empties the queue.
func (r *Registry) Drain() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := r.pending
	r.pending = nil
	return ret
}

// Pending returns the number of queued handles.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Len returns the number of cached handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.proxies)
}
