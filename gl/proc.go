package gl

import (
	"strings"
	"sync"
)

// Resolver looks up the address of an OpenGL entry point by its registry
// name, such as "glClear".
type Resolver interface {
	Resolve(name string) (uintptr, bool)
}

// ResolverFunc adapts a GetProcAddress style function to Resolver. A zero
// address means the entry point is missing.
type ResolverFunc func(name string) uintptr

func (f ResolverFunc) Resolve(name string) (uintptr, bool) {
	addr := f(name)
	return addr, addr != 0
}

var (
	mu       sync.Mutex
	resolver Resolver = systemResolver{}
	resolved          = make(map[string]uintptr)
)

// SetResolver replaces the resolver and forgets every address resolved so
// far. Functions that were already called stay bound to their old entry
// points.
func SetResolver(r Resolver) {
	mu.Lock()
	defer mu.Unlock()

	resolver = r
	clear(resolved)
}

// procAddress resolves name or panics. The panic message lists the versions
// and extensions that provide the function so the caller can tell which
// context it needs.
func procAddress(name string, support ...string) uintptr {
	mu.Lock()
	addr, ok := resolved[name]
	r := resolver
	mu.Unlock()

	if ok {
		return addr
	}

	addr, ok = r.Resolve(name)
	if !ok || addr == 0 {
		panic(loadFailure(name, support))
	}

	mu.Lock()
	resolved[name] = addr
	mu.Unlock()

	return addr
}

func loadFailure(name string, support []string) string {
	msg := "failed to load function " + name
	if len(support) > 0 {
		msg += "\n" + strings.Join(support, "\n")
	}
	return msg
}
