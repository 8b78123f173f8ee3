// Package authz holds the declarative route→permission table consulted by the
// authorization middleware. Declarations are made at route-registration time,
// so the whole mapping is plain, inspectable data rather than reflection.
package authz

import (
	"sort"
	"strings"
	"sync"
)

type prefixRule struct {
	prefix      string
	permissions []string
}

// Registry maps routes to the permission names they require.
//
// Resolution order is innermost-wins: an exact "METHOD /path" declaration takes
// precedence over any prefix declaration covering the same path; among prefix
// declarations the longest one wins. A route with no declaration at all
// requires nothing — any authenticated principal passes. That default-allow is
// deliberate and must not regress into default-deny.
type Registry struct {
	mu       sync.RWMutex
	exact    map[string][]string
	prefixes []prefixRule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{exact: make(map[string][]string)}
}

// Declare records the permissions required for one route. The path must be the
// registered route pattern (e.g. "/api/v1/superadmin/users/:id"), not a concrete
// URL. Declaring with no permissions marks the route as explicitly open,
// overriding any prefix declaration.
func (r *Registry) Declare(method, path string, permissions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[routeKey(method, path)] = dedupe(permissions)
}

// DeclarePrefix records a default requirement for every route under a path
// prefix, unless the route carries its own declaration.
func (r *Registry) DeclarePrefix(prefix string, permissions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefixRule{prefix: prefix, permissions: dedupe(permissions)})
	sort.SliceStable(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i].prefix) > len(r.prefixes[j].prefix)
	})
}

// RequiredFor resolves the permissions required for a dispatched route.
// Returns nil when nothing is declared.
func (r *Registry) RequiredFor(method, path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if perms, ok := r.exact[routeKey(method, path)]; ok {
		return perms
	}
	for _, rule := range r.prefixes {
		if strings.HasPrefix(path, rule.prefix) {
			return rule.permissions
		}
	}
	return nil
}

// Routes returns a copy of all exact declarations, for startup logging and
// tests.
func (r *Registry) Routes() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]string, len(r.exact))
	for k, v := range r.exact {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func routeKey(method, path string) string {
	return method + " " + path
}

// dedupe collapses duplicate permission names, preserving order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
