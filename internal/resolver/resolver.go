// Package resolver turns a console query into the text the console prints.
// Lookup is an exact byte-for-byte match against the scenario catalog; anything
// else gets the fallback template with the query quoted back verbatim.
package resolver

import (
	"fmt"

	"github.com/comigor/lifeloop/pkg/scenario"
)

const fallbackTemplate = `Processing query: "%s"
Simulation complete.
Multiple timeline branches detected.
Recommend running deeper analysis.`

// Resolver answers queries from a fixed catalog.
type Resolver struct {
	catalog *scenario.Catalog
}

// New creates a Resolver over catalog. A nil catalog answers everything with the fallback.
func New(catalog *scenario.Catalog) *Resolver {
	if catalog == nil {
		catalog = scenario.NewCatalog()
	}
	return &Resolver{catalog: catalog}
}

// Resolve returns the canned answer for query or the fallback.
func (r *Resolver) Resolve(query string) string {
	out, _ := r.Lookup(query)
	return out
}

// Lookup is Resolve that also reports whether the answer was canned.
func (r *Resolver) Lookup(query string) (string, bool) {
	if s, ok := r.catalog.Get(query); ok {
		return s.Response, true
	}
	return Fallback(query), false
}

// Catalog exposes the underlying scenarios.
func (r *Resolver) Catalog() *scenario.Catalog { return r.catalog }

// Fallback renders the generic reply for an unknown query.
func Fallback(query string) string {
	return fmt.Sprintf(fallbackTemplate, query)
}
