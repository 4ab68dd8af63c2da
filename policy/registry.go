package policy

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry maps policy tags to documenters. The zero value is an empty
// registry where every tag resolves to Noop.
type Registry struct {
	entries map[string]entry
}

type entry struct {
	documenter Documenter
	summary    string
}

var defaultRegistry = NewRegistry(nil).
	withSummary("groovy", Groovy, "Lists the script hooks run by the Groovy policy").
	withSummary("transform-headers", TransformHeaders, "Lists the header scope and the added, removed or whitelisted headers").
	withSummary("mock", Mock, "Documents the mocked status code and adds a matching response").
	withSummary("rate-limit", RateLimit, "Documents the request limit per period").
	withSummary("quota", Quota, "Documents the request quota per period").
	withSummary("ip-filtering", IPFiltering, "Lists the allowed and denied client addresses").
	withSummary("cache", Cache, "Documents the response cache name and time to live")

// DefaultRegistry returns the registry holding the built-in documenters.
func DefaultRegistry() Registry {
	return defaultRegistry
}

// NewRegistry creates a registry from the given table. Nil documenters are ignored.
func NewRegistry(documenters map[string]Documenter) Registry {
	r := Registry{entries: make(map[string]entry, len(documenters))}
	for tag, d := range documenters {
		if d != nil {
			r.entries[tag] = entry{documenter: d}
		}
	}
	return r
}

// With returns a copy of r where tag resolves to d. A nil d removes the tag.
func (r Registry) With(tag string, d Documenter) Registry {
	return r.withSummary(tag, d, "")
}

func (r Registry) withSummary(tag string, d Documenter, summary string) Registry {
	next := Registry{entries: maps.Clone(r.entries)}
	if next.entries == nil {
		next.entries = make(map[string]entry, 1)
	}
	if d == nil {
		delete(next.entries, tag)
		return next
	}
	next.entries[tag] = entry{documenter: d, summary: summary}
	return next
}

// Lookup returns the documenter registered for tag, or Noop. It never returns nil.
func (r Registry) Lookup(tag string) Documenter {
	if e, ok := r.entries[tag]; ok {
		return e.documenter
	}
	return Noop
}

// Has reports whether tag has a registered documenter.
func (r Registry) Has(tag string) bool {
	_, ok := r.entries[tag]
	return ok
}

// Summary returns the one-line description of a built-in tag, or "".
func (r Registry) Summary(tag string) string {
	return r.entries[tag].summary
}

// Tags returns the registered tags in sorted order.
func (r Registry) Tags() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

// Title renders a tag for people: "transform-headers" becomes "Transform Headers".
func Title(tag string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "-", " "))
}
