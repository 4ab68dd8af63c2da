// Package policy turns gateway policy payloads into Swagger operation
// documentation.
//
// A policy block in a gateway declaration looks like:
//
//	{"methods": ["GET"], "mock": {"status": "404"}, "groovy": {"onRequestScript": "..."}}
//
// Every key of the block is looked up in a [Registry]. The [Documenter] found
// for the key appends a description fragment to the operation node and may add
// responses. Keys without a documenter, including "methods", resolve to [Noop].
//
// The default registry knows the following tags:
//
//   - groovy: lists the configured script hooks
//   - transform-headers: lists the header scope and the manipulated headers
//   - mock: documents the mocked status and adds a matching response
//   - rate-limit and quota: document the configured limit and period
//   - ip-filtering: lists allowed and denied client addresses
//   - cache: documents the cache name and time to live
//
// Registries are immutable. Use [Registry.With] to derive one with extra or
// replaced documenters.
package policy
