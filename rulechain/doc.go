// Package rulechain reshapes a decoded gateway declaration before it is
// transformed.
//
// A rule chain is a YAML or JSON document holding an ordered list of actions.
// Each action addresses the tree by dot path:
//
//	chain: "1.0"
//	description: Drop gateway-only sections
//	actions:
//	  - operation: remove
//	    path: proxy
//	  - operation: shift
//	    from: api.name
//	    to: name
//	  - operation: default
//	    path: version
//	    value: "1.0"
//	  - operation: update
//	    path: paths
//	    value:
//	      /health:
//	        - methods: [GET]
//
// Operations:
//
//   - shift moves the value at from to to; nothing happens when from is absent
//   - default sets value at path when path is absent
//   - remove deletes path
//   - update merges an object value into the object at path, or sets value
//     otherwise
//
// Actions run in order on a deep copy of the input, so the input is never
// modified. Inputs that are not objects pass through unchanged.
//
// [LoadDefault] returns the bundled chain, which removes the sections of a
// gateway export that have no place in published documentation.
package rulechain
