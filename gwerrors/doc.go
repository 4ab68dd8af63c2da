// Package gwerrors provides structured error types for gw2oas.
//
// Import path: github.com/erraggy/gw2oas/gwerrors
//
// Every error type matches a sentinel through errors.Is, so callers can branch
// on the category of a failure without type assertions:
//
//   - [ParseError] matches [ErrParse]: the gateway document could not be decoded
//   - [RuleChainError] matches [ErrRuleChain]: a rule chain is invalid or an action failed
//   - [ValidationError] matches [ErrValidation]: the generated document violates its schema
//   - [ConfigError] matches [ErrConfig]: an option or environment value is invalid
//
// Use errors.As to get at the details:
//
//	var chainErr *gwerrors.RuleChainError
//	if errors.As(err, &chainErr) {
//	    fmt.Printf("action %d failed\n", chainErr.ActionIndex)
//	}
//
// None of these are raised by the transformation itself, which never fails.
// They come from the decoding, rule chain and output layers around it.
package gwerrors
