package policy

import (
	"fmt"
	"strings"

	"github.com/erraggy/gw2oas/pathmap"
)

// MockedResponseDescription is the response description added for a mocked status.
const MockedResponseDescription = "Response is mocked"

// Groovy documents the script hooks of a groovy policy, one bullet per config key.
func Groovy(ctx Context, value any) {
	config, ok := payloadMap(ctx, value)
	if !ok {
		return
	}
	var sb strings.Builder
	sb.WriteString("Run groovy scripts\n\n")
	for _, key := range config.Keys() {
		fmt.Fprintf(&sb, " * %s\n", key)
	}
	AppendDescription(ctx.Operation, sb.String())
}

// TransformHeaders documents a transform-headers policy: the scope, then each
// non-empty header list with the names of its entries.
func TransformHeaders(ctx Context, value any) {
	config, ok := payloadMap(ctx, value)
	if !ok {
		return
	}
	var sb strings.Builder
	sb.WriteString("Transform headers\n\n")
	config.Range(func(key string, v any) bool {
		if key == "scope" {
			fmt.Fprintf(&sb, "Process headers in scope %s\n\n", scalar(v))
			return true
		}
		headers, ok := v.([]any)
		if !ok {
			ctx.Warnf("transform-headers %s is %s, expected a list", key, describe(v))
			return true
		}
		if len(headers) == 0 {
			return true
		}
		fmt.Fprintf(&sb, " * %s\n", key)
		for i, h := range headers {
			switch header := h.(type) {
			case *pathmap.Map:
				name, _ := header.Get("name")
				fmt.Fprintf(&sb, "   * %s\n", scalar(name))
			case string:
				// removeHeaders and whitelistHeaders may list bare names
				fmt.Fprintf(&sb, "   * %s\n", header)
			default:
				ctx.Warnf("transform-headers %s[%d] is %s, expected an object", key, i, describe(h))
			}
		}
		return true
	})
	AppendDescription(ctx.Operation, sb.String())
}

// Mock documents a mock policy and, when a status is configured, adds a
// response for it.
func Mock(ctx Context, value any) {
	config, ok := payloadMap(ctx, value)
	if !ok {
		return
	}
	var sb strings.Builder
	sb.WriteString("Mock response\n\n")
	if status, present := config.Get("status"); present {
		switch status.(type) {
		case *pathmap.Map, []any, nil:
			ctx.Warnf("mock status is %s, expected a status code", describe(status))
		default:
			code := scalar(status)
			fmt.Fprintf(&sb, "With status code %s", code)
			ctx.Operation.NavigateOrCreateSegments("responses").
				Set(code, pathmap.FromPairs("description", MockedResponseDescription))
		}
	}
	AppendDescription(ctx.Operation, sb.String())
}

// RateLimit documents a rate-limit policy.
func RateLimit(ctx Context, value any) {
	documentLimit(ctx, value, "rate", "Rate limit")
}

// Quota documents a quota policy.
func Quota(ctx Context, value any) {
	documentLimit(ctx, value, "quota", "Quota")
}

// documentLimit handles both the wrapped ({"rate": {...}}) and the flat
// payload shape of rate-limit and quota policies.
func documentLimit(ctx Context, value any, wrapper, title string) {
	config, ok := payloadMap(ctx, value)
	if !ok {
		return
	}
	if inner, present := config.Get(wrapper); present {
		if config, ok = inner.(*pathmap.Map); !ok {
			ctx.Warnf("%s %s is %s, expected an object", ctx.Key, wrapper, describe(inner))
			return
		}
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	limit, hasLimit := config.Get("limit")
	if hasLimit {
		fmt.Fprintf(&sb, "Limit %s requests", scalar(limit))
		periodTime, hasTime := config.Get("periodTime")
		unit, hasUnit := config.Get("periodTimeUnit")
		if hasTime && hasUnit {
			fmt.Fprintf(&sb, " per %s %s", scalar(periodTime), strings.ToLower(scalar(unit)))
		}
		sb.WriteString("\n")
	}
	if key, present := config.Get("key"); present && scalar(key) != "" {
		fmt.Fprintf(&sb, "Counted per key %s\n", scalar(key))
	}
	AppendDescription(ctx.Operation, sb.String())
}

// IPFiltering documents the allowed and denied client addresses of an
// ip-filtering policy.
func IPFiltering(ctx Context, value any) {
	config, ok := payloadMap(ctx, value)
	if !ok {
		return
	}
	var sb strings.Builder
	sb.WriteString("Filter client addresses\n\n")
	for _, section := range []struct{ key, label string }{
		{"whitelistIps", "allowed"},
		{"blacklistIps", "denied"},
	} {
		v, present := config.Get(section.key)
		if !present {
			continue
		}
		ips, ok := v.([]any)
		if !ok {
			ctx.Warnf("ip-filtering %s is %s, expected a list", section.key, describe(v))
			continue
		}
		if len(ips) == 0 {
			continue
		}
		fmt.Fprintf(&sb, " * %s\n", section.label)
		for _, ip := range ips {
			fmt.Fprintf(&sb, "   * %s\n", scalar(ip))
		}
	}
	if forwarded, _ := config.Get("matchAllFromXForwardedFor"); forwarded == true {
		sb.WriteString("Every address in X-Forwarded-For is checked\n")
	}
	AppendDescription(ctx.Operation, sb.String())
}

// Cache documents a cache policy.
func Cache(ctx Context, value any) {
	config, ok := payloadMap(ctx, value)
	if !ok {
		return
	}
	var sb strings.Builder
	sb.WriteString("Cache responses\n\n")
	if name, present := config.Get("cacheName"); present {
		fmt.Fprintf(&sb, "Using cache %s\n", scalar(name))
	}
	if ttl, present := config.Get("timeToLiveSeconds"); present {
		fmt.Fprintf(&sb, "Entries live %s seconds\n", scalar(ttl))
	}
	if scope, present := config.Get("scope"); present {
		fmt.Fprintf(&sb, "Cached per %s\n", strings.ToLower(scalar(scope)))
	}
	AppendDescription(ctx.Operation, sb.String())
}
