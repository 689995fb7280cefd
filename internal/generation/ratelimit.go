package generation

import "strings"

// rateLimitIndicators are the phrases that mark an error message as
// rate-limit-shaped. Matching is case-insensitive substring search; the list
// covers the generic HTTP vocabulary plus the per-minute/per-day quota
// phrasing the hosted providers use.
var rateLimitIndicators = []string{
	"rate limit",
	"rate-limit",
	"too many requests",
	"quota exceeded",
	"429",
	"resource exhausted",
	"resource_exhausted",
	"requests per minute",
	"requests per day",
	"usage limit",
	"overloaded",
}

// IsRateLimit reports whether the given error message looks like a provider
// rate limit or quota exhaustion. The facade uses this only after the
// provider client has exhausted every candidate, to decide whether fallback
// content should mask the failure.
func IsRateLimit(message string) bool {
	lowered := strings.ToLower(message)
	for _, indicator := range rateLimitIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}
