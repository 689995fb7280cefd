package generation

import "errors"

// Common errors returned by the generation pipeline. These form the error
// taxonomy shared by the provider client and the parsers: transport-level
// failures are recovered inside the fallback orchestrator, while the
// remaining errors surface to the facade which decides between failure and
// degraded fallback content.
var (
	// ErrGenerationFailed is returned when generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate study material")

	// ErrNetwork is returned for transport failures and timeouts reaching a provider
	ErrNetwork = errors.New("network error calling language model provider")

	// ErrAuth is returned when a provider rejects the supplied credential
	ErrAuth = errors.New("provider rejected credential")

	// ErrRateLimited is returned when a provider reports quota exhaustion or HTTP 429
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrMalformedResponse is returned when the model response is empty, too
	// short, or cannot be parsed into structured records
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrInsufficientStructure is returned when a response parses but yields
	// fewer valid items than the minimum required
	ErrInsufficientStructure = errors.New("too few valid items in model response")

	// ErrInvalidConfig is returned when the generation service configuration is invalid
	ErrInvalidConfig = errors.New("invalid generation configuration")

	// ErrEmptySourceText is returned when a caller supplies no source text
	ErrEmptySourceText = errors.New("source text cannot be empty")
)
