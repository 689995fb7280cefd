// Package llm implements the HTTP boundary to external LLM providers. Each
// provider has an Adapter that knows its wire format (request body, auth
// headers, content extraction); the FallbackClient drives an adapter through
// an ordered matrix of (credential, model) candidates until one yields usable
// content. Adapters are selected at construction time by configuration, never
// by inspecting endpoint strings at call time.
package llm
