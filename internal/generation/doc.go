// Package generation implements the study material generation pipeline:
// prompt construction, the provider client boundary, resilient parsing of
// loosely structured model output into validated domain records, rate-limit
// classification, and deterministic fallback content for the cases where
// every live provider attempt is exhausted. The Service type wires these
// together behind the four public operations (summary, flashcards, quiz,
// clarification) without coupling callers to any specific LLM provider.
package generation
