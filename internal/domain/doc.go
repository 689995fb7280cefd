// Package domain contains the core business entities, value objects, and
// domain logic for generated learning materials. It represents the heart of
// the system, independent of any specific LLM provider or delivery mechanism.
package domain
