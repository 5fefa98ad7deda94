// Package orchestrator wires the loader → parser → transformer → renderer
// pipeline for card documents, providing dependency injection friendly
// helpers for consumers that prefer a single entry point.
package orchestrator
