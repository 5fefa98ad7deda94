// Package render defines the renderer contract and a name-keyed registry of
// renderers. Concrete renderers live under pkg/renderers.
package render
