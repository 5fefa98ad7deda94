// Package template defines the template engine seam used by template driven
// renderers. The pongo2 backed implementation lives in the gotemplate
// subpackage.
package template
