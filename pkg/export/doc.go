// Package export serializes a generated grid.Grid for collaborators outside
// the generation core: the map-serving collaborator's JSON wire format, and
// a supplemental SVG visualization for operators inspecting a map by eye.
//
// The package offers both formatted (indented) and compact JSON export to
// accommodate different use cases, from human-readable output to
// space-efficient storage.
package export
