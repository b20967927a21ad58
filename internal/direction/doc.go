// Package direction forces page text direction on a parsed HTML tree.
//
// An Initializer sets the document element's dir and lang attributes and then
// walks a fixed rule table, pinning inline direction and text-align on every
// element a rule's selectors match. Rules run in table order, so an element
// matched by two rules keeps the styling of the later one.
//
// The package never performs I/O. Hosts parse the markup, call Apply once per
// page, and render the tree themselves.
package direction
