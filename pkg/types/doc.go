// Package types defines the small set of types shared across modtext's
// packages: the engine event trace (Event, Observer), the report types the
// commands hand to the renderers, and the Pather interface.
package types
