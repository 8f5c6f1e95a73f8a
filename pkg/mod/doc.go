// Package mod implements the mod descriptor: one named patch rule made of an
// ordered anchor chain and the lines to insert where the chain resolves.
//
// A descriptor is built from the directive run that starts with
// @mod "<description>" and the literal text lines that follow it. Directives
// after the @mod line are @after and @before, which append anchors, and
// @include, which appends the lines of another file to the insertion text.
package mod
