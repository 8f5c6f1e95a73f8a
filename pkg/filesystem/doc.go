// Package filesystem provides the filesystems modtext reads rule files,
// includes and source documents from, and the atomic write used for targets.
//
// Everything is expressed on afero.Fs so commands run against the OS in
// production and against an in-memory filesystem in tests.
package filesystem
