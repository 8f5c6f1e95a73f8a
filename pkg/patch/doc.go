// Package patch applies a rule set to a source document.
//
// Every mod is resolved against the unmodified source. The resulting
// insertion points form a plan in which each index may be claimed by one mod
// only; a second claim is a conflict. Output is produced only after the whole
// plan has been built, so a failing rule set never yields partial output.
package patch
