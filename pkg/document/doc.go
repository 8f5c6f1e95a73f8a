// Package document loads and stores line-oriented text files.
//
// Lines are decoded from the configured encoding (a UTF-8 byte order mark is
// always dropped), split on "\n" and cleaned of trailing newline characters,
// tabs and spaces, which is the form every anchor is matched against. Writing
// joins lines with the chosen newline convention and replaces the target
// atomically.
package document
