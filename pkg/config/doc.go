// Package config loads modtext configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/modtext/config.toml
//  3. the project file (modtext.toml, .modtext.toml, modtext.yaml) or the
//     file given with --config
//  4. MODTEXT_* environment variables, "__" separating nested keys
//     (MODTEXT_OUTPUT__NEWLINE=crlf sets output.newline)
//  5. command line flag overrides
//
// A project file may declare jobs, each patching one source with one rule
// file:
//
//	[[jobs]]
//	name = "chat options"
//	rules = "mods/ChatOptions_mod.lua"
//	source = "vendor/ChatOptions.lua"
//	target = "build/ChatOptions.lua"
package config
