// Package ruleset parses rule files into an ordered set of mod descriptors.
//
// A rule file starts with an optional header of blank and comment lines.
// Each mod begins with a @mod line, continues with further @ directives and
// ends with the literal text to insert, which runs until the next @mod line
// or the end of the file:
//
//	-- Patches for ChatOptions.lua
//	@mod "add chatmaid options"
//	@after "function CreateOptions()"
//	@before "end"
//	    AddChatmaidOptions()
//
//	@mod "load chatmaid"
//	@include "chatmaid.lua"
package ruleset
