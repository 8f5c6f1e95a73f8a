package logging

import (
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/rs/zerolog"
)

// NewTraceObserver turns engine events into log records. Line examination is
// logged at debug level, everything else at info.
func NewTraceObserver(logger zerolog.Logger) types.Observer {
	return types.ObserverFunc(func(e types.Event) {
		if e.Kind == types.EventLineExamined {
			logger.Debug().Int("line", e.Line).Str("text", e.Text).Msg("examine")
			return
		}

		ev := logger.Info()
		switch e.Kind {
		case types.EventModDeclared:
			ev.Str("mod", e.Mod).Int("line", e.Line).Msg("declare mod")
		case types.EventIncludeRead:
			ev.Str("mod", e.Mod).Str("path", e.Path).Int("lines", e.Count).Msg("read include")
		case types.EventSearchStarted:
			ev.Str("term", e.Term).Int("line", e.Line).Msg("find")
		case types.EventAnchorFound:
			ev.Str("term", e.Term).Int("line", e.Line).Msg("found")
		case types.EventSourceRead:
			ev.Str("path", e.Path).Int("lines", e.Count).Msg("read source")
		case types.EventInserted:
			ev.Str("mod", e.Mod).Int("line", e.Line).Int("lines", e.Count).Msg("insert")
		case types.EventTargetWritten:
			ev.Str("path", e.Path).Int("lines", e.Count).Msg("wrote target")
		default:
			ev.Str("kind", string(e.Kind)).Msg("event")
		}
	})
}
