package types

// EventKind identifies what the engine was doing when it emitted an Event.
type EventKind string

const (
	EventModDeclared   EventKind = "mod_declared"
	EventIncludeRead   EventKind = "include_read"
	EventSearchStarted EventKind = "search_started"
	EventLineExamined  EventKind = "line_examined"
	EventAnchorFound   EventKind = "anchor_found"
	EventSourceRead    EventKind = "source_read"
	EventInserted      EventKind = "inserted"
	EventTargetWritten EventKind = "target_written"
)

// Event is one step of the engine's progress trace.
//
// Line is 1-based and refers to the document named by Path when Path is set,
// otherwise to the document being searched. Count carries a line count for
// read, insert and write events.
type Event struct {
	Kind  EventKind
	Mod   string
	Term  string
	Path  string
	Line  int
	Text  string
	Count int
}

// Observer receives engine events. Implementations must not retain the
// event beyond the call.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// NopObserver discards every event.
var NopObserver Observer = ObserverFunc(func(Event) {})

// ObserverOrNop returns o, or NopObserver when o is nil.
func ObserverOrNop(o Observer) Observer {
	if o == nil {
		return NopObserver
	}
	return o
}
