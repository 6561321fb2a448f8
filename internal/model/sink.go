package model

// EventSink receives the events a single Process call emits, in the exact
// order §4.3.1's event-ordering contract demands. Implementations must not
// reorder or buffer past a flush boundary between messages.
type EventSink interface {
	Emit(Event)
}

// DiagnosticSink receives free-form, single-line diagnostics for the three
// soft-error kinds: parse errors, duplicate order ids, unknown cancel ids.
// The test suite only requires that the documented substring anchors appear.
type DiagnosticSink interface {
	Diagnose(message string)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) { f(e) }

// DiagnosticSinkFunc adapts a function to a DiagnosticSink.
type DiagnosticSinkFunc func(string)

func (f DiagnosticSinkFunc) Diagnose(msg string) { f(msg) }

// RecordingEventSink collects events in memory, for tests.
type RecordingEventSink struct {
	Events []Event
}

func (r *RecordingEventSink) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// WireLines renders every recorded event to its wire-format line, in order.
func (r *RecordingEventSink) WireLines() []string {
	lines := make([]string, len(r.Events))
	for i, e := range r.Events {
		lines[i] = e.WireLine()
	}
	return lines
}

// RecordingDiagnosticSink collects diagnostics in memory, for tests.
type RecordingDiagnosticSink struct {
	Messages []string
}

func (r *RecordingDiagnosticSink) Diagnose(msg string) {
	r.Messages = append(r.Messages, msg)
}
