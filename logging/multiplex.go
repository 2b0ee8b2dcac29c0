package logging

// NewMultiplexedTracer creates a new tracer that multiplexes events to
// all given tracers.
func NewMultiplexedTracer(tracers ...Tracer) Tracer {
	if len(tracers) == 0 {
		return NullTracer
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &tracerMultiplexer{tracers}
}

type tracerMultiplexer struct {
	tracers []Tracer
}

var _ Tracer = &tracerMultiplexer{}

func (m *tracerMultiplexer) BuiltCipherPreferences(rules string, prefs CipherPreferenceList) {
	for _, t := range m.tracers {
		t.BuiltCipherPreferences(rules, prefs)
	}
}

func (m *tracerMultiplexer) StoredSession(sessionID []byte, replaced bool) {
	for _, t := range m.tracers {
		t.StoredSession(sessionID, replaced)
	}
}

func (m *tracerMultiplexer) EvictedSession(sessionID []byte) {
	for _, t := range m.tracers {
		t.EvictedSession(sessionID)
	}
}

func (m *tracerMultiplexer) RetrievedSession(sessionID []byte, ok bool) {
	for _, t := range m.tracers {
		t.RetrievedSession(sessionID, ok)
	}
}

func (m *tracerMultiplexer) RemovedSession(sessionID []byte, ok bool) {
	for _, t := range m.tracers {
		t.RemovedSession(sessionID, ok)
	}
}

func (m *tracerMultiplexer) FlushedSessions(n int) {
	for _, t := range m.tracers {
		t.FlushedSessions(n)
	}
}

func (m *tracerMultiplexer) Close() {
	for _, t := range m.tracers {
		t.Close()
	}
}
