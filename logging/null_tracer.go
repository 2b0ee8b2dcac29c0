package logging

// The NullTracer is a Tracer that does nothing.
// It is useful for embedding. Don't modify this variable!
var NullTracer Tracer = &nullTracer{}

type nullTracer struct{}

func (n nullTracer) BuiltCipherPreferences(string, CipherPreferenceList) {}
func (n nullTracer) StoredSession([]byte, bool)                         {}
func (n nullTracer) EvictedSession([]byte)                              {}
func (n nullTracer) RetrievedSession([]byte, bool)                      {}
func (n nullTracer) RemovedSession([]byte, bool)                        {}
func (n nullTracer) FlushedSessions(int)                                {}
func (n nullTracer) Close()                                             {}
