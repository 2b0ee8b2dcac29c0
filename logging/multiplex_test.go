package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type countingTracer struct {
	Tracer
	calls int
}

func (t *countingTracer) StoredSession([]byte, bool) { t.calls++ }
func (t *countingTracer) FlushedSessions(int)        { t.calls++ }
func (t *countingTracer) Close()                     { t.calls++ }

func TestMultiplexingWithZeroTracers(t *testing.T) {
	require.Equal(t, NullTracer, NewMultiplexedTracer())
}

func TestMultiplexingWithASingleTracer(t *testing.T) {
	tr := &countingTracer{Tracer: NullTracer}
	require.Equal(t, Tracer(tr), NewMultiplexedTracer(tr))
}

func TestMultiplexingEvents(t *testing.T) {
	t1 := &countingTracer{Tracer: NullTracer}
	t2 := &countingTracer{Tracer: NullTracer}
	tracer := NewMultiplexedTracer(t1, t2)

	tracer.StoredSession([]byte{0x42}, false)
	tracer.FlushedSessions(3)
	tracer.Close()
	require.Equal(t, 3, t1.calls)
	require.Equal(t, 3, t2.calls)
}
