// Package qlog writes negotiation and session cache events as a
// JSON-SEQ event stream, in the spirit of the qlog format.
package qlog

import (
	"bytes"
	"io"
	"log"
	"sync"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/tlsconf-go/tlsconf-go/internal/utils"
	"github.com/tlsconf-go/tlsconf-go/logging"
)

// Each event stream record is prefixed with a record separator (0x1e)
// and terminated with a newline, per RFC 7464.
const recordSeparator = 0x1e

type header struct{}

var _ gojay.MarshalerJSONObject = header{}

func (header) IsNil() bool { return false }
func (header) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("qlog_format", "JSON-SEQ")
	enc.StringKey("qlog_version", "0.3")
	enc.StringKey("title", "tlsconf event trace")
}

type tracer struct {
	mutex sync.Mutex

	w             io.WriteCloser
	buf           *bytes.Buffer
	enc           *gojay.Encoder
	referenceTime time.Time
	clock         utils.Clock
}

var _ logging.Tracer = &tracer{}

// NewTracer creates a tracer writing an event stream to w.
func NewTracer(w io.WriteCloser) logging.Tracer {
	return newTracer(w, utils.DefaultClock{})
}

func newTracer(w io.WriteCloser, clock utils.Clock) *tracer {
	buf := &bytes.Buffer{}
	t := &tracer{
		w:             w,
		buf:           buf,
		enc:           gojay.NewEncoder(buf),
		referenceTime: clock.Now(),
		clock:         clock,
	}
	t.writeRecord(header{})
	return t
}

func (t *tracer) BuiltCipherPreferences(rules string, prefs logging.CipherPreferenceList) {
	t.recordEvent(eventCipherPreferencesBuilt{Rules: rules, Prefs: prefs})
}

func (t *tracer) StoredSession(sessionID []byte, replaced bool) {
	t.recordEvent(eventSessionStored{SessionID: sessionID, Replaced: replaced})
}

func (t *tracer) EvictedSession(sessionID []byte) {
	t.recordEvent(eventSessionEvicted{SessionID: sessionID})
}

func (t *tracer) RetrievedSession(sessionID []byte, ok bool) {
	t.recordEvent(eventSessionRetrieved{SessionID: sessionID, Hit: ok})
}

func (t *tracer) RemovedSession(sessionID []byte, ok bool) {
	t.recordEvent(eventSessionRemoved{SessionID: sessionID, OK: ok})
}

func (t *tracer) FlushedSessions(n int) {
	t.recordEvent(eventSessionsFlushed{Count: n})
}

func (t *tracer) Close() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if err := t.w.Close(); err != nil {
		log.Printf("closing qlog writer failed: %s", err)
	}
}

func (t *tracer) recordEvent(details eventDetails) {
	t.writeRecord(event{
		RelativeTime: t.clock.Now().Sub(t.referenceTime),
		eventDetails: details,
	})
}

func (t *tracer) writeRecord(rec gojay.MarshalerJSONObject) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.buf.Reset()
	t.buf.WriteByte(recordSeparator)
	if err := t.enc.Encode(rec); err != nil {
		log.Printf("encoding qlog event failed: %s", err)
		return
	}
	t.buf.WriteByte('\n')
	if _, err := t.w.Write(t.buf.Bytes()); err != nil {
		log.Printf("writing qlog event failed: %s", err)
	}
}
