package qlog

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tlsconf-go/tlsconf-go/internal/mocks"
	"github.com/tlsconf-go/tlsconf-go/logging"
)

type captureWriter struct {
	bytes.Buffer
	closed bool
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

// records splits the written stream into its JSON-SEQ records and
// unmarshals every one of them.
func records(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var recs []map[string]interface{}
	for _, raw := range bytes.Split(buf.Bytes(), []byte{recordSeparator}) {
		if len(raw) == 0 {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &m))
		recs = append(recs, m)
	}
	return recs
}

func mockClock(t *testing.T, times ...time.Time) *mocks.MockClock {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	for _, ts := range times {
		clock.EXPECT().Now().Return(ts)
	}
	return clock
}

func TestTracerWritesTheHeader(t *testing.T) {
	buf := &captureWriter{}
	tracer := newTracer(buf, mockClock(t, time.Unix(0, 0)))
	tracer.Close()
	require.True(t, buf.closed)

	recs := records(t, &buf.Buffer)
	require.Len(t, recs, 1)
	require.Equal(t, "JSON-SEQ", recs[0]["qlog_format"])
	require.Equal(t, "0.3", recs[0]["qlog_version"])
}

func TestTracerRecordsCipherListEvents(t *testing.T) {
	reference := time.Unix(1000, 0)
	buf := &captureWriter{}
	tracer := newTracer(buf, mockClock(t, reference, reference.Add(1250*time.Microsecond)))

	tracer.BuiltCipherPreferences("AES128-SHA:AES256-SHA", logging.CipherPreferenceList{
		{ID: 0x002f},
		{ID: 0x0035},
	})

	recs := records(t, &buf.Buffer)
	require.Len(t, recs, 2)
	ev := recs[1]
	require.Equal(t, 1.25, ev["time"])
	require.Equal(t, "negotiation:cipher_list_built", ev["name"])
	data := ev["data"].(map[string]interface{})
	require.Equal(t, "AES128-SHA:AES256-SHA", data["rules"])
	require.Equal(t, []interface{}{"AES128-SHA", "AES256-SHA"}, data["cipher_list"])
}

func TestTracerRecordsSessionEvents(t *testing.T) {
	reference := time.Unix(1000, 0)
	times := []time.Time{reference}
	for i := 0; i < 5; i++ {
		times = append(times, reference.Add(time.Duration(i+1)*time.Millisecond))
	}
	buf := &captureWriter{}
	tracer := newTracer(buf, mockClock(t, times...))

	tracer.StoredSession([]byte{0xde, 0xad}, true)
	tracer.EvictedSession([]byte{0xbe, 0xef})
	tracer.RetrievedSession([]byte{0x01}, false)
	tracer.RemovedSession([]byte{0x02}, true)
	tracer.FlushedSessions(3)

	recs := records(t, &buf.Buffer)
	require.Len(t, recs, 6)

	ev := recs[1]
	require.Equal(t, "session:stored", ev["name"])
	require.Equal(t, float64(1), ev["time"])
	data := ev["data"].(map[string]interface{})
	require.Equal(t, "dead", data["session_id"])
	require.Equal(t, true, data["replaced"])

	ev = recs[2]
	require.Equal(t, "session:evicted", ev["name"])
	require.Equal(t, "beef", ev["data"].(map[string]interface{})["session_id"])

	ev = recs[3]
	require.Equal(t, "session:retrieved", ev["name"])
	require.Equal(t, false, ev["data"].(map[string]interface{})["hit"])

	ev = recs[4]
	require.Equal(t, "session:removed", ev["name"])
	require.Equal(t, true, ev["data"].(map[string]interface{})["ok"])

	ev = recs[5]
	require.Equal(t, "session:flushed", ev["name"])
	require.Equal(t, float64(3), ev["data"].(map[string]interface{})["count"])
}
