// Package metrics provides a logging.Tracer that exports negotiation
// and session cache metrics via Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tlsconf-go/tlsconf-go/logging"
)

const metricNamespace = "tlsconf"

var (
	cipherListsBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "cipher_lists_built_total",
			Help:      "Cipher preference lists compiled",
		},
	)
	sessionsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "session_cache_stored_total",
			Help:      "Session records stored in the cache",
		},
		[]string{"replaced"},
	)
	sessionsEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "session_cache_evicted_total",
			Help:      "Session records evicted over capacity",
		},
	)
	sessionLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "session_cache_lookups_total",
			Help:      "Session cache lookups",
		},
		[]string{"result"},
	)
	sessionRemovals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "session_cache_removals_total",
			Help:      "Explicit session cache removal attempts",
		},
		[]string{"result"},
	)
	sessionsFlushed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "session_cache_flushed_total",
			Help:      "Session records removed by expiry sweeps",
		},
	)
)

type tracer struct{}

var _ logging.Tracer = &tracer{}

// NewTracer creates a new metrics tracer, registering its collectors
// with the given registerer. Passing nil uses the default registerer.
func NewTracer(registerer prometheus.Registerer) logging.Tracer {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		cipherListsBuilt,
		sessionsStored,
		sessionsEvicted,
		sessionLookups,
		sessionRemovals,
		sessionsFlushed,
	} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return &tracer{}
}

func (t *tracer) BuiltCipherPreferences(string, logging.CipherPreferenceList) {
	cipherListsBuilt.Inc()
}

func (t *tracer) StoredSession(_ []byte, replaced bool) {
	sessionsStored.WithLabelValues(boolLabel(replaced)).Inc()
}

func (t *tracer) EvictedSession([]byte) {
	sessionsEvicted.Inc()
}

func (t *tracer) RetrievedSession(_ []byte, ok bool) {
	sessionLookups.WithLabelValues(hitLabel(ok)).Inc()
}

func (t *tracer) RemovedSession(_ []byte, ok bool) {
	if ok {
		sessionRemovals.WithLabelValues("removed").Inc()
	} else {
		sessionRemovals.WithLabelValues("mismatch").Inc()
	}
}

func (t *tracer) FlushedSessions(n int) {
	sessionsFlushed.Add(float64(n))
}

func (t *tracer) Close() {}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func hitLabel(ok bool) string {
	if ok {
		return "hit"
	}
	return "miss"
}
