// Package logging defines the tracing interface for tlsconf.
// This package should not be considered stable
package logging

import (
	"github.com/tlsconf-go/tlsconf-go/internal/ciphersuite"
	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
	"github.com/tlsconf-go/tlsconf-go/internal/wire"
)

type (
	// A CipherPreference is one entry of a compiled preference list.
	CipherPreference = ciphersuite.Preference
	// A CipherPreferenceList is an ordered cipher preference list.
	CipherPreferenceList = ciphersuite.PreferenceList
	// A SessionRecord is a serializable session record.
	SessionRecord = wire.SessionRecord
	// A CurveID is an elliptic curve / named group identifier.
	CurveID = protocol.CurveID
	// A VersionNumber is a TLS protocol version.
	VersionNumber = protocol.VersionNumber
)

// A Tracer records configuration and session cache events.
type Tracer interface {
	// BuiltCipherPreferences is called after a rule string compiled
	// successfully.
	BuiltCipherPreferences(rules string, prefs CipherPreferenceList)
	// StoredSession is called when a session record enters the cache.
	// replaced says if it displaced a record with the same ID.
	StoredSession(sessionID []byte, replaced bool)
	// EvictedSession is called for every record dropped over capacity.
	EvictedSession(sessionID []byte)
	// RetrievedSession is called for every lookup.
	RetrievedSession(sessionID []byte, ok bool)
	// RemovedSession is called for every explicit removal attempt.
	RemovedSession(sessionID []byte, ok bool)
	// FlushedSessions is called after an expiry sweep removed n records.
	FlushedSessions(n int)
	// Close is called when the configuration owning the tracer is no
	// longer used.
	Close()
}
