// Package tlsconf prepares the negotiation state of a TLS/DTLS
// context ahead of any handshake: the ordered cipher suite preference
// list, the curve preference list, the session record serialization
// and the bounded session cache. It performs no handshake, no
// cryptography and no I/O of its own.
package tlsconf

import (
	"github.com/tlsconf-go/tlsconf-go/internal/ciphersuite"
	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
	"github.com/tlsconf-go/tlsconf-go/internal/utils"
	"github.com/tlsconf-go/tlsconf-go/internal/wire"
)

type (
	// A CipherPreference is one entry of a compiled cipher preference
	// list: a cipher suite ID and the flag saying whether its
	// equal-preference group continues with the next entry.
	CipherPreference = ciphersuite.Preference
	// A CipherPreferenceList is an ordered cipher preference list. It
	// is immutable once built and safe for concurrent reads.
	CipherPreferenceList = ciphersuite.PreferenceList
	// A SessionRecord carries everything needed to resume a session.
	SessionRecord = wire.SessionRecord
	// A CurveID is an elliptic curve / named group identifier.
	CurveID = protocol.CurveID
	// A VersionNumber is a TLS protocol version.
	VersionNumber = protocol.VersionNumber
	// A ByteCount is a number of bytes.
	ByteCount = protocol.ByteCount
	// A Clock reads the current time. It can be set on a Config to
	// control session expiry decisions in tests.
	Clock = utils.Clock
)

// The protocol versions
const (
	VersionSSL30 = protocol.VersionSSL30
	VersionTLS10 = protocol.VersionTLS10
	VersionTLS11 = protocol.VersionTLS11
	VersionTLS12 = protocol.VersionTLS12
	VersionTLS13 = protocol.VersionTLS13
)

// The named groups
const (
	CurveP256   = protocol.CurveP256
	CurveP384   = protocol.CurveP384
	CurveP521   = protocol.CurveP521
	CurveX25519 = protocol.CurveX25519
)

// ErrEmptyCipherList is returned when a cipher rule string, although
// syntactically valid, selects no cipher suite at all.
var ErrEmptyCipherList = ciphersuite.ErrEmptyCipherList

// CipherSuiteName returns the canonical name of a cipher suite ID, or
// its hex form for unknown IDs.
func CipherSuiteName(id uint16) string { return ciphersuite.Name(id) }

// ParseSessionRecord decodes a serialized session record. It accepts
// exactly the canonical encoding produced by SessionRecord.Marshal.
func ParseSessionRecord(data []byte) (*SessionRecord, error) {
	return wire.ParseSessionRecord(data)
}

// PaddedClientHelloLen maps the length of an otherwise-complete
// ClientHello body, the padding extension excluded, to the total
// length the padded message must occupy.
func PaddedClientHelloLen(unpadded ByteCount) ByteCount {
	return wire.PaddedClientHelloLen(unpadded)
}
