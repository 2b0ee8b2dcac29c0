// Package wire implements the serialization of session records and the
// sizing rules for outgoing ClientHello messages.
package wire

import (
	"fmt"
	"time"

	"golang.org/x/crypto/cryptobyte"

	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
)

// recordVersion is the schema version of the session record encoding.
// Decoding rejects every other value.
const recordVersion = 1

// The optional fields of a session record, encoded as (tag, length,
// value) in strictly ascending tag order.
const (
	tagPeerCertificates uint8 = 1
	tagPeerSHA256       uint8 = 2
	tagTicket           uint8 = 3
	tagSignedCertTS     uint8 = 4
	tagOCSPResponse     uint8 = 5
	tagEarlyData        uint8 = 6
)

// A DecodeError is returned when a byte string is not a canonical
// session record encoding.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "session record: " + e.Reason }

func decodeError(format string, args ...interface{}) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

// A SessionRecord carries everything needed to resume a negotiated
// session. It is created by the handshake layer on handshake
// completion; this package only (de)serializes it.
//
// Exactly one of PeerCertificates and PeerSHA256 must be set: which
// one is a capture-time decision of the surrounding configuration.
type SessionRecord struct {
	ProtocolVersion protocol.VersionNumber
	CipherSuite     uint16
	// SessionID is at most 32 bytes long.
	SessionID    []byte
	MasterSecret []byte
	// CreatedAt is the creation time in seconds since the Unix epoch.
	CreatedAt uint64
	// Lifetime is the validity period in seconds. Zero means the
	// record never expires.
	Lifetime         uint32
	SessionIDContext []byte
	NotResumable     bool

	// PeerCertificates is the peer's certificate chain in DER,
	// leaf first. Mutually exclusive with PeerSHA256.
	PeerCertificates [][]byte
	// PeerSHA256 is the SHA-256 digest of the peer's leaf certificate.
	PeerSHA256 []byte

	Ticket               []byte
	SignedCertTimestamps []byte
	OCSPResponse         []byte

	EarlyDataEnabled bool
	MaxEarlyData     uint32
}

// Expired says if the record's lifetime has run out at the given time.
func (s *SessionRecord) Expired(now time.Time) bool {
	if s.Lifetime == 0 {
		return false
	}
	return s.CreatedAt+uint64(s.Lifetime) <= uint64(now.Unix())
}

// Clone returns a deep copy with an independent lifetime, safe to hand
// to another goroutine.
func (s *SessionRecord) Clone() *SessionRecord {
	c := *s
	c.SessionID = append([]byte(nil), s.SessionID...)
	c.MasterSecret = append([]byte(nil), s.MasterSecret...)
	c.SessionIDContext = append([]byte(nil), s.SessionIDContext...)
	c.PeerSHA256 = append([]byte(nil), s.PeerSHA256...)
	c.Ticket = append([]byte(nil), s.Ticket...)
	c.SignedCertTimestamps = append([]byte(nil), s.SignedCertTimestamps...)
	c.OCSPResponse = append([]byte(nil), s.OCSPResponse...)
	if s.PeerCertificates != nil {
		c.PeerCertificates = make([][]byte, len(s.PeerCertificates))
		for i, cert := range s.PeerCertificates {
			c.PeerCertificates[i] = append([]byte(nil), cert...)
		}
	}
	return &c
}

func (s *SessionRecord) marshal(b *cryptobyte.Builder) error {
	if len(s.SessionID) > protocol.MaxSessionIDLen {
		return fmt.Errorf("session ID too long: %d bytes", len(s.SessionID))
	}
	hasChain := len(s.PeerCertificates) > 0
	hasDigest := len(s.PeerSHA256) > 0
	if hasChain == hasDigest {
		return fmt.Errorf("exactly one of the peer certificate chain and the peer digest must be set")
	}
	if hasDigest && len(s.PeerSHA256) != protocol.SHA256DigestLen {
		return fmt.Errorf("peer digest must be %d bytes, got %d", protocol.SHA256DigestLen, len(s.PeerSHA256))
	}

	b.AddUint16(recordVersion)
	b.AddUint16(uint16(s.ProtocolVersion))
	b.AddUint16(s.CipherSuite)
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(s.SessionID)
	})
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(s.MasterSecret)
	})
	b.AddUint64(s.CreatedAt)
	b.AddUint32(s.Lifetime)
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(s.SessionIDContext)
	})
	if s.NotResumable {
		b.AddUint8(1)
	} else {
		b.AddUint8(0)
	}

	if hasChain {
		for _, cert := range s.PeerCertificates {
			if len(cert) == 0 {
				return fmt.Errorf("empty certificate in peer chain")
			}
		}
		addTag(b, tagPeerCertificates, func(b *cryptobyte.Builder) {
			for _, cert := range s.PeerCertificates {
				b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
					b.AddBytes(cert)
				})
			}
		})
	} else {
		addTag(b, tagPeerSHA256, func(b *cryptobyte.Builder) {
			b.AddBytes(s.PeerSHA256)
		})
	}
	if len(s.Ticket) > 0 {
		addTag(b, tagTicket, func(b *cryptobyte.Builder) {
			b.AddBytes(s.Ticket)
		})
	}
	if len(s.SignedCertTimestamps) > 0 {
		addTag(b, tagSignedCertTS, func(b *cryptobyte.Builder) {
			b.AddBytes(s.SignedCertTimestamps)
		})
	}
	if len(s.OCSPResponse) > 0 {
		addTag(b, tagOCSPResponse, func(b *cryptobyte.Builder) {
			b.AddBytes(s.OCSPResponse)
		})
	}
	if s.EarlyDataEnabled {
		addTag(b, tagEarlyData, func(b *cryptobyte.Builder) {
			b.AddUint32(s.MaxEarlyData)
		})
	}
	return nil
}

// Marshal encodes the record into a freshly allocated byte string.
func (s *SessionRecord) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	if err := s.marshal(&b); err != nil {
		return nil, err
	}
	return b.Bytes()
}

// MarshaledLen returns the exact length Marshal would produce.
func (s *SessionRecord) MarshaledLen() (int, error) {
	data, err := s.Marshal()
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// MarshalTo encodes the record into a caller-supplied buffer and
// returns the number of bytes written. The output is byte-identical to
// Marshal's. It fails if the buffer is too small.
func (s *SessionRecord) MarshalTo(dst []byte) (int, error) {
	b := cryptobyte.NewFixedBuilder(dst[:0])
	if err := s.marshal(b); err != nil {
		return 0, err
	}
	data, err := b.Bytes()
	if err != nil {
		return 0, fmt.Errorf("buffer too small for session record")
	}
	return len(data), nil
}

// ParseSessionRecord decodes a canonical session record encoding. It
// accepts exactly the byte strings Marshal produces: any deviation,
// including trailing data, is a DecodeError, and no partial record is
// ever returned.
func ParseSessionRecord(data []byte) (*SessionRecord, error) {
	s := cryptobyte.String(data)
	rec := &SessionRecord{}

	var version, protoVersion uint16
	if !s.ReadUint16(&version) {
		return nil, decodeError("truncated preamble")
	}
	if version != recordVersion {
		return nil, decodeError("unsupported schema version %d", version)
	}
	var sessionID, masterSecret, sidCtx cryptobyte.String
	var notResumable uint8
	if !s.ReadUint16(&protoVersion) ||
		!s.ReadUint16(&rec.CipherSuite) ||
		!s.ReadUint8LengthPrefixed(&sessionID) ||
		!s.ReadUint16LengthPrefixed(&masterSecret) ||
		!s.ReadUint64(&rec.CreatedAt) ||
		!s.ReadUint32(&rec.Lifetime) ||
		!s.ReadUint8LengthPrefixed(&sidCtx) ||
		!s.ReadUint8(&notResumable) {
		return nil, decodeError("truncated preamble")
	}
	rec.ProtocolVersion = protocol.VersionNumber(protoVersion)
	if len(sessionID) > protocol.MaxSessionIDLen {
		return nil, decodeError("session ID too long: %d bytes", len(sessionID))
	}
	if notResumable > 1 {
		return nil, decodeError("invalid boolean encoding")
	}
	// Empty fields stay nil so that decoding an encoded record
	// reproduces it structurally, not just byte for byte.
	if len(sessionID) > 0 {
		rec.SessionID = []byte(sessionID)
	}
	if len(masterSecret) > 0 {
		rec.MasterSecret = []byte(masterSecret)
	}
	if len(sidCtx) > 0 {
		rec.SessionIDContext = []byte(sidCtx)
	}
	rec.NotResumable = notResumable == 1

	lastTag := uint8(0)
	for !s.Empty() {
		var tag uint8
		var value cryptobyte.String
		if !s.ReadUint8(&tag) || !s.ReadUint16LengthPrefixed(&value) {
			return nil, decodeError("truncated optional field")
		}
		if tag <= lastTag {
			return nil, decodeError("optional field tags out of order")
		}
		lastTag = tag
		switch tag {
		case tagPeerCertificates:
			for !value.Empty() {
				var cert cryptobyte.String
				if !value.ReadUint24LengthPrefixed(&cert) || cert.Empty() {
					return nil, decodeError("malformed peer certificate chain")
				}
				rec.PeerCertificates = append(rec.PeerCertificates, []byte(cert))
			}
			if len(rec.PeerCertificates) == 0 {
				return nil, decodeError("empty peer certificate chain")
			}
		case tagPeerSHA256:
			if len(value) != protocol.SHA256DigestLen {
				return nil, decodeError("peer digest must be %d bytes, got %d", protocol.SHA256DigestLen, len(value))
			}
			rec.PeerSHA256 = []byte(value)
		case tagTicket:
			if value.Empty() {
				return nil, decodeError("empty ticket")
			}
			rec.Ticket = []byte(value)
		case tagSignedCertTS:
			if value.Empty() {
				return nil, decodeError("empty signed certificate timestamp list")
			}
			rec.SignedCertTimestamps = []byte(value)
		case tagOCSPResponse:
			if value.Empty() {
				return nil, decodeError("empty OCSP response")
			}
			rec.OCSPResponse = []byte(value)
		case tagEarlyData:
			if !value.ReadUint32(&rec.MaxEarlyData) || !value.Empty() {
				return nil, decodeError("malformed early data field")
			}
			rec.EarlyDataEnabled = true
		default:
			return nil, decodeError("unknown optional field tag %d", tag)
		}
	}

	hasChain := len(rec.PeerCertificates) > 0
	hasDigest := len(rec.PeerSHA256) > 0
	if hasChain == hasDigest {
		return nil, decodeError("exactly one of the peer certificate chain and the peer digest must be present")
	}
	return rec, nil
}

func addTag(b *cryptobyte.Builder, tag uint8, value cryptobyte.BuilderContinuation) {
	b.AddUint8(tag)
	b.AddUint16LengthPrefixed(value)
}
