package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
)

func fullRecord() *SessionRecord {
	return &SessionRecord{
		ProtocolVersion: protocol.VersionTLS12,
		CipherSuite:     0xc02f,
		SessionID:       []byte{0xde, 0xad, 0xbe, 0xef},
		MasterSecret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef"),
		CreatedAt:       0x00000001_00000002, // crosses the 32-bit boundary
		Lifetime:        7200,
		SessionIDContext: []byte{
			0x42,
		},
		NotResumable: true,
		PeerCertificates: [][]byte{
			[]byte("leaf certificate"),
			[]byte("intermediate"),
		},
		Ticket:               []byte("ticket bytes"),
		SignedCertTimestamps: []byte("scts"),
		OCSPResponse:         []byte("ocsp"),
		EarlyDataEnabled:     true,
		MaxEarlyData:         16384,
	}
}

func digestRecord() *SessionRecord {
	return &SessionRecord{
		ProtocolVersion: protocol.VersionTLS10,
		CipherSuite:     0x002f,
		MasterSecret:    []byte("secret"),
		CreatedAt:       1234567890,
		PeerSHA256:      make([]byte, protocol.SHA256DigestLen),
	}
}

func TestRoundTrip(t *testing.T) {
	// The third record leaves every length-prefixed preamble field
	// empty: decoding must keep those fields nil, so that the decoded
	// record is structurally equal to the original, not just
	// re-encodable to the same bytes.
	bare := &SessionRecord{
		ProtocolVersion: protocol.VersionTLS12,
		CipherSuite:     0x009c,
		PeerSHA256:      make([]byte, protocol.SHA256DigestLen),
	}
	for _, rec := range []*SessionRecord{fullRecord(), digestRecord(), bare} {
		data, err := rec.Marshal()
		require.NoError(t, err)
		parsed, err := ParseSessionRecord(data)
		require.NoError(t, err)
		require.Equal(t, rec, parsed)

		// Re-encoding the parsed record reproduces the input.
		data2, err := parsed.Marshal()
		require.NoError(t, err)
		require.Equal(t, data, data2)
	}
}

func TestMarshaledLen(t *testing.T) {
	rec := fullRecord()
	data, err := rec.Marshal()
	require.NoError(t, err)
	n, err := rec.MarshaledLen()
	require.NoError(t, err)
	require.Equal(t, len(data), n)
}

func TestMarshalTo(t *testing.T) {
	rec := fullRecord()
	data, err := rec.Marshal()
	require.NoError(t, err)

	buf := make([]byte, len(data))
	n, err := rec.MarshalTo(buf)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf[:n])

	_, err = rec.MarshalTo(make([]byte, len(data)-1))
	require.Error(t, err)
}

func TestMarshalRejectsOverlongSessionID(t *testing.T) {
	rec := digestRecord()
	rec.SessionID = make([]byte, protocol.MaxSessionIDLen+1)
	_, err := rec.Marshal()
	require.ErrorContains(t, err, "session ID too long")
}

func TestMarshalRequiresExactlyOnePeerField(t *testing.T) {
	rec := digestRecord()
	rec.PeerCertificates = [][]byte{[]byte("leaf")}
	_, err := rec.Marshal()
	require.ErrorContains(t, err, "exactly one")

	rec = digestRecord()
	rec.PeerSHA256 = nil
	_, err = rec.Marshal()
	require.ErrorContains(t, err, "exactly one")
}

func TestMarshalRejectsBadDigestLength(t *testing.T) {
	rec := digestRecord()
	rec.PeerSHA256 = make([]byte, 31)
	_, err := rec.Marshal()
	require.ErrorContains(t, err, "peer digest")
}

func TestMarshalRejectsEmptyCertificate(t *testing.T) {
	rec := fullRecord()
	rec.PeerCertificates = [][]byte{[]byte("leaf"), {}}
	_, err := rec.Marshal()
	require.ErrorContains(t, err, "empty certificate")
}

func TestParseRejectsTrailingData(t *testing.T) {
	data, err := digestRecord().Marshal()
	require.NoError(t, err)
	_, err = ParseSessionRecord(append(data, 0x00))
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	data, err := digestRecord().Marshal()
	require.NoError(t, err)
	data[0] = 0xff
	_, err = ParseSessionRecord(data)
	require.ErrorContains(t, err, "unsupported schema version")
}

func TestParseRejectsTruncation(t *testing.T) {
	// Every proper prefix of the minimal record is invalid: either the
	// preamble or the digest field is truncated, or the digest field is
	// missing entirely.
	data, err := digestRecord().Marshal()
	require.NoError(t, err)
	for i := range data {
		_, err := ParseSessionRecord(data[:i])
		require.Errorf(t, err, "truncation to %d bytes accepted", i)
	}
}

func TestParseRejectsOutOfOrderTags(t *testing.T) {
	data, err := digestRecord().Marshal()
	require.NoError(t, err)
	// The digest field carries tag 2; a following tag must be larger.
	data = append(data, 0x01, 0x00, 0x00)
	_, err = ParseSessionRecord(data)
	require.ErrorContains(t, err, "out of order")
}

func TestParseRejectsUnknownTags(t *testing.T) {
	data, err := digestRecord().Marshal()
	require.NoError(t, err)
	data = append(data, 0x07, 0x00, 0x00)
	_, err = ParseSessionRecord(data)
	require.ErrorContains(t, err, "unknown optional field tag")
}

func TestParseRejectsBadBooleanEncoding(t *testing.T) {
	rec := digestRecord()
	data, err := rec.Marshal()
	require.NoError(t, err)
	// The resumability flag is the last preamble byte before the
	// optional fields.
	idx := len(data) - (1 + 2 + int(protocol.SHA256DigestLen)) - 1
	require.Equal(t, byte(0), data[idx])
	data[idx] = 2
	_, err = ParseSessionRecord(data)
	require.ErrorContains(t, err, "invalid boolean")
}

func TestParseRejectsMissingPeerFields(t *testing.T) {
	rec := digestRecord()
	data, err := rec.Marshal()
	require.NoError(t, err)
	// Strip the digest field, leaving a record with neither peer field.
	data = data[:len(data)-(1+2+int(protocol.SHA256DigestLen))]
	_, err = ParseSessionRecord(data)
	require.ErrorContains(t, err, "exactly one")
}

func TestExpired(t *testing.T) {
	rec := &SessionRecord{CreatedAt: 1000, Lifetime: 10}
	require.False(t, rec.Expired(time.Unix(1009, 0)))
	require.True(t, rec.Expired(time.Unix(1010, 0)))
	require.True(t, rec.Expired(time.Unix(2000, 0)))

	// A zero lifetime means the record never expires.
	rec = &SessionRecord{CreatedAt: 1000}
	require.False(t, rec.Expired(time.Unix(1<<40, 0)))
}

func TestClone(t *testing.T) {
	rec := fullRecord()
	clone := rec.Clone()
	require.Equal(t, rec, clone)

	clone.SessionID[0] = 0xff
	clone.PeerCertificates[0][0] = 0xff
	clone.Ticket[0] = 0xff
	require.Equal(t, byte(0xde), rec.SessionID[0])
	require.Equal(t, byte('l'), rec.PeerCertificates[0][0])
	require.Equal(t, byte('t'), rec.Ticket[0])
}
