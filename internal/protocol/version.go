package protocol

import "fmt"

// VersionNumber is a TLS protocol version as sent on the wire
type VersionNumber uint16

// The protocol versions, making grepping easier
const (
	VersionSSL30 VersionNumber = 0x0300
	VersionTLS10 VersionNumber = 0x0301
	VersionTLS11 VersionNumber = 0x0302
	VersionTLS12 VersionNumber = 0x0303
	VersionTLS13 VersionNumber = 0x0304
)

// SupportedVersions lists the versions that this package knows about.
// must be in sorted descending order
var SupportedVersions = []VersionNumber{
	VersionTLS13,
	VersionTLS12,
	VersionTLS11,
	VersionTLS10,
	VersionSSL30,
}

// IsSupportedVersion returns true if this package knows the version
func IsSupportedVersion(v VersionNumber) bool {
	for _, t := range SupportedVersions {
		if t == v {
			return true
		}
	}
	return false
}

func (vn VersionNumber) String() string {
	switch vn {
	case VersionSSL30:
		return "SSLv3"
	case VersionTLS10:
		return "TLS 1.0"
	case VersionTLS11:
		return "TLS 1.1"
	case VersionTLS12:
		return "TLS 1.2"
	case VersionTLS13:
		return "TLS 1.3"
	default:
		return fmt.Sprintf("unknown version (%#x)", uint16(vn))
	}
}
