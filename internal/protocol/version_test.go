package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionStringer(t *testing.T) {
	require.Equal(t, "SSLv3", VersionSSL30.String())
	require.Equal(t, "TLS 1.0", VersionTLS10.String())
	require.Equal(t, "TLS 1.2", VersionTLS12.String())
	require.Equal(t, "TLS 1.3", VersionTLS13.String())
	require.Equal(t, "unknown version (0x1234)", VersionNumber(0x1234).String())
}

func TestIsSupportedVersion(t *testing.T) {
	for _, v := range SupportedVersions {
		require.True(t, IsSupportedVersion(v))
	}
	require.False(t, IsSupportedVersion(VersionNumber(0x7f1c)))
}

func TestCurveStringer(t *testing.T) {
	require.Equal(t, "P-256", CurveP256.String())
	require.Equal(t, "X25519", CurveX25519.String())
	require.Equal(t, "unknown curve (1234)", CurveID(1234).String())
}
