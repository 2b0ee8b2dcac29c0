package tlsconf

import (
	"github.com/tlsconf-go/tlsconf-go/internal/utils"
	"github.com/tlsconf-go/tlsconf-go/logging"
)

// The defaults applied by populateConfig, making grepping easier
const (
	// DefaultCipherRules enables every suite of the catalog except
	// those without encryption, in catalog order.
	DefaultCipherRules = "ALL"
	// DefaultCurvePreferences prefers X25519, then the NIST curves.
	DefaultCurvePreferences = "X25519:P-256:P-384"
)

// A Config configures a negotiation Context.
type Config struct {
	// CipherRules is the cipher rule string compiled into the
	// context's preference list. If empty, DefaultCipherRules is used.
	CipherRules string
	// CurvePreferences is the colon-separated curve preference list.
	// If empty, DefaultCurvePreferences is used.
	CurvePreferences string
	// SessionCacheSize bounds the number of session records kept for
	// resumption. Zero means the cache is unbounded.
	SessionCacheSize int
	// PeerSHA256Digest tells the handshake layer to capture only the
	// SHA-256 digest of the peer's leaf certificate in session
	// records, instead of the full chain.
	PeerSHA256Digest bool
	// Tracer receives configuration and session cache events.
	Tracer logging.Tracer
	// Clock is used for session expiry decisions. If nil, the system
	// clock is used.
	Clock Clock
}

// Clone clones a Config
func (c *Config) Clone() *Config {
	copy := *c
	return &copy
}

// populateConfig populates fields in the Config with their default
// values, if none are set. It may be called with nil.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	} else {
		config = config.Clone()
	}
	if config.CipherRules == "" {
		config.CipherRules = DefaultCipherRules
	}
	if config.CurvePreferences == "" {
		config.CurvePreferences = DefaultCurvePreferences
	}
	if config.Tracer == nil {
		config.Tracer = logging.NullTracer
	}
	if config.Clock == nil {
		config.Clock = utils.DefaultClock{}
	}
	return config
}
