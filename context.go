package tlsconf

import (
	"sync"

	"github.com/tlsconf-go/tlsconf-go/internal/ciphersuite"
	"github.com/tlsconf-go/tlsconf-go/logging"
)

// A Context holds the negotiation state shared by every handshake of
// one configuration: the compiled cipher preference list, the curve
// preferences and the session cache. The preference lists are
// immutable once built; replacing one is all-or-nothing, so a failed
// update never disturbs the list already in place.
type Context struct {
	mutex sync.RWMutex

	config *Config
	tracer logging.Tracer

	cipherPrefs CipherPreferenceList
	curves      []CurveID

	sessionCache *SessionCache
}

// NewContext compiles the given configuration. It fails with a
// ConfigError if the cipher rule string or the curve list is invalid;
// nothing is retained in that case.
func NewContext(config *Config) (*Context, error) {
	config = populateConfig(config)
	prefs, err := ciphersuite.ParseRules(config.CipherRules)
	if err != nil {
		return nil, &ConfigError{Setting: "CipherRules", Err: err}
	}
	curves, err := ciphersuite.ParseCurves(config.CurvePreferences)
	if err != nil {
		return nil, &ConfigError{Setting: "CurvePreferences", Err: err}
	}
	c := &Context{
		config:       config,
		tracer:       config.Tracer,
		cipherPrefs:  prefs,
		curves:       curves,
		sessionCache: newSessionCache(config.SessionCacheSize, config.Clock, config.Tracer),
	}
	c.tracer.BuiltCipherPreferences(config.CipherRules, prefs)
	return c, nil
}

// CipherPreferences returns the compiled preference list. The caller
// must not modify it.
func (c *Context) CipherPreferences() CipherPreferenceList {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cipherPrefs
}

// CurvePreferences returns the curve preference list, most preferred
// first. The caller must not modify it.
func (c *Context) CurvePreferences() []CurveID {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.curves
}

// SessionCache returns the context's session cache.
func (c *Context) SessionCache() *SessionCache { return c.sessionCache }

// PeerSHA256Digest says if session records should capture only the
// digest of the peer's leaf certificate.
func (c *Context) PeerSHA256Digest() bool { return c.config.PeerSHA256Digest }

// SetCipherRules recompiles the cipher preference list from a new rule
// string. On error the previous list stays in effect.
func (c *Context) SetCipherRules(rules string) error {
	prefs, err := ciphersuite.ParseRules(rules)
	if err != nil {
		return &ConfigError{Setting: "CipherRules", Err: err}
	}
	c.mutex.Lock()
	c.cipherPrefs = prefs
	c.mutex.Unlock()
	c.tracer.BuiltCipherPreferences(rules, prefs)
	return nil
}

// SetCurvePreferences replaces the curve preference list. On error the
// previous list stays in effect.
func (c *Context) SetCurvePreferences(list string) error {
	curves, err := ciphersuite.ParseCurves(list)
	if err != nil {
		return &ConfigError{Setting: "CurvePreferences", Err: err}
	}
	c.mutex.Lock()
	c.curves = curves
	c.mutex.Unlock()
	return nil
}

// Close releases the context's tracer.
func (c *Context) Close() error {
	c.tracer.Close()
	return nil
}
