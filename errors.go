package tlsconf

// A ConfigError reports an invalid configuration value. It is always
// returned synchronously at configuration time, and the configuration
// that was in place before the failing call stays in effect.
type ConfigError struct {
	// Setting names the Config field that was rejected.
	Setting string
	Err     error
}

func (e *ConfigError) Error() string {
	return "tlsconf: invalid " + e.Setting + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }
