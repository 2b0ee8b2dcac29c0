package ciphersuite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
)

var curvesByName = map[string]protocol.CurveID{
	"P-256":  protocol.CurveP256,
	"P-384":  protocol.CurveP384,
	"P-521":  protocol.CurveP521,
	"X25519": protocol.CurveX25519,
}

// ParseCurves parses a colon-separated curve preference list, e.g.
// "X25519:P-256". Unlike cipher rules there are no operators or
// classes, and every name must be recognized.
func ParseCurves(list string) ([]protocol.CurveID, error) {
	if list == "" {
		return nil, errors.New("empty curve list")
	}
	names := strings.Split(list, ":")
	curves := make([]protocol.CurveID, 0, len(names))
	for _, name := range names {
		id, ok := curvesByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown curve: %q", name)
		}
		curves = append(curves, id)
	}
	return curves, nil
}
