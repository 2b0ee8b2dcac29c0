package protocol

import "fmt"

// A CurveID is the IANA identifier of an elliptic curve / named group
type CurveID uint16

// The named groups, as registered with IANA
const (
	CurveP256   CurveID = 23
	CurveP384   CurveID = 24
	CurveP521   CurveID = 25
	CurveX25519 CurveID = 29
)

func (c CurveID) String() string {
	switch c {
	case CurveP256:
		return "P-256"
	case CurveP384:
		return "P-384"
	case CurveP521:
		return "P-521"
	case CurveX25519:
		return "X25519"
	default:
		return fmt.Sprintf("unknown curve (%d)", uint16(c))
	}
}
