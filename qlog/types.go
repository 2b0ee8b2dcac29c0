package qlog

type category uint8

const (
	categoryNegotiation category = iota
	categorySession
)

func (c category) String() string {
	switch c {
	case categoryNegotiation:
		return "negotiation"
	case categorySession:
		return "session"
	default:
		panic("unknown event category")
	}
}
