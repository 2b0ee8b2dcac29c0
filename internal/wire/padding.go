package wire

import "github.com/tlsconf-go/tlsconf-go/internal/protocol"

// Padding works around middleboxes that get confused by ClientHello
// messages between 256 and 511 bytes: those are padded up to 512
// bytes with a padding extension.
const (
	paddingThreshold protocol.ByteCount = 0x100
	paddingTarget    protocol.ByteCount = 0x200
	// A padding extension is at least four header bytes plus one
	// content byte: some servers reject empty final extensions.
	minPaddingExtensionLen protocol.ByteCount = 5
)

// PaddedClientHelloLen maps the length of an otherwise-complete
// ClientHello body, the padding extension excluded, to the total
// length the padded message must occupy.
func PaddedClientHelloLen(unpadded protocol.ByteCount) protocol.ByteCount {
	if unpadded < paddingThreshold || unpadded >= paddingTarget {
		return unpadded
	}
	if unpadded > paddingTarget-minPaddingExtensionLen {
		// No room for a full padding extension below the target, so
		// the message grows past it by the minimum extension size.
		return unpadded + minPaddingExtensionLen
	}
	return paddingTarget
}
