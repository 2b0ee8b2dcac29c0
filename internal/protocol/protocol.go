// Package protocol holds the TLS constants shared by all other packages.
package protocol

// ByteCount in TLS
type ByteCount int64

// MaxSessionIDLen is the longest session ID a peer may assign
const MaxSessionIDLen = 32

// SHA256DigestLen is the length of a SHA-256 digest
const SHA256DigestLen = 32
