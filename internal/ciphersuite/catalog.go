// Package ciphersuite holds the cipher suite catalog and compiles
// cipher rule strings and curve preference lists into the ordered
// preference lists consulted during a handshake.
package ciphersuite

import (
	"fmt"

	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
)

// Key exchange algorithms, as bit flags so that an alias class can cover several at once
const (
	KxRSA uint16 = 1 << iota
	KxDHE
	KxECDHE
	KxPSK
	KxECDHEPSK
)

// Authentication algorithms
const (
	AuthRSA uint16 = 1 << iota
	AuthECDSA
	AuthPSK
)

// Bulk ciphers
const (
	BulkNULL uint16 = 1 << iota
	BulkDES
	Bulk3DES
	BulkRC4
	BulkAES128
	BulkAES256
	BulkCHACHA20
)

// MAC / digest algorithms. AEAD suites carry MacAEAD, the integrity
// being part of the bulk cipher.
const (
	MacMD5 uint16 = 1 << iota
	MacSHA1
	MacSHA256
	MacSHA384
	MacAEAD
)

// A Suite is one entry of the cipher suite catalog. All fields are
// immutable once the catalog is built.
type Suite struct {
	ID   uint16
	Name string
	Kx   uint16
	Auth uint16
	Bulk uint16
	Mac  uint16
	// MinVersion is the protocol version that introduced the suite.
	MinVersion protocol.VersionNumber
	// Bits is the key length of the bulk cipher.
	Bits int
	AEAD bool
}

// IsNULL says if the suite doesn't encrypt
func (s *Suite) IsNULL() bool { return s.Bulk == BulkNULL }

// strengthBase ranks the bulk ciphers. Key bits alone can't be used:
// RC4 and AES-128 both use 128-bit keys, but RC4 ranks below.
func (s *Suite) strengthBase() int {
	switch s.Bulk {
	case BulkNULL:
		return 0
	case BulkDES:
		return 1
	case Bulk3DES:
		return 2
	case BulkRC4:
		return 3
	case BulkAES128:
		return 4
	case BulkAES256, BulkCHACHA20:
		return 5
	default:
		panic("unknown bulk cipher")
	}
}

// strengthTier is the sort key of the @STRENGTH directive. Among suites
// of equal bulk strength, AEAD constructions rank above CBC ones.
func (s *Suite) strengthTier() int {
	tier := s.strengthBase() << 1
	if s.AEAD {
		tier++
	}
	return tier
}

// The catalog, in canonical order. This order is the scan order of
// every rule item and the tie-break of every sort, so it must not be
// reshuffled between releases. It is ascending by ID, except that the
// standardized ChaCha20 constructions precede their draft -OLD
// variants so that a shared name enables the standard wire format
// first.
var catalog = []Suite{
	{ID: 0x0002, Name: "NULL-SHA", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkNULL, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 0},
	{ID: 0x0004, Name: "RC4-MD5", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkRC4, Mac: MacMD5, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0x0005, Name: "RC4-SHA", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkRC4, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0x000a, Name: "DES-CBC3-SHA", Kx: KxRSA, Auth: AuthRSA, Bulk: Bulk3DES, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 112},
	{ID: 0x002f, Name: "AES128-SHA", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0x0033, Name: "DHE-RSA-AES128-SHA", Kx: KxDHE, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0x0035, Name: "AES256-SHA", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 256},
	{ID: 0x0039, Name: "DHE-RSA-AES256-SHA", Kx: KxDHE, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 256},
	{ID: 0x003c, Name: "AES128-SHA256", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacSHA256, MinVersion: protocol.VersionTLS12, Bits: 128},
	{ID: 0x003d, Name: "AES256-SHA256", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacSHA256, MinVersion: protocol.VersionTLS12, Bits: 256},
	{ID: 0x0067, Name: "DHE-RSA-AES128-SHA256", Kx: KxDHE, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacSHA256, MinVersion: protocol.VersionTLS12, Bits: 128},
	{ID: 0x006b, Name: "DHE-RSA-AES256-SHA256", Kx: KxDHE, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacSHA256, MinVersion: protocol.VersionTLS12, Bits: 256},
	{ID: 0x008c, Name: "PSK-AES128-CBC-SHA", Kx: KxPSK, Auth: AuthPSK, Bulk: BulkAES128, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0x008d, Name: "PSK-AES256-CBC-SHA", Kx: KxPSK, Auth: AuthPSK, Bulk: BulkAES256, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 256},
	{ID: 0x009c, Name: "AES128-GCM-SHA256", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 128, AEAD: true},
	{ID: 0x009d, Name: "AES256-GCM-SHA384", Kx: KxRSA, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0x009e, Name: "DHE-RSA-AES128-GCM-SHA256", Kx: KxDHE, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 128, AEAD: true},
	{ID: 0x009f, Name: "DHE-RSA-AES256-GCM-SHA384", Kx: KxDHE, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0xc007, Name: "ECDHE-ECDSA-RC4-SHA", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkRC4, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0xc009, Name: "ECDHE-ECDSA-AES128-SHA", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkAES128, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0xc00a, Name: "ECDHE-ECDSA-AES256-SHA", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkAES256, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 256},
	{ID: 0xc011, Name: "ECDHE-RSA-RC4-SHA", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkRC4, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0xc012, Name: "ECDHE-RSA-DES-CBC3-SHA", Kx: KxECDHE, Auth: AuthRSA, Bulk: Bulk3DES, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 112},
	{ID: 0xc013, Name: "ECDHE-RSA-AES128-SHA", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0xc014, Name: "ECDHE-RSA-AES256-SHA", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 256},
	{ID: 0xc023, Name: "ECDHE-ECDSA-AES128-SHA256", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkAES128, Mac: MacSHA256, MinVersion: protocol.VersionTLS12, Bits: 128},
	{ID: 0xc024, Name: "ECDHE-ECDSA-AES256-SHA384", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkAES256, Mac: MacSHA384, MinVersion: protocol.VersionTLS12, Bits: 256},
	{ID: 0xc027, Name: "ECDHE-RSA-AES128-SHA256", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacSHA256, MinVersion: protocol.VersionTLS12, Bits: 128},
	{ID: 0xc028, Name: "ECDHE-RSA-AES256-SHA384", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacSHA384, MinVersion: protocol.VersionTLS12, Bits: 256},
	{ID: 0xc02b, Name: "ECDHE-ECDSA-AES128-GCM-SHA256", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkAES128, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 128, AEAD: true},
	{ID: 0xc02c, Name: "ECDHE-ECDSA-AES256-GCM-SHA384", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkAES256, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0xc02f, Name: "ECDHE-RSA-AES128-GCM-SHA256", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkAES128, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 128, AEAD: true},
	{ID: 0xc030, Name: "ECDHE-RSA-AES256-GCM-SHA384", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkAES256, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0xc035, Name: "ECDHE-PSK-AES128-CBC-SHA", Kx: KxECDHEPSK, Auth: AuthPSK, Bulk: BulkAES128, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 128},
	{ID: 0xc036, Name: "ECDHE-PSK-AES256-CBC-SHA", Kx: KxECDHEPSK, Auth: AuthPSK, Bulk: BulkAES256, Mac: MacSHA1, MinVersion: protocol.VersionSSL30, Bits: 256},
	{ID: 0xcca8, Name: "ECDHE-RSA-CHACHA20-POLY1305", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkCHACHA20, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0xcca9, Name: "ECDHE-ECDSA-CHACHA20-POLY1305", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkCHACHA20, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0xcc13, Name: "ECDHE-RSA-CHACHA20-POLY1305-OLD", Kx: KxECDHE, Auth: AuthRSA, Bulk: BulkCHACHA20, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
	{ID: 0xcc14, Name: "ECDHE-ECDSA-CHACHA20-POLY1305-OLD", Kx: KxECDHE, Auth: AuthECDSA, Bulk: BulkCHACHA20, Mac: MacAEAD, MinVersion: protocol.VersionTLS12, Bits: 256, AEAD: true},
}

// sharedNames are rule-string names covering several wire IDs. They
// behave like cipher names, not alias classes: a shared name enables
// every variant, in catalog order, and may only be the sole component
// of a rule.
var sharedNames = map[string][]uint16{
	"ECDHE-RSA-CHACHA20-POLY1305":   {0xcca8, 0xcc13},
	"ECDHE-ECDSA-CHACHA20-POLY1305": {0xcca9, 0xcc14},
}

var (
	suitesByID   = make(map[uint16]*Suite, len(catalog))
	suitesByName = make(map[string]*Suite, len(catalog))
)

func init() {
	for i := range catalog {
		s := &catalog[i]
		if _, ok := suitesByID[s.ID]; ok {
			panic("duplicate cipher suite ID in catalog")
		}
		suitesByID[s.ID] = s
		suitesByName[s.Name] = s
	}
}

// Get returns the catalog entry for a cipher suite ID.
func Get(id uint16) (*Suite, bool) {
	s, ok := suitesByID[id]
	return s, ok
}

// Name returns the canonical name of a cipher suite ID, or its hex
// form for IDs outside the catalog.
func Name(id uint16) string {
	if s, ok := suitesByID[id]; ok {
		return s.Name
	}
	return fmt.Sprintf("0x%04x", id)
}
