package ciphersuite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogHasUniqueNames(t *testing.T) {
	names := make(map[string]struct{}, len(catalog))
	for _, s := range catalog {
		_, ok := names[s.Name]
		require.Falsef(t, ok, "duplicate name %s", s.Name)
		names[s.Name] = struct{}{}
	}
}

func TestSharedNamesResolveToCatalogEntries(t *testing.T) {
	for name, ids := range sharedNames {
		require.Lenf(t, ids, 2, "shared name %s", name)
		for _, id := range ids {
			_, ok := suitesByID[id]
			require.Truef(t, ok, "shared name %s references unknown ID 0x%04x", name, id)
		}
		// A shared name is the canonical name of the standardized
		// variant, which it shadows in rule strings: it must resolve
		// to that variant first, then to the draft one.
		std, ok := suitesByName[name]
		require.Truef(t, ok, "shared name %s has no standardized variant", name)
		require.Equal(t, std.ID, ids[0])
		old, ok := Get(ids[1])
		require.True(t, ok)
		require.Equal(t, name+"-OLD", old.Name)
	}
}

func TestSharedNamesShadowExactNames(t *testing.T) {
	// In a rule string, the shared name selects both variants, not
	// just the catalog entry bearing that exact name.
	sel := resolveComponent("ECDHE-RSA-CHACHA20-POLY1305")
	require.Equal(t, selCipher, sel.kind)
	require.Equal(t, []uint16{0xcca8, 0xcc13}, sel.ids)
}

func TestName(t *testing.T) {
	require.Equal(t, "ECDHE-RSA-AES128-GCM-SHA256", Name(0xc02f))
	// IDs outside the catalog get their hex form.
	require.Equal(t, "0x1301", Name(0x1301))
}

func TestGet(t *testing.T) {
	s, ok := Get(0x0002)
	require.True(t, ok)
	require.Equal(t, "NULL-SHA", s.Name)
	require.True(t, s.IsNULL())

	_, ok = Get(0xffff)
	require.False(t, ok)
}

func TestStrengthTiers(t *testing.T) {
	tier := func(name string) int {
		s, ok := suitesByName[name]
		require.True(t, ok)
		return s.strengthTier()
	}
	// ChaCha20 and AES-256 rank equal, AEAD beats CBC, and RC4 ranks
	// below AES-128 despite the equal key size.
	require.Equal(t, tier("ECDHE-RSA-CHACHA20-POLY1305"), tier("AES256-GCM-SHA384"))
	require.Greater(t, tier("AES128-GCM-SHA256"), tier("AES128-SHA"))
	require.Greater(t, tier("AES128-SHA"), tier("RC4-SHA"))
	require.Greater(t, tier("RC4-SHA"), tier("DES-CBC3-SHA"))
	require.Greater(t, tier("DES-CBC3-SHA"), tier("NULL-SHA"))
}
