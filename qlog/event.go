package qlog

import (
	"encoding/hex"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/tlsconf-go/tlsconf-go/internal/ciphersuite"
	"github.com/tlsconf-go/tlsconf-go/logging"
)

type eventDetails interface {
	Category() category
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("time", milliseconds(e.RelativeTime))
	enc.StringKey("name", e.Category().String()+":"+e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

func milliseconds(dur time.Duration) float64 { return float64(dur.Nanoseconds()) / 1e6 }

type cipherList logging.CipherPreferenceList

var _ gojay.MarshalerJSONArray = cipherList{}

func (l cipherList) IsNil() bool { return l == nil }
func (l cipherList) MarshalJSONArray(enc *gojay.Encoder) {
	for _, p := range l {
		enc.String(ciphersuite.Name(p.ID))
	}
}

type eventCipherPreferencesBuilt struct {
	Rules string
	Prefs logging.CipherPreferenceList
}

func (e eventCipherPreferencesBuilt) Category() category { return categoryNegotiation }
func (e eventCipherPreferencesBuilt) Name() string       { return "cipher_list_built" }
func (e eventCipherPreferencesBuilt) IsNil() bool        { return false }

func (e eventCipherPreferencesBuilt) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("rules", e.Rules)
	enc.ArrayKey("cipher_list", cipherList(e.Prefs))
}

type eventSessionStored struct {
	SessionID []byte
	Replaced  bool
}

func (e eventSessionStored) Category() category { return categorySession }
func (e eventSessionStored) Name() string       { return "stored" }
func (e eventSessionStored) IsNil() bool        { return false }

func (e eventSessionStored) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("session_id", hex.EncodeToString(e.SessionID))
	enc.BoolKey("replaced", e.Replaced)
}

type eventSessionEvicted struct {
	SessionID []byte
}

func (e eventSessionEvicted) Category() category { return categorySession }
func (e eventSessionEvicted) Name() string       { return "evicted" }
func (e eventSessionEvicted) IsNil() bool        { return false }

func (e eventSessionEvicted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("session_id", hex.EncodeToString(e.SessionID))
}

type eventSessionRetrieved struct {
	SessionID []byte
	Hit       bool
}

func (e eventSessionRetrieved) Category() category { return categorySession }
func (e eventSessionRetrieved) Name() string       { return "retrieved" }
func (e eventSessionRetrieved) IsNil() bool        { return false }

func (e eventSessionRetrieved) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("session_id", hex.EncodeToString(e.SessionID))
	enc.BoolKey("hit", e.Hit)
}

type eventSessionRemoved struct {
	SessionID []byte
	OK        bool
}

func (e eventSessionRemoved) Category() category { return categorySession }
func (e eventSessionRemoved) Name() string       { return "removed" }
func (e eventSessionRemoved) IsNil() bool        { return false }

func (e eventSessionRemoved) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("session_id", hex.EncodeToString(e.SessionID))
	enc.BoolKey("ok", e.OK)
}

type eventSessionsFlushed struct {
	Count int
}

func (e eventSessionsFlushed) Category() category { return categorySession }
func (e eventSessionsFlushed) Name() string       { return "flushed" }
func (e eventSessionsFlushed) IsNil() bool        { return false }

func (e eventSessionsFlushed) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("count", e.Count)
}
