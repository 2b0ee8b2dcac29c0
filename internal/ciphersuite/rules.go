package ciphersuite

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
)

// A Preference is one entry of a compiled cipher preference list.
type Preference struct {
	ID uint16
	// InGroup is set while an equal-preference group continues, i.e.
	// the suite ranks equal with the entry that follows it.
	InGroup bool
}

// A PreferenceList is the output of compiling a rule string. It is
// immutable once returned and safe for concurrent reads.
type PreferenceList []Preference

// IDs returns just the cipher suite IDs, in preference order.
func (l PreferenceList) IDs() []uint16 {
	ids := make([]uint16, len(l))
	for i, p := range l {
		ids[i] = p.ID
	}
	return ids
}

// ErrEmptyCipherList is returned when a rule string, although
// syntactically valid, selects no cipher suite at all.
var ErrEmptyCipherList = errors.New("no cipher suites enabled by rule string")

type operator int

const (
	opAppend operator = iota // no prefix: enable matches at the end
	opMove                   // '+': move enabled matches to the end
	opRemove                 // '-': disable matches, keep them re-addable
	opBan                    // '!': remove matches for good
)

type versionMatch int

const (
	versionAny versionMatch = iota
	versionPreTLS12
	versionTLS12
)

// An alias describes a named selector class. Zero mask fields match
// any suite. A suite matches an alias when it satisfies every non-zero
// constraint.
type alias struct {
	kx, auth, bulk, mac uint16
	aead                bool
	// minStrength compares against Suite.strengthBase, so that e.g.
	// HIGH covers AES-128 but not the equally-sized RC4.
	minStrength int
	version     versionMatch
	// includesNULL marks the classes documented to cover
	// NULL-encryption suites. Everything else excludes them.
	includesNULL bool
	// none marks classes that are defined to be empty.
	none bool
}

var aliases = map[string]alias{
	"ALL":                 {},
	"DEFAULT":             {},
	"COMPLEMENTOFDEFAULT": {none: true},

	"kRSA":   {kx: KxRSA},
	"kDHE":   {kx: KxDHE},
	"kEDH":   {kx: KxDHE},
	"kECDHE": {kx: KxECDHE},
	"kEECDH": {kx: KxECDHE},
	"kPSK":   {kx: KxPSK | KxECDHEPSK},

	"aRSA":   {auth: AuthRSA},
	"aECDSA": {auth: AuthECDSA},
	"aPSK":   {auth: AuthPSK},

	"RSA":   {kx: KxRSA, auth: AuthRSA},
	"DHE":   {kx: KxDHE},
	"EDH":   {kx: KxDHE},
	"ECDHE": {kx: KxECDHE},
	"EECDH": {kx: KxECDHE},
	"ECDSA": {auth: AuthECDSA},
	"PSK":   {auth: AuthPSK},

	"AES":      {bulk: BulkAES128 | BulkAES256},
	"AES128":   {bulk: BulkAES128},
	"AES256":   {bulk: BulkAES256},
	"AESGCM":   {bulk: BulkAES128 | BulkAES256, aead: true},
	"CHACHA20": {bulk: BulkCHACHA20},
	"3DES":     {bulk: Bulk3DES},
	"DES":      {bulk: BulkDES},
	"RC4":      {bulk: BulkRC4},
	"eNULL":    {bulk: BulkNULL, includesNULL: true},
	"NULL":     {bulk: BulkNULL, includesNULL: true},

	"MD5":    {mac: MacMD5},
	"SHA":    {mac: MacSHA1},
	"SHA1":   {mac: MacSHA1},
	"SHA256": {mac: MacSHA256},
	"SHA384": {mac: MacSHA384},
	"AEAD":   {aead: true},

	"HIGH": {minStrength: 4}, // AES-128 and up
	"FIPS": {bulk: Bulk3DES | BulkAES128 | BulkAES256},

	"SSLv3":   {version: versionPreTLS12},
	"TLSv1":   {version: versionPreTLS12},
	"TLSv1.1": {version: versionPreTLS12},
	"TLSv1.2": {version: versionTLS12},
}

func (a *alias) matches(s *Suite) bool {
	if a.none {
		return false
	}
	if a.kx != 0 && a.kx&s.Kx == 0 {
		return false
	}
	if a.auth != 0 && a.auth&s.Auth == 0 {
		return false
	}
	if a.bulk != 0 && a.bulk&s.Bulk == 0 {
		return false
	}
	if a.mac != 0 && a.mac&s.Mac == 0 {
		return false
	}
	if a.aead && !s.AEAD {
		return false
	}
	if a.minStrength != 0 && s.strengthBase() < a.minStrength {
		return false
	}
	switch a.version {
	case versionPreTLS12:
		if s.MinVersion >= protocol.VersionTLS12 {
			return false
		}
	case versionTLS12:
		if s.MinVersion != protocol.VersionTLS12 {
			return false
		}
	}
	return true
}

type selectorKind int

const (
	selAlias selectorKind = iota
	selCipher
	selUnknown
)

type selector struct {
	kind  selectorKind
	alias alias
	ids   []uint16 // selCipher: one ID, or several for a shared name
}

// An expression is one rule item's selector, the AND of its components.
type expression struct {
	components []selector
	// includeNULL is set when a component explicitly names a NULL
	// cipher or a class documented to cover them.
	includeNULL bool
	// dead marks expressions that can never match: an exact or shared
	// cipher name used as one component of a multi-part rule.
	dead bool
}

func (e *expression) matches(s *Suite) bool {
	if e.dead {
		return false
	}
	if s.IsNULL() && !e.includeNULL {
		return false
	}
	for i := range e.components {
		c := &e.components[i]
		switch c.kind {
		case selUnknown:
			return false
		case selCipher:
			found := false
			for _, id := range c.ids {
				if id == s.ID {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case selAlias:
			if !c.alias.matches(s) {
				return false
			}
		}
	}
	return true
}

// parseExpression resolves a '+'-joined selector expression. Unknown
// component names are not an error: they yield an expression matching
// nothing.
func parseExpression(text string) (expression, error) {
	var e expression
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '+' {
			continue
		}
		word := text[start:i]
		start = i + 1
		if word == "" {
			return expression{}, errors.New("empty component in rule")
		}
		e.components = append(e.components, resolveComponent(word))
	}
	multi := len(e.components) > 1
	for i := range e.components {
		c := &e.components[i]
		switch c.kind {
		case selCipher:
			// Exact and shared cipher names may not be used in
			// multi-part rules. They are kept as components that can
			// never match, so the whole AND matches nothing.
			if multi {
				e.dead = true
			}
			e.includeNULL = true
		case selAlias:
			if c.alias.includesNULL {
				e.includeNULL = true
			}
		}
	}
	return e, nil
}

func resolveComponent(word string) selector {
	if ids, ok := sharedNames[word]; ok {
		return selector{kind: selCipher, ids: ids}
	}
	if s, ok := suitesByName[word]; ok {
		return selector{kind: selCipher, ids: []uint16{s.ID}}
	}
	if a, ok := aliases[word]; ok {
		return selector{kind: selAlias, alias: a}
	}
	return selector{kind: selUnknown}
}

// The three partitions of the rule engine's working state. Every
// catalog entry is in exactly one of them at all times.
type partition int

const (
	partAvailable partition = iota // not selected, may still be added
	partEnabled
	partBanned
)

type ruleEngine struct {
	state   []partition // indexed like the catalog
	enabled []int       // catalog indices, in preference order
	inGroup []bool      // parallel to enabled
}

func newRuleEngine() *ruleEngine {
	return &ruleEngine{state: make([]partition, len(catalog))}
}

// add scans the catalog in canonical order and appends every match
// that is neither banned nor already enabled.
func (e *ruleEngine) add(expr *expression, inGroup bool) {
	for i := range catalog {
		if e.state[i] != partAvailable || !expr.matches(&catalog[i]) {
			continue
		}
		e.state[i] = partEnabled
		e.enabled = append(e.enabled, i)
		e.inGroup = append(e.inGroup, inGroup)
	}
}

// move pushes the enabled matches to the end of the list, keeping
// their relative order.
func (e *ruleEngine) move(expr *expression) {
	var kept, moved []int
	for _, i := range e.enabled {
		if expr.matches(&catalog[i]) {
			moved = append(moved, i)
		} else {
			kept = append(kept, i)
		}
	}
	e.enabled = append(kept, moved...)
}

// remove disables the enabled matches. They stay available for
// re-selection by a later add rule.
func (e *ruleEngine) remove(expr *expression) {
	e.filterEnabled(expr, partAvailable)
}

// ban excludes every match for the rest of the rule string, whether
// currently enabled or not.
func (e *ruleEngine) ban(expr *expression) {
	for i := range catalog {
		if e.state[i] != partBanned && expr.matches(&catalog[i]) {
			e.state[i] = partBanned
		}
	}
	e.filterEnabled(expr, partBanned)
}

func (e *ruleEngine) filterEnabled(expr *expression, to partition) {
	kept := e.enabled[:0]
	for _, i := range e.enabled {
		if expr.matches(&catalog[i]) {
			e.state[i] = to
		} else {
			kept = append(kept, i)
		}
	}
	e.enabled = kept
	e.inGroup = e.inGroup[:len(e.enabled)]
	for i := range e.inGroup {
		e.inGroup[i] = false
	}
}

// addGroup applies one bracketed equal-preference group: every
// selector appends its matches with the group flag set, and the last
// suite appended across the whole group terminates it.
func (e *ruleEngine) addGroup(exprs []expression) {
	before := len(e.enabled)
	for i := range exprs {
		e.add(&exprs[i], true)
	}
	if len(e.enabled) > before {
		e.inGroup[len(e.inGroup)-1] = false
	}
}

// sortByStrength stable-sorts the enabled list by descending strength
// tier. Ties keep their current relative order.
func (e *ruleEngine) sortByStrength() {
	sort.SliceStable(e.enabled, func(i, j int) bool {
		return catalog[e.enabled[i]].strengthTier() > catalog[e.enabled[j]].strengthTier()
	})
}

func (e *ruleEngine) preferenceList() PreferenceList {
	list := make(PreferenceList, len(e.enabled))
	for i, idx := range e.enabled {
		list[i] = Preference{ID: catalog[idx].ID, InGroup: e.inGroup[i]}
	}
	return list
}

func isSeparator(c byte) bool { return c == ':' || c == ',' || c == ' ' }

func isSelectorChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '.' || c == '_' || c == '+'
}

// ParseRules compiles a cipher rule string into a preference list. The
// compilation is all-or-nothing: on error no list is returned, and the
// caller's previous configuration stays untouched.
func ParseRules(rule string) (PreferenceList, error) {
	if rule == "" {
		return nil, errors.New("empty cipher rule string")
	}
	engine := newRuleEngine()
	var sawGroup, sawOperator bool

	i := 0
	for i < len(rule) {
		c := rule[i]
		switch {
		case isSeparator(c):
			i++

		case c == '[':
			sawGroup = true
			if sawOperator {
				return nil, errors.New("operators may not be combined with equal-preference groups")
			}
			end, exprs, err := parseGroup(rule, i)
			if err != nil {
				return nil, err
			}
			engine.addGroup(exprs)
			i = end

		case c == '@':
			sawOperator = true
			if sawGroup {
				return nil, errors.New("directives may not be combined with equal-preference groups")
			}
			word, next := readToken(rule, i+1)
			if word != "STRENGTH" {
				return nil, fmt.Errorf("unknown directive: @%s", word)
			}
			engine.sortByStrength()
			i = next

		case c == '+' || c == '-' || c == '!' || isSelectorChar(c):
			op := opAppend
			switch c {
			case '+':
				op = opMove
				i++
			case '-':
				op = opRemove
				i++
			case '!':
				op = opBan
				i++
			}
			if op != opAppend {
				sawOperator = true
				if sawGroup {
					return nil, errors.New("operators may not be combined with equal-preference groups")
				}
			}
			word, next := readToken(rule, i)
			if word == "" {
				return nil, errors.New("rule operator without a selector")
			}
			if next < len(rule) && !isSeparator(rule[next]) {
				return nil, fmt.Errorf("unexpected character %q in rule string", rule[next])
			}
			expr, err := parseExpression(word)
			if err != nil {
				return nil, err
			}
			switch op {
			case opAppend:
				engine.add(&expr, false)
			case opMove:
				engine.move(&expr)
			case opRemove:
				engine.remove(&expr)
			case opBan:
				engine.ban(&expr)
			}
			i = next

		default:
			return nil, fmt.Errorf("unexpected character %q in rule string", c)
		}
	}

	list := engine.preferenceList()
	if len(list) == 0 {
		return nil, ErrEmptyCipherList
	}
	return list, nil
}

// readToken consumes selector characters starting at start and returns
// the token and the position after it.
func readToken(rule string, start int) (string, int) {
	end := start
	for end < len(rule) && isSelectorChar(rule[end]) {
		end++
	}
	return rule[start:end], end
}

// parseGroup parses one bracketed group starting at the '[' at
// position start. It returns the position right after the closing
// bracket and the group's selector expressions.
func parseGroup(rule string, start int) (int, []expression, error) {
	i := start + 1
	var exprs []expression
	cur := i
	for {
		if i == len(rule) {
			return 0, nil, errors.New("unterminated bracket in rule string")
		}
		switch c := rule[i]; {
		case c == ']' || c == '|':
			word := rule[cur:i]
			if word == "" {
				return 0, nil, errors.New("empty selector in equal-preference group")
			}
			expr, err := parseExpression(word)
			if err != nil {
				return 0, nil, err
			}
			exprs = append(exprs, expr)
			cur = i + 1
			if c == ']' {
				i++
				if i < len(rule) && !isSeparator(rule[i]) {
					return 0, nil, fmt.Errorf("unexpected character %q after equal-preference group", rule[i])
				}
				return i, exprs, nil
			}
			i++
		case isSelectorChar(c) && c != '+':
			i++
		case c == '+':
			i++ // AND is allowed inside groups, operators are not
		default:
			return 0, nil, fmt.Errorf("unexpected character %q in equal-preference group", c)
		}
	}
}
