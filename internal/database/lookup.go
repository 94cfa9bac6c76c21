package database

import "strings"

// Resolve looks up name: an exact unit hit, then English plural
// de-inflection, then (if allowPrefix) the first registered prefix that
// matches (see matchPrefix). It returns the body text to parse and true, or ("", false)
// if name has no definition.
//
// Resolve is idempotent: feeding a returned body's singular spelling back
// in yields the same answer, because plural stripping returns a spelling
// (a real, re-resolvable name) rather than a looked-up body.
func (db *DB) Resolve(name string, allowPrefix bool) (string, bool) {
	if u, ok := db.Units[name]; ok {
		return u.Body, true
	}

	if len(name) > 2 && strings.HasSuffix(name, "s") {
		if spelling, ok := db.resolvePluralSpelling(name); ok {
			return spelling, true
		}
	}

	if allowPrefix {
		if pfx, remainder, ok := db.matchPrefix(name); ok {
			if remainder == "" {
				return pfx.Body, true
			}
			if _, ok := db.Resolve(remainder, false); ok {
				return pfx.Body + " " + remainder, true
			}
		}
	}

	return "", false
}

// resolvePluralSpelling tries, in order: strip trailing 's'; strip
// trailing 'es' after a word ending in 'e'; replace trailing 'ies' with
// 'y'. Each candidate is itself passed through Resolve (so a candidate
// that only resolves via a further plural strip, or via a prefix, still
// counts), and on success the *spelling* of the successful candidate is
// returned — never the looked-up body — so the result is a real,
// independently resolvable name.
func (db *DB) resolvePluralSpelling(name string) (string, bool) {
	stripS := name[:len(name)-1]
	if _, ok := db.Resolve(stripS, true); ok {
		return stripS, true
	}

	if len(stripS) > 2 && strings.HasSuffix(stripS, "e") {
		stripEs := stripS[:len(stripS)-1]
		if _, ok := db.Resolve(stripEs, true); ok {
			return stripEs, true
		}
	}

	if len(stripS) > 2 && strings.HasSuffix(stripS, "i") {
		stripIes := stripS[:len(stripS)-1] + "y"
		if _, ok := db.Resolve(stripIes, true); ok {
			return stripIes, true
		}
	}

	return "", false
}

// matchPrefix returns the first registered prefix that is a textual
// prefix of name (insertion order within the bucket, so a longer prefix
// declared earlier shadows a shorter one), plus the remainder of name
// after the prefix text.
func (db *DB) matchPrefix(name string) (*Prefix, string, bool) {
	if name == "" {
		return nil, "", false
	}
	for _, p := range db.Prefixes[name[0]] {
		if strings.HasPrefix(name, p.Text) {
			return p, name[len(p.Text):], true
		}
	}
	return nil, "", false
}
