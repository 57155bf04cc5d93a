// Package i18n provides the Japanese/English string tables consumed by the
// layout engine and the UI chrome.
package i18n

import "fmt"

// Language selects a string table.
type Language int

const (
	Japanese Language = iota
	English
)

func (l Language) String() string {
	if l == English {
		return "english"
	}
	return "japanese"
}

// ParseLanguage parses a settings-file language name.
func ParseLanguage(name string) (Language, error) {
	switch name {
	case "japanese", "ja", "":
		return Japanese, nil
	case "english", "en":
		return English, nil
	default:
		return Japanese, fmt.Errorf("unknown language: %q", name)
	}
}

// MissingKeyFunc receives a report for every lookup that falls through the
// table. Callers pass the sink explicitly; there is no process-wide warning
// buffer.
type MissingKeyFunc func(lang Language, key string)

// Lookup returns the table entry for key, or the key itself when the table
// has no entry. Misses are reported to onMissing when it is non-nil.
func Lookup(lang Language, key string, onMissing MissingKeyFunc) string {
	table := japanese
	if lang == English {
		table = english
	}
	if text, ok := table[key]; ok {
		return text
	}
	if onMissing != nil {
		onMissing(lang, key)
	}
	return key
}
