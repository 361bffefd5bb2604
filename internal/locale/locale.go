// Package locale holds the user's interface language.
package locale

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// PreferenceKey is the storage key of the persisted locale tag.
const PreferenceKey = "locale"

// Locale is one supported interface language. The zero value is not valid;
// use the package variables or Parse.
type Locale struct {
	code string
}

var (
	English           = Locale{code: "en"}
	SimplifiedChinese = Locale{code: "zh-Hans"}
)

var supported = []Locale{English, SimplifiedChinese}

// Supported returns all supported locales.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// String returns the BCP 47 tag.
func (l Locale) String() string {
	return l.code
}

// Tag returns the language tag of the locale.
func (l Locale) Tag() language.Tag {
	return language.MustParse(l.code)
}

// IsValid reports whether l is one of the supported locales.
func (l Locale) IsValid() bool {
	for _, s := range supported {
		if s == l {
			return true
		}
	}
	return false
}

func (l Locale) base() language.Base {
	b, _ := l.Tag().Base()
	return b
}

// Parse maps a tag onto a supported locale by exact tag or base language,
// so "zh", "zh-CN" and "zh-Hans" all resolve to SimplifiedChinese.
func Parse(tag string) (Locale, error) {
	tag = strings.TrimSpace(tag)
	for _, s := range supported {
		if strings.EqualFold(s.code, tag) {
			return s, nil
		}
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	if l, ok := matchBase(parsed); ok {
		return l, nil
	}
	return Locale{}, fmt.Errorf("unsupported locale %q (available: %s)", tag, supportedList())
}

func matchBase(tag language.Tag) (Locale, bool) {
	b, conf := tag.Base()
	if conf != language.Exact {
		return Locale{}, false
	}
	for _, s := range supported {
		if s.base() == b {
			return s, true
		}
	}
	return Locale{}, false
}

// Resolve derives a default locale from the host's ordered preference list.
// Only the first preference is considered; fallback is used when it has no supported base.
func Resolve(preferred []string, fallback Locale) Locale {
	if len(preferred) > 0 {
		if tag, err := language.Parse(preferred[0]); err == nil {
			if l, ok := matchBase(tag); ok {
				return l
			}
		}
	}
	return fallback
}

func supportedList() string {
	codes := make([]string, len(supported))
	for i, s := range supported {
		codes[i] = s.code
	}
	return strings.Join(codes, ", ")
}

// PreferredFromEnv reads the host language preferences from the POSIX locale variables.
func PreferredFromEnv() []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(raw string) {
		tag := normalizePOSIX(raw)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	for _, part := range strings.Split(os.Getenv("LANGUAGE"), ":") {
		add(part)
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		add(os.Getenv(name))
	}
	return out
}

// normalizePOSIX turns "fr_FR.UTF-8@euro" into "fr-FR".
func normalizePOSIX(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(raw, "_", "-")
}
