package wlkit

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// GetLocale returns the user's locale as a BCP-47 tag. Resolution follows
// POSIX precedence: LC_ALL, then LC_MESSAGES, then LANG. Unset, "C" and
// "POSIX" locales fall back to "en-US".
func GetLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			if tag, ok := parseLocale(v); ok {
				return tag
			}
		}
	}
	return "en-US"
}

// parseLocale normalizes a POSIX locale string such as "de_DE.UTF-8@euro"
// into a BCP-47 tag.
func parseLocale(v string) (string, bool) {
	// Strip codeset and modifier suffixes.
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexByte(v, '@'); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
