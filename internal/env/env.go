// Package env inspects the process environment for the character type
// locale.
package env

import (
	"strings"
)

// localeVars are consulted in setlocale(LC_CTYPE, "") order.
var localeVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// Locale returns the effective LC_CTYPE locale name, "C" when unset.
func Locale(environ []string) string {
	m := toMap(environ)
	for _, key := range localeVars {
		if v := strings.TrimSpace(m[key]); v != "" {
			return v
		}
	}
	return "C"
}

// IsUTF8 reports whether a locale name such as "en_US.UTF-8" selects the
// UTF-8 codeset.
func IsUTF8(locale string) bool {
	_, codeset, ok := strings.Cut(locale, ".")
	if !ok {
		return false
	}
	codeset, _, _ = strings.Cut(codeset, "@")
	codeset = strings.ReplaceAll(strings.ToLower(codeset), "-", "")
	return codeset == "utf8"
}

// WideMode reports whether input should be decoded as UTF-8 rather than
// shown byte by byte.
func WideMode(environ []string) bool {
	return IsUTF8(Locale(environ))
}

func toMap(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}
