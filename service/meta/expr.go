package meta

import (
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnv replaces every ${env.KEY} in value with lookup(KEY). Expressions
// whose key holds anything but letters, digits or '_' are kept literally, as
// is an unterminated expression.
func expandEnv(value string, lookup func(string) string) string {
	var b strings.Builder
	rest := value
	for {
		start := strings.Index(rest, envPrefix)
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:start])
		keyStart := start + len(envPrefix)
		end := strings.IndexByte(rest[keyStart:], '}')
		if end < 0 {
			b.WriteString(rest[start:])
			return b.String()
		}
		key := rest[keyStart : keyStart+end]
		if !isEnvKey(key) {
			// keep the prefix, rescan what follows it for nested expressions
			b.WriteString(envPrefix)
			rest = rest[keyStart:]
			continue
		}
		b.WriteString(lookup(key))
		rest = rest[keyStart+end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
