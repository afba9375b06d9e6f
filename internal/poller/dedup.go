package poller

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName готовит название события к сравнению при дедупликации:
// NFKD-декомпозиция, нижний регистр, схлопывание пробельных серий.
func NormalizeName(name string) string {
	decomposed := norm.NFKD.String(name)
	lowered := strings.ToLower(decomposed)

	return strings.Join(strings.Fields(lowered), " ")
}

// containsNormalized сообщает, встречается ли name среди existing
// после нормализации обеих сторон.
func containsNormalized(existing []string, name string) bool {
	want := NormalizeName(name)
	for _, n := range existing {
		if NormalizeName(n) == want {
			return true
		}
	}

	return false
}
