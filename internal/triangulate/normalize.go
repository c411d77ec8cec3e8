package triangulate

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixes are stripped from the end of a name before comparison.
// Order matters: longer suffixes first so "incorporated" is not left as "orporated".
var legalSuffixes = []string{
	" incorporated", " corporation", " limited", " nigeria", " technologies",
	" corp", " inc", " ltd", " llc", " plc", " ng",
}

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace = regexp.MustCompile(`\s+`)

	// Strips combining marks after NFD decomposition, so "Café" and "Cafe"
	// normalize identically.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeName canonicalizes a company name for matching: lowercase,
// diacritics folded, legal suffixes dropped, punctuation removed,
// whitespace collapsed.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(deaccent, n); err == nil {
		n = folded
	}

	for changed := true; changed; {
		changed = false
		for _, suffix := range legalSuffixes {
			if trimmed, ok := strings.CutSuffix(n, suffix); ok {
				n = strings.TrimRight(trimmed, " ,.")
				changed = true
			}
		}
	}

	n = nonAlnum.ReplaceAllString(n, "")
	n = multiSpace.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

// NormalizeHost reduces a website URL to its bare host for exact matching:
// scheme and www stripped, lowercased, no trailing slash. Returns "" for
// unusable input.
func NormalizeHost(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		host = u.Path
	}
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimSuffix(host, "/")
	if !strings.Contains(host, ".") {
		return ""
	}
	return host
}

// tokenSort splits a normalized name into words and rejoins them sorted,
// so reordered names ("Dominic Ayoola Ltd" vs "Ayoola Dominic") still match.
func tokenSort(name string) string {
	fields := strings.Fields(name)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}
