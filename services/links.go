package services

import (
	"regexp"
	"strings"
)

// Regex patterns for Amazon URLs and the ASIN shapes they embed. The ASIN
// patterns are tried in order: a path-embedded code survives tracking-param
// churn better than a query-embedded one, so it wins.
var (
	amazonURLRe = regexp.MustCompile(`(?i)https?://[^\s]*amazon\.[^\s/]+[^\s]*`)

	asinPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`),
		regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})`),
		regexp.MustCompile(`(?i)[?&]asin=([A-Z0-9]{10})`),
	}
)

// ExtractProductURLs returns every Amazon URL found in text, in order of
// first appearance, duplicates included. An empty result is a normal outcome.
func ExtractProductURLs(text string) []string {
	return amazonURLRe.FindAllString(text, -1)
}

// ProductID extracts the 10-character ASIN from an Amazon URL, upper-cased.
func ProductID(url string) (string, bool) {
	for _, pat := range asinPatterns {
		if m := pat.FindStringSubmatch(url); m != nil {
			return strings.ToUpper(m[1]), true
		}
	}
	return "", false
}

// ProductKey derives the deduplication key for a URL: the ASIN when one is
// extractable, otherwise the URL with tracking parameters stripped.
func ProductKey(url string) string {
	if asin, ok := ProductID(url); ok {
		return asin
	}
	return NormalizeURL(url)
}
