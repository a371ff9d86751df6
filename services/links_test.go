package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProductURLs(t *testing.T) {
	text := "Deal one https://www.amazon.in/dp/B0ABCDEFG1?tag=old-20 and deal two HTTPS://AMAZON.com/gp/product/b012345678 here"
	urls := ExtractProductURLs(text)

	assert.Equal(t, []string{
		"https://www.amazon.in/dp/B0ABCDEFG1?tag=old-20",
		"HTTPS://AMAZON.com/gp/product/b012345678",
	}, urls)
}

func TestExtractProductURLs_NoMatches(t *testing.T) {
	assert.Empty(t, ExtractProductURLs(""))
	assert.Empty(t, ExtractProductURLs("no links in here"))
	assert.Empty(t, ExtractProductURLs("https://example.com/dp/B0ABCDEFG1"))
}

func TestExtractProductURLs_RepeatedLink(t *testing.T) {
	text := "https://www.amazon.in/dp/B0ABCDEFG1 again https://www.amazon.in/dp/B0ABCDEFG1"
	urls := ExtractProductURLs(text)
	assert.Len(t, urls, 2)
}

func TestProductID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"dp path", "https://www.amazon.in/dp/B0ABCDEFG1", "B0ABCDEFG1", true},
		{"gp product path", "https://www.amazon.com/gp/product/B012345678?x=1", "B012345678", true},
		{"asin query", "https://www.amazon.de/some/page?asin=b0abcdefg1", "B0ABCDEFG1", true},
		{"lower cased path", "https://www.amazon.in/dp/b0abcdefg1", "B0ABCDEFG1", true},
		{"no id", "https://www.amazon.in/s?k=bags", "", false},
		{"short code", "https://www.amazon.in/dp/B0SHORT", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ProductID(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductID_PathBeatsQuery(t *testing.T) {
	// A path-embedded code wins over a query-embedded one.
	got, ok := ProductID("https://www.amazon.in/dp/B0PATHCODE?asin=B0QUERYCDE")
	assert.True(t, ok)
	assert.Equal(t, "B0PATHCODE", got)
}

func TestProductKey_SameProductSameKey(t *testing.T) {
	a := ProductKey("https://www.amazon.in/dp/B0ABCDEFG1?tag=one-20&utm_source=tg")
	b := ProductKey("https://www.amazon.in/dp/b0abcdefg1#reviews")
	assert.Equal(t, "B0ABCDEFG1", a)
	assert.Equal(t, a, b)
}

func TestProductKey_FallsBackToNormalizedURL(t *testing.T) {
	a := ProductKey("https://www.amazon.in/gift-cards?tag=one-20&utm_campaign=x#top")
	b := ProductKey("https://www.amazon.in/gift-cards?utm_source=y")
	assert.Equal(t, "https://www.amazon.in/gift-cards", a)
	assert.Equal(t, a, b)
}
