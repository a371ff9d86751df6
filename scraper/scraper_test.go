package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `
<html>
<body>
<div class="s-main-slot">
	<div data-component-type="s-search-result">
		<h2><a href="/dp/B0AAAA1111"><span>Blue Canvas Bag</span></a></h2>
		<span class="a-price"><span class="a-offscreen">₹499</span></span>
		<i class="a-icon-star-small"><span>4.3 out of 5 stars</span></i>
		<span class="a-size-base" dir="auto">1,204</span>
	</div>
	<div data-component-type="s-search-result">
		<h2><a href="/dp/B0BBBB2222"><span>Leather Satchel</span></a></h2>
		<span class="a-price"><span class="a-offscreen">₹1,999</span></span>
	</div>
	<a aria-label="Go to next page, page 2" href="/s?k=bags&amp;page=2">Next</a>
</div>
</body>
</html>`

func TestParseSearchPage(t *testing.T) {
	products, next := parseSearchPage(strings.NewReader(searchPage), "https://www.amazon.in")

	require.Len(t, products, 2)

	assert.Equal(t, "Blue Canvas Bag", products[0].Name)
	assert.Equal(t, "https://www.amazon.in/dp/B0AAAA1111", products[0].URL)
	assert.Equal(t, "₹499", products[0].Price)
	assert.Equal(t, "4.3 out of 5 stars", products[0].Rating)
	assert.Equal(t, "1,204", products[0].NumReviews)

	assert.Equal(t, "Leather Satchel", products[1].Name)
	assert.Equal(t, "https://www.amazon.in/dp/B0BBBB2222", products[1].URL)
	assert.Equal(t, "₹1,999", products[1].Price)
	assert.Equal(t, "N/A", products[1].Rating)
	assert.Equal(t, "N/A", products[1].NumReviews)

	assert.Equal(t, "/s?k=bags&page=2", next)
}

func TestParseSearchPage_NoResults(t *testing.T) {
	products, next := parseSearchPage(strings.NewReader("<html><body><p>No results</p></body></html>"), "https://www.amazon.in")
	assert.Empty(t, products)
	assert.Empty(t, next)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bags_data.csv")
	products := []Product{
		{Name: "Blue Canvas Bag", URL: "https://www.amazon.in/dp/B0AAAA1111", Price: "₹499", Rating: "4.3 out of 5 stars", NumReviews: "1,204"},
	}

	require.NoError(t, WriteCSV(products, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Product URL,Product Name,Product Price,Rating,Number of reviews", lines[0])
	assert.Contains(t, lines[1], "Blue Canvas Bag")
}

func TestWriteCSV_NoData(t *testing.T) {
	assert.Error(t, WriteCSV(nil, filepath.Join(t.TempDir(), "empty.csv")))
}
