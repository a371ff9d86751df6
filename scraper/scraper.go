package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Product is one search-result listing.
type Product struct {
	Name       string
	URL        string
	Price      string
	Rating     string
	NumReviews string
}

// SearchScraper walks Amazon search result pages for a term and collects
// product listings.
type SearchScraper struct {
	baseURL  string
	maxPages int
	client   *http.Client
	delay    time.Duration
}

func NewSearchScraper(domain string, maxPages int) *SearchScraper {
	return &SearchScraper{
		baseURL:  fmt.Sprintf("https://www.amazon.%s", domain),
		maxPages: maxPages,
		client:   &http.Client{Timeout: 30 * time.Second},
		delay:    time.Second,
	}
}

// Scrape fetches up to maxPages of results, following the next-page link.
func (s *SearchScraper) Scrape(ctx context.Context, term string) []Product {
	pageURL := fmt.Sprintf("%s/s?k=%s", s.baseURL, url.QueryEscape(term))
	var all []Product

	for page := 1; page <= s.maxPages; page++ {
		log.Printf("Scraping page %d: %s", page, pageURL)

		products, next, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			log.Printf("an error occurred while scraping %s: %v", pageURL, err)
			break
		}
		if len(products) == 0 {
			log.Println("No results found on this page.")
			break
		}
		all = append(all, products...)

		if next == "" {
			log.Println("No more pages to scrape.")
			break
		}
		pageURL = s.baseURL + next

		// Be respectful to the server.
		time.Sleep(s.delay)
	}

	return all
}

func (s *SearchScraper) fetchPage(ctx context.Context, pageURL string) ([]Product, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("non-200 status code for %s: %d", pageURL, resp.StatusCode)
	}

	products, next := parseSearchPage(resp.Body, s.baseURL)
	return products, next, nil
}

// parseSearchPage extracts product listings and the next-page path from a
// search results document. Listings live in divs marked
// data-component-type="s-search-result"; within one, the h2 anchor carries
// the name and relative URL, span.a-offscreen the price, the first <i> the
// rating and the dir="auto" a-size-base span the review count.
func parseSearchPage(r io.Reader, baseURL string) ([]Product, string) {
	tokenizer := html.NewTokenizer(r)

	var products []Product
	var next string

	var cur Product
	depth := 0 // div nesting inside the current result, 0 = outside
	inH2 := false
	inName := false
	inPrice := false
	inRating := false
	inReviews := false
	haveRating := false

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "div":
				if depth > 0 {
					depth++
				} else if attrVal(token, "data-component-type") == "s-search-result" {
					depth = 1
					cur = Product{Price: "N/A", Rating: "N/A", NumReviews: "N/A"}
					haveRating = false
				}
			case "h2":
				if depth > 0 {
					inH2 = true
				}
			case "a":
				if label := attrVal(token, "aria-label"); strings.HasPrefix(label, "Go to next page") {
					next = attrVal(token, "href")
				}
				if depth > 0 && inH2 && cur.URL == "" {
					cur.URL = baseURL + attrVal(token, "href")
					inName = true
				}
			case "span":
				if depth == 0 {
					break
				}
				class := attrVal(token, "class")
				if strings.Contains(class, "a-offscreen") && cur.Price == "N/A" {
					inPrice = true
				} else if strings.Contains(class, "a-size-base") && attrVal(token, "dir") == "auto" && cur.NumReviews == "N/A" {
					inReviews = true
				}
			case "i":
				if depth > 0 && !haveRating {
					inRating = true
				}
			}
		case html.EndTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "div":
				if depth > 0 {
					depth--
					if depth == 0 && cur.Name != "" {
						products = append(products, cur)
					}
				}
			case "h2":
				inH2 = false
			case "a":
				inName = false
			case "span":
				inPrice = false
				inReviews = false
			case "i":
				if inRating {
					inRating = false
					haveRating = true
				}
			}
		case html.TextToken:
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" || depth == 0 {
				continue
			}
			switch {
			case inName:
				if cur.Name == "" {
					cur.Name = text
				} else {
					cur.Name += " " + text
				}
			case inPrice:
				cur.Price = text
			case inRating:
				cur.Rating = text
			case inReviews:
				cur.NumReviews = text
			}
		}
	}

	return products, next
}

func attrVal(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// WriteCSV writes the scraped listings with the same header layout the bot's
// operators consume.
func WriteCSV(products []Product, filename string) error {
	if len(products) == 0 {
		return fmt.Errorf("no data to write to CSV")
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Product URL", "Product Name", "Product Price", "Rating", "Number of reviews"}); err != nil {
		return err
	}
	for _, p := range products {
		if err := w.Write([]string{p.URL, p.Name, p.Price, p.Rating, p.NumReviews}); err != nil {
			return err
		}
	}
	return w.Error()
}
