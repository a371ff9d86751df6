// Offline utility: scrapes Amazon search results for a term into a CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
)

func main() {
	term := flag.String("term", "bags", "search term to scrape")
	domain := flag.String("domain", "in", "amazon TLD to scrape")
	pages := flag.Int("pages", 5, "maximum number of result pages")
	out := flag.String("out", "", "output CSV path (default <term>_data.csv)")
	flag.Parse()

	scraper := NewSearchScraper(*domain, *pages)
	products := scraper.Scrape(context.Background(), *term)
	if len(products) == 0 {
		log.Println("No data to write to CSV.")
		return
	}

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("%s_data.csv", *term)
	}
	if err := WriteCSV(products, filename); err != nil {
		log.Fatalf("failed to write CSV: %v", err)
	}
	log.Printf("Data successfully written to %s", filename)
}
