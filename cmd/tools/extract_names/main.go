// Command extract_names prints the speakers of one transcript page.
//
//	extract_names TheStockTip.htm
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/service/scraper"
)

func main() {
	baseURL := flag.String("base-url", "", "transcript site root (default seinfeldscripts.com)")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: extract_names [-base-url url] <slug>")
		os.Exit(2)
	}
	slug := flag.Arg(0)

	s := scraper.NewTranscriptScraper(scraper.Options{BaseURL: *baseURL}, logger)

	text, err := s.FetchText(context.Background(), slug)
	if err != nil {
		logger.Fatal("failed to fetch transcript", zap.String("slug", slug), zap.Error(err))
	}

	names := scraper.SortedSpeakers(text)
	for _, name := range names {
		fmt.Println(name)
	}
	logger.Info("Speaker extraction completed", zap.String("slug", slug), zap.Int("count", len(names)))
}
