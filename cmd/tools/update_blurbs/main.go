// Command update_blurbs refreshes episode summaries from the season pages.
//
//	update_blurbs 1 2 3
//
// With no arguments every season is fetched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/service/curate"
	"github.com/navinbhat12/api-about-nothing/internal/service/scraper"
)

func main() {
	dataDir := flag.String("data", constants.DefaultDataDir, "dataset directory")
	baseURL := flag.String("base-url", "", "transcript site root (default seinfeldscripts.com)")
	workers := flag.Int("workers", constants.Scraper.MaxConcurrency, "concurrent season fetches")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	seasons, err := parseSeasons(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: update_blurbs [-data dir] [-workers n] [season...]")
		os.Exit(2)
	}

	episodesFile := filepath.Join(*dataDir, constants.DataFiles.Episodes)
	var episodes []domain.Episode
	if err := domain.ReadFile(episodesFile, &episodes); err != nil {
		logger.Fatal("failed to load episodes", zap.String("file", episodesFile), zap.Error(err))
	}

	s := scraper.NewTranscriptScraper(scraper.Options{BaseURL: *baseURL, MaxConcurrency: *workers}, logger)
	perSeason, err := s.FetchSeasons(context.Background(), seasons)
	if err != nil {
		logger.Fatal("failed to fetch season pages", zap.Error(err))
	}

	var blurbs []scraper.EpisodeBlurb
	for _, b := range perSeason {
		blurbs = append(blurbs, b...)
	}

	episodes, result := curate.ApplyBlurbs(episodes, blurbs)
	for _, title := range result.Unmatched {
		logger.Warn("No episode for scraped title", zap.String("title", title))
	}

	if err := domain.WriteFile(episodesFile, episodes); err != nil {
		logger.Fatal("failed to write episodes", zap.Error(err))
	}

	logger.Info("Blurb update completed",
		zap.Ints("seasons", seasons),
		zap.Int("scraped", len(blurbs)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("unmatched", len(result.Unmatched)),
	)
}

func parseSeasons(args []string) ([]int, error) {
	if len(args) == 0 {
		seasons := make([]int, 0, constants.Scraper.MaxSeason)
		for s := constants.Scraper.MinSeason; s <= constants.Scraper.MaxSeason; s++ {
			seasons = append(seasons, s)
		}
		return seasons, nil
	}

	seasons := make([]int, 0, len(args))
	for _, arg := range args {
		s, err := strconv.Atoi(arg)
		if err != nil || s < constants.Scraper.MinSeason || s > constants.Scraper.MaxSeason {
			return nil, fmt.Errorf("invalid season %q", arg)
		}
		seasons = append(seasons, s)
	}
	return seasons, nil
}
