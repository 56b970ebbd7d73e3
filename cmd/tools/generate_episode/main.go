// Command generate_episode adds an episode built from a transcript page and
// links the recurring characters who speak in it.
//
//	generate_episode TheStockTip.htm
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/service/curate"
	"github.com/navinbhat12/api-about-nothing/internal/service/scraper"
)

func main() {
	dataDir := flag.String("data", constants.DefaultDataDir, "dataset directory")
	baseURL := flag.String("base-url", "", "transcript site root (default seinfeldscripts.com)")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: generate_episode [-data dir] [-base-url url] <slug>")
		os.Exit(2)
	}
	slug := flag.Arg(0)

	charactersFile := filepath.Join(*dataDir, constants.DataFiles.Characters)
	episodesFile := filepath.Join(*dataDir, constants.DataFiles.Episodes)

	var characters []domain.Character
	if err := domain.ReadFile(charactersFile, &characters); err != nil {
		logger.Fatal("failed to load characters", zap.String("file", charactersFile), zap.Error(err))
	}
	var episodes []domain.Episode
	if err := domain.ReadFile(episodesFile, &episodes); err != nil {
		logger.Fatal("failed to load episodes", zap.String("file", episodesFile), zap.Error(err))
	}

	s := scraper.NewTranscriptScraper(scraper.Options{BaseURL: *baseURL}, logger)
	speakers, err := s.FetchSpeakers(context.Background(), slug)
	if err != nil {
		logger.Fatal("failed to fetch transcript", zap.String("slug", slug), zap.Error(err))
	}

	title := scraper.TitleFromSlug(slug)
	characters, episodes, result := curate.AddEpisode(characters, episodes, title, speakers)

	if err := domain.WriteFile(episodesFile, episodes); err != nil {
		logger.Fatal("failed to write episodes", zap.Error(err))
	}
	if err := domain.WriteFile(charactersFile, characters); err != nil {
		logger.Fatal("failed to write characters", zap.Error(err))
	}

	logger.Info("Episode generated",
		zap.String("title", title),
		zap.Int("id", result.Episode.ID),
		zap.Bool("created", result.Created),
		zap.Strings("linked", result.Linked),
		zap.Strings("unlinked", result.Unlinked),
		zap.Strings("unmatched_speakers", result.Unmatched),
	)
}
