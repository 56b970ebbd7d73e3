// Command transform_quotes converts the scraped quotes file into the quote
// records served by the API.
package main

import (
	"flag"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/service/curate"
)

func main() {
	dataDir := flag.String("data", constants.DefaultDataDir, "dataset directory")
	authorsFile := flag.String("authors", "", "optional JSON object of extra author -> character name mappings")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	authorMap := make(map[string]string, len(curate.DefaultAuthorMap))
	for author, name := range curate.DefaultAuthorMap {
		authorMap[author] = name
	}
	if *authorsFile != "" {
		var extra map[string]string
		if err := domain.ReadFile(*authorsFile, &extra); err != nil {
			logger.Fatal("failed to load author map", zap.String("file", *authorsFile), zap.Error(err))
		}
		for author, name := range extra {
			authorMap[author] = name
		}
	}

	var raw []curate.RawQuote
	rawFile := filepath.Join(*dataDir, constants.DataFiles.RawQuotes)
	if err := domain.ReadFile(rawFile, &raw); err != nil {
		logger.Fatal("failed to load raw quotes", zap.String("file", rawFile), zap.Error(err))
	}
	var characters []domain.Character
	if err := domain.ReadFile(filepath.Join(*dataDir, constants.DataFiles.Characters), &characters); err != nil {
		logger.Fatal("failed to load characters", zap.Error(err))
	}
	var episodes []domain.Episode
	if err := domain.ReadFile(filepath.Join(*dataDir, constants.DataFiles.Episodes), &episodes); err != nil {
		logger.Fatal("failed to load episodes", zap.Error(err))
	}

	quotes, report := curate.TransformQuotes(raw, characters, episodes, authorMap)

	for _, author := range report.UnmappedAuthors {
		logger.Warn("Unmapped author, quotes dropped", zap.String("author", author))
	}
	for _, m := range report.MissingEpisodes {
		logger.Warn("Episode missing from dataset",
			zap.Int("season", m.Season), zap.Int("episode", m.Episode), zap.Int("estimated_id", m.ID))
	}

	outFile := filepath.Join(*dataDir, constants.DataFiles.Quotes)
	if err := domain.WriteFile(outFile, quotes); err != nil {
		logger.Fatal("failed to write quotes", zap.Error(err))
	}

	logger.Info("Quote transform completed",
		zap.Int("total", report.Total),
		zap.Int("converted", report.Converted),
		zap.Int("malformed", report.Malformed),
		zap.String("output", outFile),
	)
}
