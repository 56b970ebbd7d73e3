// Command fix_quotes repairs the scraped quotes file in place so it parses as
// JSON.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/service/curate"
)

func main() {
	dataDir := flag.String("data", constants.DefaultDataDir, "dataset directory")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	path := filepath.Join(*dataDir, constants.DataFiles.RawQuotes)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("failed to read quotes file", zap.String("file", path), zap.Error(err))
	}

	fixed := curate.FixJSON(string(data))

	var raw []curate.RawQuote
	if err := json.Unmarshal([]byte(fixed), &raw); err != nil {
		logger.Fatal("repaired file is still not valid JSON, leaving original untouched", zap.Error(err))
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, []byte(fixed), 0o644); err != nil {
		logger.Fatal("failed to write quotes file", zap.Error(err))
	}
	if err := os.Rename(tmpFile, path); err != nil {
		logger.Fatal("failed to replace quotes file", zap.Error(err))
	}

	logger.Info("Quotes file repaired", zap.String("file", path), zap.Int("quotes", len(raw)))
}
