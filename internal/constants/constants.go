package constants

import "time"

var Pagination = struct {
	PageSize    int
	DefaultPage int
}{
	PageSize:    20,
	DefaultPage: 1,
}

var DataFiles = struct {
	Characters string
	Episodes   string
	Quotes     string
	RawQuotes  string
}{
	Characters: "characters.json",
	Episodes:   "episodes.json",
	Quotes:     "quotes-transformed.json",
	RawQuotes:  "quotes.json",
}

// DefaultDataDir is where the offline tools read and write datasets. The
// server embeds the same files at build time.
const DefaultDataDir = "internal/domain/data"

var ServerConfig = struct {
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}{
	ReadHeaderTimeout: 5 * time.Second,
	ReadTimeout:       10 * time.Second,
	WriteTimeout:      15 * time.Second,
	IdleTimeout:       60 * time.Second,
}

var ResponseCache = struct {
	KeyPrefix        string
	OpTimeout        time.Duration
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}{
	KeyPrefix:        "seinfeld:response:",
	OpTimeout:        500 * time.Millisecond,
	BreakerThreshold: 5,
	BreakerCooldown:  30 * time.Second,
}

var Scraper = struct {
	BaseURL        string
	SeasonPagePath string
	UserAgent      string
	RequestTimeout time.Duration
	MaxConcurrency int
	MinSeason      int
	MaxSeason      int
}{
	BaseURL:        "https://seinfeldscripts.com",
	SeasonPagePath: "seinfeld-season-%d.html",
	UserAgent:      "Mozilla/5.0 (compatible; APIAboutNothing/1.0; +https://seinfeldscripts.com)",
	RequestTimeout: 15 * time.Second,
	MaxConcurrency: 3,
	MinSeason:      1,
	MaxSeason:      9,
}
