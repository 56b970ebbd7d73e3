package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
	"github.com/navinbhat12/api-about-nothing/internal/util"
	"github.com/navinbhat12/api-about-nothing/pkg/errors"
)

// TranscriptScraper fetches transcript and season-summary pages and reduces
// them to plain text.
type TranscriptScraper struct {
	httpClient     *http.Client
	logger         *zap.Logger
	baseURL        string
	maxConcurrency int
}

type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxConcurrency int
}

func NewTranscriptScraper(opts Options, logger *zap.Logger) *TranscriptScraper {
	if opts.BaseURL == "" {
		opts.BaseURL = constants.Scraper.BaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: constants.Scraper.RequestTimeout}
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = constants.Scraper.MaxConcurrency
	}

	return &TranscriptScraper{
		httpClient:     opts.HTTPClient,
		logger:         logger,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		maxConcurrency: opts.MaxConcurrency,
	}
}

// PageURL returns the absolute URL of a page on the transcript site.
func (s *TranscriptScraper) PageURL(page string) string {
	return s.baseURL + "/" + strings.TrimLeft(page, "/")
}

// FetchText downloads page and returns the text content of its body.
func (s *TranscriptScraper) FetchText(ctx context.Context, page string) (string, error) {
	url := s.PageURL(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.NewScrapeError("failed to build request", url, "request", err)
	}
	req.Header.Set("User-Agent", constants.Scraper.UserAgent)

	s.logger.Info("Fetching page", zap.String("url", url))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.NewScrapeError("HTTP request failed", url, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewScrapeError("unexpected status code", url, "fetch",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", errors.NewScrapeError("HTML parse failed", url, "parse", err)
	}

	return doc.Find("body").Text(), nil
}

// FetchSpeakers returns the unique speaker names of a transcript page in
// order of first appearance.
func (s *TranscriptScraper) FetchSpeakers(ctx context.Context, slug string) ([]string, error) {
	text, err := s.FetchText(ctx, slug)
	if err != nil {
		return nil, err
	}

	speakers := ExtractSpeakers(text)
	s.logger.Info("Extracted speakers",
		zap.String("slug", slug),
		zap.Int("count", len(speakers)),
		zap.Strings("speakers", speakers))
	return speakers, nil
}

// FetchSeasonBlurbs downloads the summary page of one season.
func (s *TranscriptScraper) FetchSeasonBlurbs(ctx context.Context, season int) ([]EpisodeBlurb, error) {
	if season < constants.Scraper.MinSeason || season > constants.Scraper.MaxSeason {
		return nil, errors.NewValidationError(
			fmt.Sprintf("season must be between %d and %d", constants.Scraper.MinSeason, constants.Scraper.MaxSeason),
			"season", season)
	}

	text, err := s.FetchText(ctx, fmt.Sprintf(constants.Scraper.SeasonPagePath, season))
	if err != nil {
		return nil, err
	}

	blurbs := ParseSeasonBlurbs(text)
	s.logger.Info("Parsed season page", zap.Int("season", season), zap.Int("episodes", len(blurbs)))
	return blurbs, nil
}

// FetchSeasons fetches several season pages with bounded concurrency. The
// result is ordered like seasons; the first failure cancels the rest.
func (s *TranscriptScraper) FetchSeasons(ctx context.Context, seasons []int) ([][]EpisodeBlurb, error) {
	results := make([][]EpisodeBlurb, len(seasons))

	p := pool.New().WithMaxGoroutines(s.maxConcurrency).WithContext(ctx).WithCancelOnError()
	for idx, season := range seasons {
		idx, season := idx, season
		p.Go(func(ctx context.Context) error {
			blurbs, err := s.FetchSeasonBlurbs(ctx, season)
			if err != nil {
				return fmt.Errorf("season %d: %w", season, err)
			}
			results[idx] = blurbs
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// spaceClass is the whitespace set used by the page heuristics. Go's \s is
// ASCII only; transcript pages are full of &nbsp; and other Unicode spaces.
const spaceClass = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	speakerLine    = regexp.MustCompile(`^[A-Za-z][A-Za-z` + spaceClass + `.\-']*:[` + spaceClass + `]`)
	whitespaceRuns = regexp.MustCompile(`[` + spaceClass + `]+`)
)

// ExtractSpeakers finds lines shaped like "NAME: dialogue" and returns the
// distinct names in order of first appearance.
func ExtractSpeakers(text string) []string {
	names := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !speakerLine.MatchString(line) {
			continue
		}
		name := line[:strings.IndexByte(line, ':')]
		names = append(names, whitespaceRuns.ReplaceAllString(name, " "))
	}
	return util.UniqueStrings(names)
}

// SortedSpeakers is ExtractSpeakers in lexical order.
func SortedSpeakers(text string) []string {
	names := ExtractSpeakers(text)
	sort.Strings(names)
	return names
}

// EpisodeBlurb is one "TITLE (Episode n): summary" block of a season page.
type EpisodeBlurb struct {
	Title string
	Blurb string
}

var blurbHeader = regexp.MustCompile(`([A-Z0-9\-` + spaceClass + `]+)\n*\(Episode \d+\):`)

const airDateMarker = "Air Date:"

// ParseSeasonBlurbs splits a season page into episode summaries. A summary
// runs from its header to the next "Air Date:" marker or the end of the text.
// Titles may carry stray leading digits from the preceding air date; callers
// compare them through NormalizeTitle.
func ParseSeasonBlurbs(text string) []EpisodeBlurb {
	blurbs := make([]EpisodeBlurb, 0)
	pos := 0
	for pos < len(text) {
		loc := blurbHeader.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		title := text[pos+loc[2] : pos+loc[3]]
		bodyStart := pos + loc[1]

		bodyEnd := len(text)
		if idx := strings.Index(text[bodyStart:], airDateMarker); idx >= 0 {
			bodyEnd = bodyStart + idx
		}

		blurbs = append(blurbs, EpisodeBlurb{
			Title: strings.TrimSpace(whitespaceRuns.ReplaceAllString(title, " ")),
			Blurb: strings.TrimSpace(whitespaceRuns.ReplaceAllString(text[bodyStart:bodyEnd], " ")),
		})

		if bodyEnd == bodyStart {
			bodyEnd++
		}
		pos = bodyEnd
	}
	return blurbs
}

var (
	pilotSuffix = regexp.MustCompile(`(?i)\s*-\s*PILOT`)
	nonLetters  = regexp.MustCompile(`[^a-zA-Z]`)
)

// NormalizeTitle reduces an episode title to lowercase letters only, dropping
// a " - PILOT" marker, so site headers and dataset names compare equal.
func NormalizeTitle(title string) string {
	title = pilotSuffix.ReplaceAllString(title, "")
	title = nonLetters.ReplaceAllString(title, "")
	return strings.ToLower(title)
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// TitleFromSlug turns a transcript page name such as "TheStockTip.htm" into
// "The Stock Tip".
func TitleFromSlug(slug string) string {
	slug = strings.Replace(slug, ".html", "", 1)
	slug = strings.Replace(slug, ".htm", "", 1)
	return camelBoundary.ReplaceAllString(slug, "$1 $2")
}
