package curate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/navinbhat12/api-about-nothing/internal/domain"
)

// RawQuote is one record of the scraped quotes file. Season and episode show
// up both as numbers and as strings in the source data.
type RawQuote struct {
	Quote   string     `json:"quote"`
	Author  string     `json:"author"`
	Season  FlexString `json:"season"`
	Episode FlexString `json:"episode"`
}

// FlexString accepts a JSON string or a bare number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = FlexString(data)
	return nil
}

// DefaultAuthorMap maps the author labels used by the quote source to
// character names in the dataset.
var DefaultAuthorMap = map[string]string{
	"Jerry":                       "Jerry Seinfeld",
	"George":                      "George Costanza",
	"Elaine":                      "Elaine Benes",
	"Kramer":                      "Cosmo Kramer",
	"Newman":                      "Newman",
	"Alton Benes(Elaines Father)": "Alton Benes",
	"Antonio(The Busboy)":         "Antonio",
	"Jerry's Mom":                 "Helen Seinfeld",
	"Morty":                       "Morty Seinfeld",
	"TV Kramer (to George)":       "Cosmo Kramer",
}

// EpisodesPerSeason is the broadcast episode count of each season. Episodes
// missing from the dataset get an id derived from it.
var EpisodesPerSeason = map[int]int{
	1: 5, 2: 12, 3: 23, 4: 24, 5: 22, 6: 24, 7: 24, 8: 22, 9: 24,
}

// EstimatedEpisodeID is the running episode number of season/episode across
// the whole series.
func EstimatedEpisodeID(season, episode int) int {
	id := episode
	for s := 1; s < season; s++ {
		id += EpisodesPerSeason[s]
	}
	return id
}

// MissingEpisode is a season/episode pair no dataset episode covers.
type MissingEpisode struct {
	Season  int
	Episode int
	ID      int
}

// QuoteReport summarizes a TransformQuotes run.
type QuoteReport struct {
	Total           int
	Converted       int
	UnmappedAuthors []string
	MissingEpisodes []MissingEpisode
	Malformed       int
}

// TransformQuotes converts scraped quotes into dataset quotes. Authors are
// resolved only through authorMap; quotes whose author is missing from the map
// or maps to no character are dropped and reported as unmapped. Episodes are
// resolved by their SxEyy code; unknown ones get a synthesized reference.
func TransformQuotes(raw []RawQuote, characters []domain.Character, episodes []domain.Episode, authorMap map[string]string) ([]domain.Quote, QuoteReport) {
	charByName := make(map[string]domain.Character, len(characters))
	for _, c := range characters {
		charByName[c.Name] = c
	}

	type seasonEpisode struct{ season, episode int }
	epByCode := make(map[seasonEpisode]domain.Episode, len(episodes))
	for _, ep := range episodes {
		if season, number, ok := ep.SeasonNumber(); ok {
			epByCode[seasonEpisode{season, number}] = ep
		}
	}

	report := QuoteReport{
		Total:           len(raw),
		UnmappedAuthors: make([]string, 0),
		MissingEpisodes: make([]MissingEpisode, 0),
	}
	seenAuthors := make(map[string]struct{})
	seenMissing := make(map[seasonEpisode]struct{})

	quotes := make([]domain.Quote, 0, len(raw))
	for _, q := range raw {
		name := authorMap[q.Author]
		character, ok := charByName[name]
		if name == "" || !ok {
			if _, seen := seenAuthors[q.Author]; !seen {
				seenAuthors[q.Author] = struct{}{}
				report.UnmappedAuthors = append(report.UnmappedAuthors, q.Author)
			}
			continue
		}

		seasonText := strings.TrimSpace(string(q.Season))
		episodeText := strings.TrimSpace(string(q.Episode))
		season, errSeason := strconv.Atoi(seasonText)
		number, errEpisode := strconv.Atoi(episodeText)
		if errSeason != nil || errEpisode != nil {
			report.Malformed++
			continue
		}

		key := seasonEpisode{season, number}
		ep, found := epByCode[key]
		epRef := ep.Ref()
		if !found {
			id := EstimatedEpisodeID(season, number)
			epRef = domain.Ref{
				Name: fmt.Sprintf("Season %s Episode %s", seasonText, episodeText),
				URL:  fmt.Sprintf("/episodes/%d", id),
			}
			if _, seen := seenMissing[key]; !seen {
				seenMissing[key] = struct{}{}
				report.MissingEpisodes = append(report.MissingEpisodes, MissingEpisode{Season: season, Episode: number, ID: id})
			}
		}

		quotes = append(quotes, domain.Quote{
			Quote:     CleanQuoteText(q.Quote),
			Character: character.Ref(),
			Episode:   epRef,
		})
	}
	report.Converted = len(quotes)

	return quotes, report
}

var curlyDoubleQuotes = strings.NewReplacer("“", `"`, "”", `"`)

// CleanQuoteText strips a pair of wrapping backticks and straightens curly
// double quotes.
func CleanQuoteText(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`") {
		text = text[1 : len(text)-1]
	}
	return curlyDoubleQuotes.Replace(text)
}

var backtickLiteral = regexp.MustCompile("`([^`]*)`")

// FixJSON repairs the scraped quotes file: backtick-delimited literals become
// JSON strings and control characters are removed.
func FixJSON(text string) string {
	text = backtickLiteral.ReplaceAllStringFunc(text, func(literal string) string {
		body := literal[1 : len(literal)-1]
		body = strings.ReplaceAll(body, `"`, `\"`)
		body = strings.ReplaceAll(body, "\n", `\n`)
		return `"` + body + `"`
	})
	return stripControl(text)
}

func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, text)
}
