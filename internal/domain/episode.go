package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// EpisodeQuote is the quote stub embedded in episode records. It is carried
// through for fidelity with the dataset but not used by any query.
type EpisodeQuote struct {
	Character string `json:"character"`
	Quote     string `json:"quote"`
}

type Episode struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Img        string         `json:"img"`
	Episode    string         `json:"episode"`
	Blurb      string         `json:"blurb"`
	Characters []Ref          `json:"characters"`
	Quotes     []EpisodeQuote `json:"quotes"`
}

var episodeCodePattern = regexp.MustCompile(`^S(\d+)E(\d+)`)

func (e Episode) Ref() Ref {
	return Ref{Name: e.Name, URL: fmt.Sprintf("/episodes/%d", e.ID)}
}

// SeasonNumber parses the episode code (e.g. "S2E05") into season and episode
// numbers. ok is false when the code is empty or malformed.
func (e Episode) SeasonNumber() (season, number int, ok bool) {
	return ParseEpisodeCode(e.Episode)
}

func ParseEpisodeCode(code string) (season, number int, ok bool) {
	m := episodeCodePattern.FindStringSubmatch(code)
	if m == nil {
		return 0, 0, false
	}
	season, _ = strconv.Atoi(m[1])
	number, _ = strconv.Atoi(m[2])
	return season, number, true
}
