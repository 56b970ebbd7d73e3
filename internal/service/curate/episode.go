// Package curate holds the dataset mutations performed by the offline tools.
// Functions here never touch the network or the filesystem; callers load the
// collections, apply a change and write the result back.
package curate

import (
	"strings"

	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/service/scraper"
	"github.com/navinbhat12/api-about-nothing/internal/util"
)

// principalFirstNames are skipped when linking speakers to characters; every
// episode features them and their lines use the bare first name.
var principalFirstNames = []string{"Jerry", "George", "Elaine", "Kramer"}

// EpisodeResult describes what AddEpisode changed.
type EpisodeResult struct {
	Episode   domain.Episode
	Created   bool
	Linked    []string
	Unlinked  []string
	Unmatched []string
}

// AddEpisode records an episode featuring the characters whose first name
// matches one of speakers. A new episode gets the next free id; an existing
// episode with the same title has its character list replaced, and characters
// outside the principal cast that no longer match lose their reference to it.
// Matched characters gain a back-reference unless they already reference the
// title.
func AddEpisode(characters []domain.Character, episodes []domain.Episode, title string, speakers []string) ([]domain.Character, []domain.Episode, EpisodeResult) {
	characters = append([]domain.Character(nil), characters...)
	episodes = append([]domain.Episode(nil), episodes...)

	matched := make([]int, 0)
	isMatched := make(map[int]struct{})
	matchedSpeakers := make(map[string]struct{})
	for idx, c := range characters {
		first := util.FirstWord(c.Name)
		if first == "" || util.Contains(principalFirstNames, first) {
			continue
		}
		for _, speaker := range speakers {
			if strings.EqualFold(first, strings.TrimSpace(speaker)) {
				matched = append(matched, idx)
				isMatched[idx] = struct{}{}
				matchedSpeakers[speaker] = struct{}{}
				break
			}
		}
	}

	refs := make([]domain.Ref, 0, len(matched))
	linked := make([]string, 0, len(matched))
	for _, idx := range matched {
		refs = append(refs, characters[idx].Ref())
		linked = append(linked, characters[idx].Name)
	}

	result := EpisodeResult{Linked: linked, Unlinked: make([]string, 0), Unmatched: make([]string, 0)}
	for _, speaker := range speakers {
		if _, ok := matchedSpeakers[speaker]; !ok {
			result.Unmatched = append(result.Unmatched, speaker)
		}
	}

	pos := -1
	for idx, ep := range episodes {
		if ep.Name == title {
			pos = idx
			break
		}
	}

	if pos >= 0 {
		episodes[pos].Characters = refs
		for idx, c := range characters {
			if _, ok := isMatched[idx]; ok || util.Contains(principalFirstNames, util.FirstWord(c.Name)) {
				continue
			}
			if !c.HasEpisode(title) {
				continue
			}
			characters[idx].Episodes = withoutEpisode(c.Episodes, title)
			result.Unlinked = append(result.Unlinked, c.Name)
		}
	} else {
		episodes = append(episodes, domain.Episode{
			ID:         nextEpisodeID(episodes),
			Name:       title,
			Characters: refs,
			Quotes:     []domain.EpisodeQuote{},
		})
		pos = len(episodes) - 1
		result.Created = true
	}
	result.Episode = episodes[pos]

	epRef := episodes[pos].Ref()
	for _, idx := range matched {
		if characters[idx].HasEpisode(title) {
			continue
		}
		eps := append([]domain.Ref(nil), characters[idx].Episodes...)
		characters[idx].Episodes = append(eps, epRef)
	}

	return characters, episodes, result
}

// withoutEpisode returns a copy of refs minus any reference named title.
func withoutEpisode(refs []domain.Ref, title string) []domain.Ref {
	kept := make([]domain.Ref, 0, len(refs))
	for _, ref := range refs {
		if ref.Name != title {
			kept = append(kept, ref)
		}
	}
	return kept
}

func nextEpisodeID(episodes []domain.Episode) int {
	maxID := 0
	for _, ep := range episodes {
		if ep.ID > maxID {
			maxID = ep.ID
		}
	}
	return maxID + 1
}

// BlurbResult lists which scraped summaries found a home.
type BlurbResult struct {
	Updated   []string
	Unmatched []string
}

// ApplyBlurbs copies each summary onto the episode whose normalized title
// matches. Later summaries for the same title win.
func ApplyBlurbs(episodes []domain.Episode, blurbs []scraper.EpisodeBlurb) ([]domain.Episode, BlurbResult) {
	episodes = append([]domain.Episode(nil), episodes...)

	byTitle := make(map[string]int, len(episodes))
	for idx, ep := range episodes {
		byTitle[scraper.NormalizeTitle(ep.Name)] = idx
	}

	result := BlurbResult{Updated: make([]string, 0), Unmatched: make([]string, 0)}
	for _, b := range blurbs {
		idx, ok := byTitle[scraper.NormalizeTitle(b.Title)]
		if !ok || b.Blurb == "" {
			result.Unmatched = append(result.Unmatched, b.Title)
			continue
		}
		episodes[idx].Blurb = b.Blurb
		result.Updated = append(result.Updated, episodes[idx].Name)
	}
	result.Updated = util.UniqueStrings(result.Updated)

	return episodes, result
}
