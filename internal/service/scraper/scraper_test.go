package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

const transcriptPage = `<html><head><title>The Stock Tip</title></head><body>
<p>Written by Larry David</p>
<p>JERRY: So, what happened with the stock?
GEORGE: It went down.
  ELAINE: You bought stock?
JERRY: He always buys stock.
MR. WILHELM: Costanza!
Note:no space after this colon
12 ANGRY MEN: not a speaker
</p></body></html>`

func TestExtractSpeakers(t *testing.T) {
	got := ExtractSpeakers("JERRY: Hi\nGEORGE: Hey\n  JERRY: Again\nMR. O'BRIEN-SMITH: Yes\nnot dialogue\n1ST: no\nKRAMER:no-space")
	want := []string{"JERRY", "GEORGE", "MR. O'BRIEN-SMITH"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSpeakersWithNonBreakingSpace(t *testing.T) {
	got := ExtractSpeakers("JERRY:\u00a0Hello\nMR.\u00a0WILHELM:\u00a0Costanza!\nGEORGE: hi\n\u00a0ELAINE: Get out!\n")
	want := []string{"JERRY", "MR. WILHELM", "GEORGE", "ELAINE"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSpeakersEmptyText(t *testing.T) {
	got := ExtractSpeakers("")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSortedSpeakers(t *testing.T) {
	got := SortedSpeakers("KRAMER: a\nELAINE: b\nGEORGE: c")
	want := []string{"ELAINE", "GEORGE", "KRAMER"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTitleFromSlug(t *testing.T) {
	cases := map[string]string{
		"TheStockTip.htm":    "The Stock Tip",
		"TheStakeout.html":   "The Stakeout",
		"TheExGirlfriend":    "The Ex Girlfriend",
		"male-unbonding.htm": "male-unbonding",
	}
	for slug, want := range cases {
		if got := TitleFromSlug(slug); got != want {
			t.Fatalf("TitleFromSlug(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"THE SEINFELD CHRONICLES - PILOT": "theseinfeldchronicles",
		"The Seinfeld Chronicles":         "theseinfeldchronicles",
		"1990  THE STAKEOUT":              "thestakeout",
		"The Ex-Girlfriend":               "theexgirlfriend",
		"the pilot":                       "thepilot",
	}
	for title, want := range cases {
		if got := NormalizeTitle(title); got != want {
			t.Fatalf("NormalizeTitle(%q) = %q, want %q", title, got, want)
		}
	}
}

const seasonOneText = `Season 1
THE SEINFELD CHRONICLES - PILOT
(Episode 1): Jerry and George discuss
a woman   Jerry met in Michigan.
Air Date: July 5, 1989

THE STAKEOUT
(Episode 2): Jerry stakes out an office building.
Air Date: May 31, 1990
THE ROBBERY
(Episode 3): Jerry's apartment is robbed.`

func TestParseSeasonBlurbs(t *testing.T) {
	blurbs := ParseSeasonBlurbs(seasonOneText)
	if len(blurbs) != 3 {
		t.Fatalf("expected 3 blurbs, got %d: %#v", len(blurbs), blurbs)
	}

	if NormalizeTitle(blurbs[0].Title) != "theseinfeldchronicles" {
		t.Fatalf("unexpected first title %q", blurbs[0].Title)
	}
	if blurbs[0].Blurb != "Jerry and George discuss a woman Jerry met in Michigan." {
		t.Fatalf("unexpected first blurb %q", blurbs[0].Blurb)
	}

	if NormalizeTitle(blurbs[1].Title) != "thestakeout" {
		t.Fatalf("unexpected second title %q", blurbs[1].Title)
	}
	if blurbs[1].Blurb != "Jerry stakes out an office building." {
		t.Fatalf("unexpected second blurb %q", blurbs[1].Blurb)
	}

	if NormalizeTitle(blurbs[2].Title) != "therobbery" {
		t.Fatalf("unexpected third title %q", blurbs[2].Title)
	}
	if blurbs[2].Blurb != "Jerry's apartment is robbed." {
		t.Fatalf("last blurb should run to end of text, got %q", blurbs[2].Blurb)
	}
}

func TestParseSeasonBlurbsWithNonBreakingSpace(t *testing.T) {
	blurbs := ParseSeasonBlurbs("THE\u00a0STAKEOUT (Episode 2):\u00a0Jerry\u00a0stakes. Air Date: x")
	if len(blurbs) != 1 {
		t.Fatalf("expected 1 blurb, got %#v", blurbs)
	}
	if blurbs[0].Title != "THE STAKEOUT" {
		t.Fatalf("unexpected title %q", blurbs[0].Title)
	}
	if blurbs[0].Blurb != "Jerry stakes." {
		t.Fatalf("unexpected blurb %q", blurbs[0].Blurb)
	}
}

func TestParseSeasonBlurbsWithoutHeaders(t *testing.T) {
	if got := ParseSeasonBlurbs("nothing to see here"); len(got) != 0 {
		t.Fatalf("expected no blurbs, got %#v", got)
	}
}

func newTestScraper(t *testing.T, handler http.Handler) *TranscriptScraper {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTranscriptScraper(Options{BaseURL: server.URL, HTTPClient: server.Client()}, zap.NewNop())
}

func TestFetchSpeakers(t *testing.T) {
	var userAgent atomic.Value
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.UserAgent())
		if r.URL.Path != "/TheStockTip.htm" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, transcriptPage)
	}))

	speakers, err := s.FetchSpeakers(context.Background(), "TheStockTip.htm")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"JERRY", "GEORGE", "ELAINE", "MR. WILHELM"}
	if !reflect.DeepEqual(speakers, want) {
		t.Fatalf("expected %v, got %v", want, speakers)
	}
	if ua, _ := userAgent.Load().(string); !strings.Contains(ua, "Mozilla") {
		t.Fatalf("expected browser user agent, got %q", ua)
	}
}

func TestFetchTextReportsStatus(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := s.FetchText(context.Background(), "TheStockTip.htm")
	if err == nil {
		t.Fatalf("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestFetchSeasonBlurbsRejectsUnknownSeason(t *testing.T) {
	var hits atomic.Int32
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	for _, season := range []int{0, 10} {
		if _, err := s.FetchSeasonBlurbs(context.Background(), season); err == nil {
			t.Fatalf("expected error for season %d", season)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("invalid seasons should not hit the network")
	}
}

func TestFetchSeasonsKeepsRequestOrder(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var season int
		if _, err := fmt.Sscanf(r.URL.Path, "/seinfeld-season-%d.html", &season); err != nil {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "<html><body>EPISODE %s\n(Episode 1): Summary of season %d.</body></html>",
			strings.Repeat("X", season), season)
	}))

	results, err := s.FetchSeasons(context.Background(), []int{3, 1, 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 seasons, got %d", len(results))
	}
	for idx, season := range []int{3, 1, 2} {
		if len(results[idx]) != 1 {
			t.Fatalf("season %d: expected one blurb, got %#v", season, results[idx])
		}
		want := fmt.Sprintf("Summary of season %d.", season)
		if results[idx][0].Blurb != want {
			t.Fatalf("season %d: expected %q, got %q", season, want, results[idx][0].Blurb)
		}
	}
}

func TestFetchSeasonsFailsOnAnyError(t *testing.T) {
	s := newTestScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "season-2") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	}))

	if _, err := s.FetchSeasons(context.Background(), []int{1, 2, 3}); err == nil {
		t.Fatalf("expected error when one season fails")
	}
}
