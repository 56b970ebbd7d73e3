package listing

import (
	"crypto/tls"
	"fmt"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/navinbhat12/api-about-nothing/internal/domain"
)

func makeCharacters(n int) []domain.Character {
	characters := make([]domain.Character, 0, n)
	for i := 1; i <= n; i++ {
		characters = append(characters, domain.Character{ID: i, Name: fmt.Sprintf("Character %02d", i)})
	}
	return characters
}

func testLinks() LinkBuilder {
	return LinkBuilder{Scheme: "http", Host: "api.test", Path: "/characters"}
}

func TestCharacterNameFilterIsCaseInsensitive(t *testing.T) {
	characters := []domain.Character{
		{ID: 1, Name: "Jerry Seinfeld"},
		{ID: 2, Name: "George Costanza"},
		{ID: 3, Name: "Morty Seinfeld"},
	}

	for _, value := range []string{"sein", "SEIN", "SeInFeLd"} {
		got := Characters.Apply(characters, url.Values{"name": {value}})
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
			t.Fatalf("filter %q: unexpected result %+v", value, got)
		}
	}
}

func TestApplyWithoutFiltersReturnsInput(t *testing.T) {
	characters := makeCharacters(3)
	got := Characters.Apply(characters, url.Values{"page": {"2"}})
	if !reflect.DeepEqual(got, characters) {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestFilteringIsIdempotent(t *testing.T) {
	quotes := []domain.Quote{
		{Quote: "Hello, Jerry.", Character: domain.Ref{Name: "Newman"}, Episode: domain.Ref{Name: "The Revenge"}},
		{Quote: "Jerry! Hello!", Character: domain.Ref{Name: "Uncle Leo"}, Episode: domain.Ref{Name: "The Pony Remark"}},
		{Quote: "Serenity now", Character: domain.Ref{Name: "Frank Costanza"}, Episode: domain.Ref{Name: "The Serenity Now"}},
	}
	values := url.Values{"quote": {"hello"}}

	once := Quotes.Apply(quotes, values)
	twice := Quotes.Apply(once, values)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent filtering, got %+v vs %+v", once, twice)
	}
	if len(once) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(once))
	}
}

func TestQuoteFiltersCombineWithAnd(t *testing.T) {
	quotes := []domain.Quote{
		{Quote: "Hello, Jerry.", Character: domain.Ref{Name: "Newman"}, Episode: domain.Ref{Name: "The Revenge"}},
		{Quote: "Hello there", Character: domain.Ref{Name: "Newman"}, Episode: domain.Ref{Name: "The Busboy"}},
		{Quote: "Hello!", Character: domain.Ref{Name: "Uncle Leo"}, Episode: domain.Ref{Name: "The Revenge"}},
	}

	got := Quotes.Apply(quotes, url.Values{"author": {"newman"}, "episode": {"revenge"}, "quote": {"HELLO"}})
	if len(got) != 1 || got[0].Quote != "Hello, Jerry." {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestSeasonFilterIsLiteralPrefix(t *testing.T) {
	episodes := []domain.Episode{
		{ID: 1, Episode: "S1E01"},
		{ID: 2, Episode: "S2E01"},
		{ID: 3, Episode: "S10E01"},
		{ID: 4, Episode: "s1E02"},
		{ID: 5, Episode: ""},
	}

	got := Episodes.Apply(episodes, url.Values{"season": {"1"}})
	ids := make([]int, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	if !reflect.DeepEqual(ids, []int{1, 3}) {
		t.Fatalf("expected S1 and S10 episodes only, got ids %v", ids)
	}
}

func TestEpisodeNameAndSeasonCombine(t *testing.T) {
	episodes := []domain.Episode{
		{ID: 1, Name: "The Stakeout", Episode: "S1E02"},
		{ID: 2, Name: "The Statue", Episode: "S2E06"},
		{ID: 3, Name: "The Stock Tip", Episode: "S1E05"},
	}
	got := Episodes.Apply(episodes, url.Values{"name": {"the st"}, "season": {"2"}})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"3":   3,
		"0":   1,
		"-2":  1,
		"abc": 1,
		"2.5": 1,
		" 4 ": 4,
	}
	for raw, want := range cases {
		if got := ParsePage(raw); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ count, want int }{{0, 0}, {1, 1}, {20, 1}, {21, 2}, {40, 2}, {41, 3}}
	for _, tc := range cases {
		if got := PageCount(tc.count, 20); got != tc.want {
			t.Errorf("PageCount(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func TestPagesReconstructCollection(t *testing.T) {
	characters := makeCharacters(47)

	first := List(Characters, characters, url.Values{}, testLinks())
	if first.Info.Pages != 3 || first.Info.Count != 47 {
		t.Fatalf("unexpected info %+v", first.Info)
	}

	var rebuilt []domain.Character
	for page := 1; page <= first.Info.Pages; page++ {
		p := List(Characters, characters, url.Values{"page": {fmt.Sprint(page)}}, testLinks())
		rebuilt = append(rebuilt, p.Results...)
	}
	if !reflect.DeepEqual(rebuilt, characters) {
		t.Fatalf("pages do not reconstruct the collection")
	}
}

func TestNavigationLinksPresence(t *testing.T) {
	characters := makeCharacters(45)

	for page := 1; page <= 5; page++ {
		p := List(Characters, characters, url.Values{"page": {fmt.Sprint(page)}}, testLinks())
		if (p.Info.NextPage == nil) != (page >= p.Info.Pages) {
			t.Errorf("page %d: next_page presence wrong (%v)", page, p.Info.NextPage)
		}
		if (p.Info.PrevPage == nil) != (page <= 1) {
			t.Errorf("page %d: prev_page presence wrong (%v)", page, p.Info.PrevPage)
		}
	}
}

func TestPageBeyondLastPage(t *testing.T) {
	characters := makeCharacters(45)

	p := List(Characters, characters, url.Values{"page": {"9"}}, testLinks())
	if p.Results == nil || len(p.Results) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", p.Results)
	}
	if p.Info.NextPage != nil {
		t.Fatalf("expected no next page, got %s", *p.Info.NextPage)
	}
	if p.Info.PrevPage == nil || *p.Info.PrevPage != "http://api.test/characters?page=3" {
		t.Fatalf("expected prev to point at the last page, got %v", p.Info.PrevPage)
	}
}

func TestEmptyResultSet(t *testing.T) {
	p := List(Characters, makeCharacters(5), url.Values{"name": {"nobody"}, "page": {"2"}}, testLinks())
	if p.Info.Count != 0 || p.Info.Pages != 0 {
		t.Fatalf("unexpected info %+v", p.Info)
	}
	if p.Info.NextPage != nil {
		t.Fatalf("expected no next page")
	}
	if p.Info.PrevPage == nil || *p.Info.PrevPage != "http://api.test/characters?page=1&name=nobody" {
		t.Fatalf("unexpected prev page %v", p.Info.PrevPage)
	}
}

func TestLinksCarryEscapedFiltersInFixedOrder(t *testing.T) {
	quotes := make([]domain.Quote, 0, 30)
	for i := 0; i < 30; i++ {
		quotes = append(quotes, domain.Quote{
			Quote:     "no soup for you & you",
			Character: domain.Ref{Name: "Yev Kassem"},
			Episode:   domain.Ref{Name: "The Soup Nazi"},
		})
	}
	links := LinkBuilder{Scheme: "https", Host: "api.test", Path: "/quotes"}
	values := url.Values{"quote": {"soup for you & you"}, "episode": {"soup nazi"}, "author": {""}}

	p := List(Quotes, quotes, values, links)
	want := "https://api.test/quotes?page=2&episode=soup%20nazi&quote=soup%20for%20you%20%26%20you"
	if p.Info.NextPage == nil || *p.Info.NextPage != want {
		t.Fatalf("unexpected next page %v, want %s", p.Info.NextPage, want)
	}
}

func TestLinksKeepComponentSafePunctuation(t *testing.T) {
	links := LinkBuilder{Scheme: "http", Host: "api.test", Path: "/quotes"}
	values := url.Values{"author": {"George's (Pilot)!*~ 100%+"}}

	got := links.Page(2, []string{"author"}, values)
	want := "http://api.test/quotes?page=2&author=George's%20(Pilot)!*~%20100%25%2B"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestNewLinkBuilderScheme(t *testing.T) {
	plain := httptest.NewRequest("GET", "http://api.test/episodes?season=1", nil)
	if b := NewLinkBuilder(plain, false); b.Scheme != "http" || b.Host != "api.test" || b.Path != "/episodes" {
		t.Fatalf("unexpected builder %+v", b)
	}

	forwarded := httptest.NewRequest("GET", "http://api.test/episodes", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https, http")
	if b := NewLinkBuilder(forwarded, false); b.Scheme != "https" {
		t.Fatalf("expected forwarded scheme, got %q", b.Scheme)
	}

	secure := httptest.NewRequest("GET", "https://api.test/episodes", nil)
	secure.TLS = &tls.ConnectionState{}
	if b := NewLinkBuilder(secure, false); b.Scheme != "https" {
		t.Fatalf("expected https for TLS connection, got %q", b.Scheme)
	}

	if b := NewLinkBuilder(plain, true); b.Scheme != "https" {
		t.Fatalf("expected production override, got %q", b.Scheme)
	}
}
