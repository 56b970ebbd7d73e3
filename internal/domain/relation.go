package domain

// RelationIndex resolves quotes belonging to a character or an episode.
// Quotes only carry name snapshots, so the join key is the display name;
// moving to id-based keys only touches implementations of this interface.
type RelationIndex interface {
	QuotesByCharacter(c Character) []Quote
	QuotesByEpisode(e Episode) []Quote
}

// NameIndex joins on exact (case-sensitive) name equality. Renaming a
// character orphans its historical quotes.
type NameIndex struct {
	quotes      []Quote
	byCharacter map[string][]int
	byEpisode   map[string][]int
}

func NewNameIndex(quotes []Quote) *NameIndex {
	idx := &NameIndex{
		quotes:      quotes,
		byCharacter: make(map[string][]int),
		byEpisode:   make(map[string][]int),
	}
	for i, q := range quotes {
		idx.byCharacter[q.Character.Name] = append(idx.byCharacter[q.Character.Name], i)
		idx.byEpisode[q.Episode.Name] = append(idx.byEpisode[q.Episode.Name], i)
	}
	return idx
}

func (n *NameIndex) QuotesByCharacter(c Character) []Quote {
	return n.collect(n.byCharacter[c.Name])
}

func (n *NameIndex) QuotesByEpisode(e Episode) []Quote {
	return n.collect(n.byEpisode[e.Name])
}

func (n *NameIndex) collect(positions []int) []Quote {
	result := make([]Quote, 0, len(positions))
	for _, pos := range positions {
		result = append(result, n.quotes[pos])
	}
	return result
}
