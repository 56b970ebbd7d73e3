package domain

import "fmt"

// Ref is a denormalized back-reference to another record: a display name plus
// the API path of the record at the time the data was generated.
type Ref struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Character struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Img      string `json:"img"`
	Blurb    string `json:"blurb"`
	Episodes []Ref  `json:"episodes"`
}

// Ref returns the reference other records embed for this character.
func (c Character) Ref() Ref {
	return Ref{Name: c.Name, URL: fmt.Sprintf("/characters/%d", c.ID)}
}

// HasEpisode reports whether the character already references an episode with the given name.
func (c Character) HasEpisode(name string) bool {
	for _, ep := range c.Episodes {
		if ep.Name == name {
			return true
		}
	}
	return false
}
