package domain

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
)

//go:embed data/characters.json data/episodes.json data/quotes-transformed.json
var embeddedData embed.FS

// principalCast lists the name fragments that identify the four leads shown on
// the root endpoint.
var principalCast = []string{"jerry seinfeld", "george costanza", "elaine benes", "kramer"}

// Dataset is the immutable snapshot served by the API. It is built once at
// startup and shared by all requests without locking.
type Dataset struct {
	Characters []Character
	Episodes   []Episode
	Quotes     []Quote

	relations RelationIndex
}

// NewDataset wraps already-decoded collections and builds the relation index.
func NewDataset(characters []Character, episodes []Episode, quotes []Quote) *Dataset {
	if characters == nil {
		characters = []Character{}
	}
	if episodes == nil {
		episodes = []Episode{}
	}
	if quotes == nil {
		quotes = []Quote{}
	}
	return &Dataset{
		Characters: characters,
		Episodes:   episodes,
		Quotes:     quotes,
		relations:  NewNameIndex(quotes),
	}
}

// LoadDataset reads the three dataset files from dir. An empty dir selects
// the copies embedded in the binary.
func LoadDataset(dir string) (*Dataset, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedData, "data")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	var characters []Character
	if err := readJSON(fsys, constants.DataFiles.Characters, &characters); err != nil {
		return nil, err
	}
	var episodes []Episode
	if err := readJSON(fsys, constants.DataFiles.Episodes, &episodes); err != nil {
		return nil, err
	}
	var quotes []Quote
	if err := readJSON(fsys, constants.DataFiles.Quotes, &quotes); err != nil {
		return nil, err
	}

	return NewDataset(characters, episodes, quotes), nil
}

func readJSON(fsys fs.FS, name string, dest any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// ReadFile decodes a single JSON dataset file from disk. Used by the offline tools.
func ReadFile(path string, dest any) error {
	return readJSON(os.DirFS(filepath.Dir(path)), filepath.Base(path), dest)
}

// WriteFile writes value as indented JSON, replacing path atomically.
func WriteFile(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

// CharacterByID returns the character with exactly the given id.
func (d *Dataset) CharacterByID(id int) (Character, bool) {
	for _, c := range d.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

func (d *Dataset) EpisodeByID(id int) (Episode, bool) {
	for _, e := range d.Episodes {
		if e.ID == id {
			return e, true
		}
	}
	return Episode{}, false
}

// QuotesByCharacter returns every quote attributed to c, in file order.
func (d *Dataset) QuotesByCharacter(c Character) []Quote {
	return d.relations.QuotesByCharacter(c)
}

func (d *Dataset) QuotesByEpisode(e Episode) []Quote {
	return d.relations.QuotesByEpisode(e)
}

// PrincipalCast returns the four leads in collection order.
func (d *Dataset) PrincipalCast() []Character {
	result := make([]Character, 0, len(principalCast))
	for _, c := range d.Characters {
		name := strings.ToLower(c.Name)
		for _, fragment := range principalCast {
			if strings.Contains(name, fragment) {
				result = append(result, c)
				break
			}
		}
	}
	return result
}
